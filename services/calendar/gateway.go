// File: services/calendar/gateway.go
package calendar

import (
	"context"
	"time"

	"smartsched/models"
	"smartsched/utils"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const primaryCalendarID = "primary"

// GoogleGateway implements Service against the Google Calendar API. Times
// crossing in from the conversation layer are localized to the reference
// zone at this boundary: comparison-sensitive values (freebusy) leave in
// UTC, display-sensitive values (event payloads) in the reference zone with
// the zone identifier attached so the remote end renders the intended
// wall-clock time.
type GoogleGateway struct {
	Creds    *CredentialStore
	Location *time.Location
	Timeout  time.Duration
}

// NewGoogleGateway builds a gateway rendering times in the given zone.
func NewGoogleGateway(creds *CredentialStore, loc *time.Location, timeout time.Duration) *GoogleGateway {
	return &GoogleGateway{Creds: creds, Location: loc, Timeout: timeout}
}

func (g *GoogleGateway) IsAuthenticated(ctx context.Context) bool {
	return g.Creds.IsAuthenticated(ctx)
}

// FetchBusy queries freebusy on the primary calendar. Unauthenticated means
// "no known conflicts", and an upstream failure degrades the same way after
// logging: a search that assumes free is judged less harmful than one that
// kills the conversation.
func (g *GoogleGateway) FetchBusy(ctx context.Context, start, end time.Time) ([]models.BusyInterval, error) {
	logger := utils.GetLogger()

	if !g.IsAuthenticated(ctx) {
		return nil, nil
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	svc, err := g.service(ctx)
	if err != nil {
		logger.Error("calendar client unavailable, assuming no conflicts", zap.Error(err))
		return nil, ctx.Err()
	}

	resp, err := svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: start.UTC().Format(time.RFC3339),
		TimeMax: end.UTC().Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: primaryCalendarID}},
	}).Context(ctx).Do()
	if err != nil {
		logger.Error("freebusy query failed, assuming no conflicts", zap.Error(err))
		return nil, ctx.Err()
	}

	cal, ok := resp.Calendars[primaryCalendarID]
	if !ok {
		return nil, nil
	}

	busy := make([]models.BusyInterval, 0, len(cal.Busy))
	for _, p := range cal.Busy {
		interval, err := parseBusyPeriod(p)
		if err != nil {
			logger.Warn("skipping malformed busy period",
				zap.String("start", p.Start), zap.String("end", p.End), zap.Error(err))
			continue
		}
		busy = append(busy, interval)
	}
	return busy, nil
}

// CreateEvent inserts an event on the primary calendar. Creating an event
// is a write with user-visible consequence, so a missing credential is a
// hard error rather than a silent no-op.
func (g *GoogleGateway) CreateEvent(ctx context.Context, input models.EventInput) (*models.EventResult, error) {
	logger := utils.GetLogger()

	if !g.IsAuthenticated(ctx) {
		return nil, ErrNotAuthenticated
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	svc, err := g.service(ctx)
	if err != nil {
		return nil, err
	}

	created, err := svc.Events.Insert(primaryCalendarID, buildEvent(input, g.location())).Context(ctx).Do()
	if err != nil {
		logger.Error("event insert failed", zap.String("title", input.Title), zap.Error(err))
		return &models.EventResult{Success: false, Error: err.Error()}, nil
	}

	logger.Info("created calendar event",
		zap.String("eventID", created.Id), zap.String("title", input.Title))
	return &models.EventResult{
		Success:  true,
		EventID:  created.Id,
		HTMLLink: created.HtmlLink,
	}, nil
}

func (g *GoogleGateway) service(ctx context.Context) (*gcal.Service, error) {
	ts, err := g.Creds.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return gcal.NewService(ctx, option.WithTokenSource(ts))
}

func (g *GoogleGateway) location() *time.Location {
	if g.Location == nil {
		return time.UTC
	}
	return g.Location
}

func (g *GoogleGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.Timeout > 0 {
		return context.WithTimeout(ctx, g.Timeout)
	}
	return context.WithCancel(ctx)
}

// buildEvent renders the event payload in the reference zone with the zone
// identifier attached explicitly.
func buildEvent(input models.EventInput, loc *time.Location) *gcal.Event {
	start := input.Start.In(loc)
	end := input.End.In(loc)
	return &gcal.Event{
		Summary:     input.Title,
		Description: input.Description,
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
	}
}

func parseBusyPeriod(p *gcal.TimePeriod) (models.BusyInterval, error) {
	start, err := time.Parse(time.RFC3339, p.Start)
	if err != nil {
		return models.BusyInterval{}, err
	}
	end, err := time.Parse(time.RFC3339, p.End)
	if err != nil {
		return models.BusyInterval{}, err
	}
	return models.BusyInterval{Start: start.UTC(), End: end.UTC()}, nil
}
