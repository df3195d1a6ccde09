package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartsched/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCalendar struct{ authed bool }

func (s stubCalendar) IsAuthenticated(ctx context.Context) bool { return s.authed }

func (s stubCalendar) FetchBusy(ctx context.Context, start, end time.Time) ([]models.BusyInterval, error) {
	return nil, nil
}

func (s stubCalendar) CreateEvent(ctx context.Context, input models.EventInput) (*models.EventResult, error) {
	return &models.EventResult{Success: true}, nil
}

func TestHealthHandlerReportsCalendarLink(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hb := &HandlerBundle{Calendar: stubCalendar{authed: true}}

	router := gin.New()
	router.GET("/health", hb.HealthHandler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["calendar_connected"])
}
