package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartsched/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedModel replays canned completions and records what it was asked.
type scriptedModel struct {
	script []*Completion
	errs   []error

	calls     int
	histories [][]models.Message
	withTools []bool
}

func (m *scriptedModel) Complete(ctx context.Context, history []models.Message, withTools bool) (*Completion, error) {
	i := m.calls
	m.calls++
	m.histories = append(m.histories, append([]models.Message(nil), history...))
	m.withTools = append(m.withTools, withTools)

	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	if i >= len(m.script) {
		return nil, errors.New("model called more times than scripted")
	}
	return m.script[i], nil
}

func testOrchestrator(t *testing.T, model ChatModel, cal *fakeCalendar) *Orchestrator {
	t.Helper()
	return NewOrchestrator(model, testDispatcher(t, cal), time.Second)
}

func searchArgs(duration int, day string) map[string]any {
	return map[string]any{
		"duration_minutes": float64(duration),
		"preferred_day":    day,
	}
}

func TestProcessMessagePlainReply(t *testing.T) {
	model := &scriptedModel{script: []*Completion{{Content: "How long should the meeting be?"}}}
	o := testOrchestrator(t, model, &fakeCalendar{})

	result, err := o.ProcessMessage(context.Background(), "I need a meeting")

	require.NoError(t, err)
	assert.Equal(t, "How long should the meeting be?", result.Message)
	assert.Empty(t, result.AvailableSlots)
	assert.NotNil(t, result.AvailableSlots)
	assert.Equal(t, models.ConversationState{}, result.State)

	// Exactly one model call, with tools offered.
	assert.Equal(t, 1, model.calls)
	assert.True(t, model.withTools[0])

	history := o.History()
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, models.RoleAssistant, history[1].Role)
}

func TestProcessMessageToolTurn(t *testing.T) {
	model := &scriptedModel{script: []*Completion{
		{ToolCalls: []models.ToolCallRequest{{Name: ToolSearchCalendar, Args: searchArgs(30, "tomorrow")}}},
		{Content: "Here are some openings."},
	}}
	o := testOrchestrator(t, model, &fakeCalendar{authed: true})

	result, err := o.ProcessMessage(context.Background(), "30 minutes tomorrow")

	require.NoError(t, err)
	assert.Equal(t, "Here are some openings.", result.Message)
	assert.NotEmpty(t, result.AvailableSlots)
	assert.Equal(t, 30, result.State.DurationMinutes)
	assert.Equal(t, "tomorrow", result.State.PreferredDay)

	// The bounded second call must not offer tools again.
	require.Equal(t, 2, model.calls)
	assert.True(t, model.withTools[0])
	assert.False(t, model.withTools[1])

	// user, assistant tool call, tool result, final assistant.
	history := o.History()
	require.Len(t, history, 4)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, models.RoleAssistant, history[1].Role)
	require.Len(t, history[1].ToolCalls, 1)
	assert.Equal(t, models.RoleTool, history[2].Role)
	require.NotNil(t, history[2].ToolResult)
	assert.Equal(t, ToolSearchCalendar, history[2].ToolResult.Name)
	assert.Equal(t, models.RoleAssistant, history[3].Role)
}

func TestProcessMessageLastSearchWins(t *testing.T) {
	model := &scriptedModel{script: []*Completion{
		{ToolCalls: []models.ToolCallRequest{
			{Name: ToolSearchCalendar, Args: searchArgs(30, "tomorrow")},
			{Name: ToolSearchCalendar, Args: searchArgs(60, "next week")},
		}},
		{Content: "Updated results."},
	}}
	o := testOrchestrator(t, model, &fakeCalendar{authed: true})

	result, err := o.ProcessMessage(context.Background(), "find a time")

	require.NoError(t, err)
	require.NotEmpty(t, result.AvailableSlots)
	// The second search's slots are the ones surfaced.
	for _, slot := range result.AvailableSlots {
		assert.Equal(t, 60, slot.DurationMinutes)
	}
	assert.Equal(t, 60, result.State.DurationMinutes)
}

func TestProcessMessageUnknownToolIsRecoverable(t *testing.T) {
	model := &scriptedModel{script: []*Completion{
		{ToolCalls: []models.ToolCallRequest{{Name: "weather_report", Args: map[string]any{}}}},
		{Content: "Sorry, I can only schedule meetings."},
	}}
	o := testOrchestrator(t, model, &fakeCalendar{})

	result, err := o.ProcessMessage(context.Background(), "what's the weather")

	require.NoError(t, err)
	assert.Equal(t, "Sorry, I can only schedule meetings.", result.Message)

	// The structured failure is replayed to the model as the tool result.
	history := o.History()
	require.Len(t, history, 4)
	require.NotNil(t, history[2].ToolResult)
	assert.Equal(t, CodeUnknownTool, history[2].ToolResult.Payload["code"])
}

func TestProcessMessageModelFailureDegrades(t *testing.T) {
	model := &scriptedModel{errs: []error{errors.New("model unavailable")}}
	o := testOrchestrator(t, model, &fakeCalendar{})

	result, err := o.ProcessMessage(context.Background(), "hello")

	require.NoError(t, err)
	assert.Contains(t, result.Message, "I encountered an error")
	assert.Empty(t, result.AvailableSlots)

	// The user message stays in history so the next turn can retry.
	history := o.History()
	require.Len(t, history, 1)
	assert.Equal(t, models.RoleUser, history[0].Role)
}

func TestResetClearsHistoryAndState(t *testing.T) {
	model := &scriptedModel{script: []*Completion{
		{ToolCalls: []models.ToolCallRequest{{Name: ToolSearchCalendar, Args: searchArgs(30, "tomorrow")}}},
		{Content: "Done."},
		{Content: "Hello again!"},
	}}
	o := testOrchestrator(t, model, &fakeCalendar{authed: true})

	_, err := o.ProcessMessage(context.Background(), "30 minutes tomorrow")
	require.NoError(t, err)
	require.NotEmpty(t, o.History())
	require.NotZero(t, o.State().DurationMinutes)

	o.Reset()

	assert.Empty(t, o.History())
	assert.Equal(t, models.ConversationState{}, o.State())

	// The next turn starts from a clean slate.
	result, err := o.ProcessMessage(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello again!", result.Message)
	require.Len(t, model.histories[2], 1)
}
