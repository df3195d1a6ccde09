// File: services/conversation/orchestrator.go
package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartsched/models"
	"smartsched/utils"

	"go.uber.org/zap"
)

// Orchestrator owns one session's history and accumulated state and runs
// the turn loop against the chat model and tool dispatcher. Instances are
// not safe for concurrent use; the transport runs one turn to completion
// before reading the session's next message.
type Orchestrator struct {
	model      ChatModel
	dispatcher *Dispatcher
	timeout    time.Duration

	history []models.Message
	state   models.ConversationState
}

// NewOrchestrator builds an orchestrator for one session. modelTimeout
// bounds each individual model invocation; zero disables the bound.
func NewOrchestrator(model ChatModel, dispatcher *Dispatcher, modelTimeout time.Duration) *Orchestrator {
	return &Orchestrator{model: model, dispatcher: dispatcher, timeout: modelTimeout}
}

// ProcessMessage runs one full turn for an inbound user message and returns
// exactly one user-facing reply. A model or non-recoverable tool failure
// degrades the turn to an apologetic reply with history and state intact,
// so the next message can simply retry.
func (o *Orchestrator) ProcessMessage(ctx context.Context, text string) (*models.TurnResult, error) {
	logger := utils.GetLogger()

	o.append(models.Message{Role: models.RoleUser, Content: text, Timestamp: time.Now()})

	comp, err := o.complete(ctx, true)
	if err != nil {
		logger.Error("model invocation failed", zap.Error(err))
		return o.degradedTurn(err), nil
	}

	if len(comp.ToolCalls) == 0 {
		o.append(models.Message{Role: models.RoleAssistant, Content: comp.Content, Timestamp: time.Now()})
		return &models.TurnResult{Message: comp.Content, AvailableSlots: []models.Slot{}, State: o.state}, nil
	}

	// Tool calls run strictly in the order the model listed them; each
	// result lands in history before the next call is dispatched.
	var slots []models.Slot
	for _, call := range comp.ToolCalls {
		o.append(models.Message{
			Role:      models.RoleAssistant,
			ToolCalls: []models.ToolCallRequest{call},
			Timestamp: time.Now(),
		})

		var payload map[string]any
		outcome, derr := o.dispatcher.Dispatch(ctx, call, &o.state)
		switch {
		case derr == nil:
			payload = outcome.Payload
			if outcome.IsSearch {
				// Last search in the turn wins the slot payload.
				slots = outcome.Slots
			}
		default:
			var toolErr *ToolError
			if !errors.As(derr, &toolErr) {
				logger.Error("tool dispatch failed", zap.String("tool", call.Name), zap.Error(derr))
				return o.degradedTurn(derr), nil
			}
			logger.Warn("recoverable tool failure",
				zap.String("tool", call.Name), zap.String("code", toolErr.Code), zap.Error(toolErr))
			payload = map[string]any{"error": toolErr.Message, "code": toolErr.Code}
		}

		o.append(models.Message{
			Role:       models.RoleTool,
			ToolResult: &models.ToolResult{Name: call.Name, Payload: payload},
			Timestamp:  time.Now(),
		})
	}

	// One bounded re-query with no tools offered, so a model that keeps
	// requesting actions cannot loop the turn indefinitely.
	final, err := o.complete(ctx, false)
	if err != nil {
		logger.Error("model summary invocation failed", zap.Error(err))
		return o.degradedTurn(err), nil
	}
	o.append(models.Message{Role: models.RoleAssistant, Content: final.Content, Timestamp: time.Now()})

	if slots == nil {
		slots = []models.Slot{}
	}
	return &models.TurnResult{Message: final.Content, AvailableSlots: slots, State: o.state}, nil
}

// Reset unconditionally clears the history and accumulated state; the next
// turn behaves identically to a brand-new session.
func (o *Orchestrator) Reset() {
	o.history = nil
	o.state = models.ConversationState{}
}

// State returns a snapshot of the accumulated slot-filling state.
func (o *Orchestrator) State() models.ConversationState {
	return o.state
}

// History returns the session history; exposed for tests and debugging.
func (o *Orchestrator) History() []models.Message {
	return o.history
}

func (o *Orchestrator) append(msg models.Message) {
	o.history = append(o.history, msg)
}

func (o *Orchestrator) complete(ctx context.Context, withTools bool) (*Completion, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	return o.model.Complete(ctx, o.history, withTools)
}

func (o *Orchestrator) degradedTurn(err error) *models.TurnResult {
	return &models.TurnResult{
		Message:        fmt.Sprintf("I encountered an error: %v. Could you please try again?", err),
		AvailableSlots: []models.Slot{},
		State:          o.state,
	}
}
