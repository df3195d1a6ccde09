package conversation

import (
	"context"

	"smartsched/models"
)

// Completion is one model response: either a plain reply or one or more
// structured tool-call requests (a response can carry both).
type Completion struct {
	Content   string
	ToolCalls []models.ToolCallRequest
}

// ChatModel is the language-model capability. It accepts the full history
// in order and, when withTools is set, the two fixed tool schemas; tool
// choice is left to the model's discretion.
type ChatModel interface {
	Complete(ctx context.Context, history []models.Message, withTools bool) (*Completion, error)
}

// ConversationService drives the scheduling dialogue for one session.
type ConversationService interface {
	ProcessMessage(ctx context.Context, text string) (*models.TurnResult, error)
	Reset()
}
