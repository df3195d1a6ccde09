package models

import "time"

// MessageRole tags a history entry with its author.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// ToolCallRequest is a structured action request emitted by the model
// instead of free text. It is consumed exactly once by the dispatcher.
type ToolCallRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ToolResult carries a dispatched tool's serialized result back into the
// history. Payload values are JSON-basic so they can be replayed to the
// model verbatim.
type ToolResult struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload"`
}

// Message is one entry in a conversation history. The history is append-only
// within a turn and its order is replayed verbatim to the model.
type Message struct {
	Role       MessageRole       `json:"role"`
	Content    string            `json:"content,omitempty"`
	ToolCalls  []ToolCallRequest `json:"tool_calls,omitempty"`
	ToolResult *ToolResult       `json:"tool_result,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}
