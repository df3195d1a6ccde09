package conversation

import "fmt"

const (
	CodeUnknownTool  = "unknownTool"
	CodeBadArguments = "badArguments"
)

// ToolError is a recoverable per-call dispatch failure. The turn continues
// with a best-effort explanation fed back to the model instead of aborting.
type ToolError struct {
	Code    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
