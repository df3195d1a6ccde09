// File: services/conversation/gemini.go
package conversation

import (
	"context"
	"fmt"
	"strings"

	"smartsched/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiChatModel implements ChatModel on the Gemini API with function
// calling.
type GeminiChatModel struct {
	client *genai.Client
	name   string
}

// NewGeminiChatModel creates a Gemini-backed chat model.
func NewGeminiChatModel(ctx context.Context, apiKey, modelName string) (*GeminiChatModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiChatModel{client: client, name: modelName}, nil
}

// Complete replays the history to the model and returns its reply. The
// system instruction and, when withTools is set, the fixed tool schemas are
// attached on every call; tool choice stays with the model.
func (g *GeminiChatModel) Complete(ctx context.Context, history []models.Message, withTools bool) (*Completion, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("cannot complete an empty history")
	}

	model := g.client.GenerativeModel(g.name)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	if withTools {
		model.Tools = toolDeclarations()
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingAuto},
		}
	}

	contents := make([]*genai.Content, len(history))
	for i := range history {
		contents[i] = toGenaiContent(&history[i])
	}

	cs := model.StartChat()
	cs.History = contents[:len(contents)-1]
	resp, err := cs.SendMessage(ctx, contents[len(contents)-1].Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini completion error: %w", err)
	}
	return parseGeminiResponse(resp)
}

func toGenaiContent(msg *models.Message) *genai.Content {
	switch msg.Role {
	case models.RoleAssistant:
		if len(msg.ToolCalls) > 0 {
			parts := make([]genai.Part, 0, len(msg.ToolCalls))
			for _, tc := range msg.ToolCalls {
				parts = append(parts, genai.FunctionCall{Name: tc.Name, Args: tc.Args})
			}
			return &genai.Content{Role: "model", Parts: parts}
		}
		return &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(msg.Content)}}
	case models.RoleTool:
		if msg.ToolResult != nil {
			return &genai.Content{Role: "function", Parts: []genai.Part{
				genai.FunctionResponse{Name: msg.ToolResult.Name, Response: msg.ToolResult.Payload},
			}}
		}
		return &genai.Content{Role: "function", Parts: []genai.Part{genai.Text(msg.Content)}}
	default:
		return &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}}
	}
}

func parseGeminiResponse(resp *genai.GenerateContentResponse) (*Completion, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	comp := &Completion{}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			comp.ToolCalls = append(comp.ToolCalls, models.ToolCallRequest{Name: p.Name, Args: p.Args})
		}
	}
	comp.Content = sb.String()
	return comp, nil
}
