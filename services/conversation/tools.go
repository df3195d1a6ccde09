package conversation

import genai "github.com/google/generative-ai-go/genai"

// Supported tool names. Dispatch is a closed set: adding a tool means a new
// call variant in dispatcher.go plus a declaration here.
const (
	ToolSearchCalendar = "search_calendar"
	ToolCreateEvent    = "create_event"
)

// toolDeclarations returns the two fixed tool schemas offered to the model.
func toolDeclarations() []*genai.Tool {
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        ToolSearchCalendar,
				Description: "Search for available meeting slots in the user's calendar based on duration and time preferences",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"duration_minutes": {
							Type:        genai.TypeInteger,
							Description: "Duration of the meeting in minutes",
						},
						"preferred_day": {
							Type:        genai.TypeString,
							Description: "Preferred day like 'Monday', 'Tuesday', 'next week', 'tomorrow', etc.",
						},
						"time_of_day": {
							Type:        genai.TypeString,
							Description: "Time preference like 'morning', 'afternoon', 'evening', or specific time like '2 PM'",
						},
						"days_ahead": {
							Type:        genai.TypeInteger,
							Description: "How many days ahead to search (default 7)",
						},
					},
					Required: []string{"duration_minutes"},
				},
			},
			{
				Name:        ToolCreateEvent,
				Description: "Create a calendar event at the specified time",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start_time": {
							Type:        genai.TypeString,
							Description: "Start time in ISO format",
						},
						"duration_minutes": {
							Type:        genai.TypeInteger,
							Description: "Duration in minutes",
						},
						"title": {
							Type:        genai.TypeString,
							Description: "Meeting title",
						},
						"description": {
							Type:        genai.TypeString,
							Description: "Meeting description",
						},
					},
					Required: []string{"start_time", "duration_minutes", "title"},
				},
			},
		},
	}}
}
