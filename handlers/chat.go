// File: handlers/chat.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"smartsched/models"
	"smartsched/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	frameConnected     = "connected"
	frameProcessing    = "processing"
	frameResponse      = "response"
	frameResetComplete = "reset_complete"
	frameError         = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client connects from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatWebSocketHandler upgrades the connection and runs the session's
// message loop. The session is created on connect and destroyed on
// disconnect; one turn runs to completion before the next frame is read.
func (hb *HandlerBundle) ChatWebSocketHandler(c *gin.Context) {
	logger := utils.GetLogger()

	clientID := c.Param("clientID")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", zap.String("clientID", clientID), zap.Error(err))
		return
	}
	defer conn.Close()

	svc := hb.Sessions.Acquire(clientID)
	defer func() {
		hb.Sessions.Remove(clientID)
		logger.Info("session closed", zap.String("clientID", clientID))
	}()

	logger.Info("session connected", zap.String("clientID", clientID))
	writeFrame(conn, models.ServerFrame{
		Type:      frameConnected,
		Message:   "Connected to scheduling assistant",
		Timestamp: time.Now(),
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", zap.String("clientID", clientID), zap.Error(err))
			}
			return
		}
		hb.Sessions.Touch(clientID)

		var frame models.ClientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			writeFrame(conn, models.ServerFrame{
				Type:      frameError,
				Message:   "Invalid message format",
				Timestamp: time.Now(),
			})
			continue
		}

		switch frame.Type {
		case "message":
			writeFrame(conn, models.ServerFrame{
				Type:      frameProcessing,
				Message:   "Thinking...",
				Timestamp: time.Now(),
			})

			result, err := svc.ProcessMessage(c.Request.Context(), frame.Content)
			if err != nil {
				logger.Error("turn failed", zap.String("clientID", clientID), zap.Error(err))
				writeFrame(conn, models.ServerFrame{
					Type:      frameError,
					Message:   "Something went wrong processing your message",
					Timestamp: time.Now(),
				})
				continue
			}

			state := result.State
			writeFrame(conn, models.ServerFrame{
				Type:              frameResponse,
				Content:           result.Message,
				ConversationState: &state,
				AvailableSlots:    result.AvailableSlots,
				Timestamp:         time.Now(),
			})

		case "reset":
			svc.Reset()
			writeFrame(conn, models.ServerFrame{
				Type:      frameResetComplete,
				Message:   "Conversation reset",
				Timestamp: time.Now(),
			})

		default:
			writeFrame(conn, models.ServerFrame{
				Type:      frameError,
				Message:   "Unknown message type: " + frame.Type,
				Timestamp: time.Now(),
			})
		}
	}
}

func writeFrame(conn *websocket.Conn, frame models.ServerFrame) {
	if err := conn.WriteJSON(frame); err != nil {
		utils.GetLogger().Warn("websocket write failed", zap.Error(err))
	}
}
