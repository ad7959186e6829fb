package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/live"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler is the subscription endpoint: one WebSocket per client,
// whole-snapshot pushes per subscribed topic, and inbound chat sends.
type LiveHandler struct {
	svc *live.Service
}

func NewLiveHandler(svc *live.Service) *LiveHandler {
	return &LiveHandler{svc: svc}
}

// clientFrame is what the browser sends over the socket.
type clientFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Subscribe upgrades the connection and opens a subscription to the
// requested topics (?topics=messages,announcements,schedule; default all).
// Closing the socket closes the subscription.
func (h *LiveHandler) Subscribe(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	topics := parseTopics(c.Query("topics"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}

	sub := h.svc.Hub().Subscribe(topics...)

	go h.writePump(conn, sub)
	go h.readPump(conn, sub, sess)
}

func (h *LiveHandler) writePump(conn *websocket.Conn, sub *live.Subscription) {
	defer conn.Close()
	for snap := range sub.C {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(snap); err != nil {
			slog.Error("Failed to push snapshot to websocket", "error", err)
			return
		}
	}
}

func (h *LiveHandler) readPump(conn *websocket.Conn, sub *live.Subscription, sess *session.Session) {
	defer func() {
		sub.Close()
		conn.Close()
	}()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Unexpected websocket close", "error", err)
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			slog.Error("Unreadable frame from client", "error", err)
			continue
		}

		switch frame.Type {
		case "sendMessage":
			var in live.SendMessageInput
			if err := json.Unmarshal(frame.Payload, &in); err != nil {
				slog.Error("Unreadable sendMessage payload", "error", err)
				continue
			}
			// The socket outlives the upgrade request, so the send runs
			// against a fresh context carrying the session.
			ctx, cancel := context.WithTimeout(session.NewContext(context.Background(), sess), 10*time.Second)
			if _, err := h.svc.SendMessage(ctx, sess, in); err != nil {
				slog.Warn("Rejected chat message from socket", "error", err, "account_id", sess.AccountID)
			}
			cancel()
		default:
			slog.Warn("Unknown frame type from client", "type", frame.Type)
		}
	}
}

func parseTopics(raw string) []live.Topic {
	if raw == "" {
		return []live.Topic{live.TopicMessages, live.TopicAnnouncements, live.TopicSchedule}
	}
	var topics []live.Topic
	for _, t := range strings.Split(raw, ",") {
		topics = append(topics, live.Topic(strings.TrimSpace(t)))
	}
	return topics
}
