package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/live"
)

// ChatHandler is the REST face of the chat; the WebSocket endpoint covers
// the live path.
type ChatHandler struct {
	svc *live.Service
}

func NewChatHandler(svc *live.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// List returns the current chat window (most recent 100, oldest first).
func (h *ChatHandler) List(c *gin.Context) {
	msgs, err := h.svc.ListMessages(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// Send appends a message authored by the caller.
func (h *ChatHandler) Send(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var in live.SendMessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message payload"})
		return
	}

	msg, err := h.svc.SendMessage(c.Request.Context(), sess, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
