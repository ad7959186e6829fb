package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/quiz"
)

// QuizHandler serves the caller's quiz standing.
type QuizHandler struct {
	tracker *quiz.Tracker
}

func NewQuizHandler(tracker *quiz.Tracker) *QuizHandler {
	return &QuizHandler{tracker: tracker}
}

// Check returns the caller's current result, or null when there is none.
func (h *QuizHandler) Check(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	res, err := h.tracker.CheckSubmission(c.Request.Context(), sess.AccountID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

type submitInput struct {
	Score int `json:"score" binding:"min=0"`
	Total int `json:"total" binding:"required,min=1"`
}

// Submit records a result, replacing any previous one for this account.
func (h *QuizHandler) Submit(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var in submitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Score and total are required"})
		return
	}

	res, err := h.tracker.Submit(c.Request.Context(), sess.AccountID, in.Score, in.Total)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}
