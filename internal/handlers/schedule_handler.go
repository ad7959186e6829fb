package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/live"
	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// ScheduleHandler serves the shared weekly schedule.
type ScheduleHandler struct {
	svc *live.Service
}

func NewScheduleHandler(svc *live.Service) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// List returns every entry plus the fixed day sequence clients group by.
func (h *ScheduleHandler) List(c *gin.Context) {
	entries, err := h.svc.ListSchedule(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "dayOrder": models.DayOrder})
}

// Add creates a schedule entry.
func (h *ScheduleHandler) Add(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var in live.AddScheduleItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule payload"})
		return
	}

	entry, err := h.svc.AddScheduleItem(c.Request.Context(), sess, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// Delete removes an entry; repeated deletes of the same id succeed.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule entry ID"})
		return
	}

	if err := h.svc.DeleteScheduleItem(c.Request.Context(), sess, uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule entry deleted"})
}
