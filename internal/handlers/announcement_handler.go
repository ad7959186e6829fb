package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/live"
)

// AnnouncementHandler serves the classroom board.
type AnnouncementHandler struct {
	svc       *live.Service
	uploadDir string
}

func NewAnnouncementHandler(svc *live.Service, uploadDir string) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc, uploadDir: uploadDir}
}

// List returns all announcements, newest first.
func (h *AnnouncementHandler) List(c *gin.Context) {
	posts, err := h.svc.ListAnnouncements(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Post creates an announcement. The service re-checks the role; the route
// middleware has already rejected students.
func (h *AnnouncementHandler) Post(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var in live.PostAnnouncementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement payload"})
		return
	}

	post, err := h.svc.PostAnnouncement(c.Request.Context(), sess, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Delete removes an announcement; deleting twice is fine.
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement ID"})
		return
	}

	if err := h.svc.DeleteAnnouncement(c.Request.Context(), sess, uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}

// UploadImage stores an illustration for a future announcement and
// returns its URL. Only image types are accepted.
func (h *AnnouncementHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
		return
	}

	dir := filepath.Join(h.uploadDir, "announcements")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create upload directory"})
		return
	}

	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save file: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imageUrl": "/static/uploads/announcements/" + name})
}
