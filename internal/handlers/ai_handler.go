package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/ai"
	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// AIHandler exposes the augmentation pipeline. Generation failures never
// block the caller's primary action: each endpoint degrades to its
// defined fallback instead of erroring the request away.
type AIHandler struct {
	pipeline *ai.Pipeline
}

func NewAIHandler(pipeline *ai.Pipeline) *AIHandler {
	return &AIHandler{pipeline: pipeline}
}

type translateInput struct {
	Text string `json:"text" binding:"required"`
}

// Translate returns {hanzi, pinyin} for the given text. When generation
// fails the response is a clearly marked placeholder carrying the
// original text, so sending the untranslated message stays possible.
func (h *AIHandler) Translate(c *gin.Context) {
	var in translateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	tr, err := h.pipeline.Translate(c.Request.Context(), in.Text)
	if err != nil {
		if errors.Is(err, models.ErrGeneration) {
			c.JSON(http.StatusOK, gin.H{
				"hanzi":    in.Text,
				"pinyin":   "",
				"fallback": true,
			})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hanzi": tr.Hanzi, "pinyin": tr.Pinyin, "fallback": false})
}

type quizGenInput struct {
	Topic string `json:"topic" binding:"required"`
}

// GenerateQuiz returns 5 fresh questions on the topic, or the fixed
// default set when generation fails.
func (h *AIHandler) GenerateQuiz(c *gin.Context) {
	var in quizGenInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topic is required"})
		return
	}

	questions, err := h.pipeline.GenerateQuiz(c.Request.Context(), in.Topic)
	if err != nil {
		if errors.Is(err, models.ErrGeneration) {
			c.JSON(http.StatusOK, gin.H{"questions": models.DefaultQuiz(), "fallback": true})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions, "fallback": false})
}

type imageGenInput struct {
	Prompt    string `json:"prompt" binding:"required"`
	BaseImage string `json:"baseImage"`
}

// GenerateImage produces or edits an illustration. A null imageUrl means
// the model returned no image; that is not an error.
func (h *AIHandler) GenerateImage(c *gin.Context) {
	var in imageGenInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	dataURI, err := h.pipeline.GenerateOrEditImage(c.Request.Context(), in.Prompt, in.BaseImage)
	if err != nil {
		writeError(c, err)
		return
	}

	if dataURI == "" {
		c.JSON(http.StatusOK, gin.H{"imageUrl": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": dataURI})
}
