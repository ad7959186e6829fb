package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/middleware"
)

// RegisterAPIRoutes registers every authenticated route.
func RegisterAPIRoutes(g *gin.RouterGroup, d Deps) {
	g.POST("/api/auth/logout", d.Auth.Logout)
	g.GET("/api/me", d.Auth.Me)

	// Live subscriptions (chat sends also travel over this socket).
	g.GET("/ws/live", d.Live.Subscribe)

	g.GET("/api/messages", d.Chat.List)
	g.POST("/api/messages", d.Chat.Send)

	g.GET("/api/announcements", d.Announcements.List)
	g.GET("/api/schedule", d.Schedule.List)

	g.GET("/api/quiz/submission", d.Quiz.Check)
	g.POST("/api/quiz/submission", d.Quiz.Submit)

	g.POST("/api/ai/translate", d.AI.Translate)
	g.POST("/api/ai/quiz", d.AI.GenerateQuiz)
	g.POST("/api/ai/image", d.AI.GenerateImage)

	// Shared-content management. The middleware fails fast; the mutations
	// check again so the gate cannot be bypassed by a future route.
	managed := g.Group("/")
	managed.Use(middleware.RequireManager())
	{
		managed.POST("/api/announcements", d.Announcements.Post)
		managed.DELETE("/api/announcements/:id", d.Announcements.Delete)
		managed.POST("/api/announcements/image", d.Announcements.UploadImage)
		managed.POST("/api/schedule", d.Schedule.Add)
		managed.DELETE("/api/schedule/:id", d.Schedule.Delete)
	}

	g.POST("/api/accounts/:id/promote", d.Auth.Promote)
}
