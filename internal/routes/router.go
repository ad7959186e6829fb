package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/handlers"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/middleware"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/store"
	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// Deps is everything route registration needs.
type Deps struct {
	Auth          *handlers.AuthHandler
	Live          *handlers.LiveHandler
	Chat          *handlers.ChatHandler
	Announcements *handlers.AnnouncementHandler
	Schedule      *handlers.ScheduleHandler
	Quiz          *handlers.QuizHandler
	AI            *handlers.AIHandler

	Store  *store.Store
	Redis  *redis.Client
	JWTKey []byte
}

// SetupRoutes registers every route of the application.
func SetupRoutes(r *gin.Engine, d Deps) {
	registerValidators()

	r.Static("/static", "./static")

	// Public routes: registration and login only.
	RegisterAuthRoutes(r, d)

	// Everything else requires an authenticated session.
	authRequired := r.Group("/")
	authRequired.Use(middleware.Auth(d.JWTKey, d.Redis, d.Store))
	RegisterAPIRoutes(authRequired, d)
}

// registerValidators wires custom checks into gin's binding engine.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("classroomrole", func(fl validator.FieldLevel) bool {
			return models.Role(fl.Field().String()).Valid()
		})
	}
}
