package routes

import "github.com/gin-gonic/gin"

// RegisterAuthRoutes registers the public authentication routes. These do
// not require a token.
func RegisterAuthRoutes(r *gin.Engine, d Deps) {
	r.POST("/api/auth/register", d.Auth.Register)
	r.POST("/api/auth/login", d.Auth.Login)
}
