package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/live"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/middleware"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/session"
	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// AuthHandler serves registration, login/logout and role promotion.
type AuthHandler struct {
	svc      *live.Service
	rdb      *redis.Client
	jwtKey   []byte
	tokenTTL time.Duration
}

func NewAuthHandler(svc *live.Service, rdb *redis.Client, jwtKey []byte, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, rdb: rdb, jwtKey: jwtKey, tokenTTL: tokenTTL}
}

type loginInput struct {
	Email  string `json:"email" binding:"required,email"`
	Secret string `json:"secret" binding:"required"`
}

// Login verifies credentials and hands out a JWT, both as a cookie and in
// the response body.
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and secret are required"})
		return
	}

	sess, acc, err := h.svc.Login(c.Request.Context(), in.Email, in.Secret)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.issueToken(sess)
	if err != nil {
		slog.Error("Failed to sign token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}

	c.SetCookie("auth_token", token, int(h.tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "account": acc})
}

type registerInput struct {
	Email  string `json:"email" binding:"required,email"`
	Secret string `json:"secret" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role" binding:"omitempty,classroomrole"`
}

// Register creates an account and logs it in. Privileged role hints are
// ignored; only an admin can promote afterwards.
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration data: " + err.Error()})
		return
	}

	sess, acc, err := h.svc.Register(c.Request.Context(), live.RegisterInput{
		Email:  in.Email,
		Secret: in.Secret,
		Name:   in.Name,
		Role:   in.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.issueToken(sess)
	if err != nil {
		slog.Error("Failed to sign token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}

	c.SetCookie("auth_token", token, int(h.tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusCreated, gin.H{"token": token, "account": acc})
}

// Logout clears the cookie and drops the cached session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := session.FromContext(c.Request.Context()); ok && h.rdb != nil {
		if err := h.rdb.Del(c.Request.Context(), middleware.SessionCacheKey(sess.AccountID)).Err(); err != nil {
			slog.Error("Failed to drop cached session", "error", err, "account_id", sess.AccountID)
		}
	}
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the caller's session.
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess)
}

type promoteInput struct {
	Role string `json:"role" binding:"required,classroomrole"`
}

// Promote changes another account's role. Admin only; the target's cached
// session is invalidated so the new role takes effect promptly.
func (h *AuthHandler) Promote(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	var in promoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid role is required"})
		return
	}

	if err := h.svc.PromoteAccount(c.Request.Context(), sess, uint(id), models.Role(in.Role)); err != nil {
		writeError(c, err)
		return
	}

	if h.rdb != nil {
		if err := h.rdb.Del(c.Request.Context(), middleware.SessionCacheKey(uint(id))).Err(); err != nil {
			slog.Error("Failed to invalidate cached session after promotion", "error", err, "account_id", id)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

func (h *AuthHandler) issueToken(sess *session.Session) (string, error) {
	claims := jwt.MapClaims{
		"account_id": sess.AccountID,
		"exp":        time.Now().Add(h.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtKey)
}
