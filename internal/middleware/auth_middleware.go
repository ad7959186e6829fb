package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/authz"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/session"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/store"
)

// sessionTTL bounds how long cached session data may lag behind the
// database (e.g. after a promotion).
const sessionTTL = 10 * time.Minute

// SessionCacheKey is the Redis key holding the cached session of one
// account. Logout and promotion delete it.
func SessionCacheKey(accountID uint) string {
	return fmt.Sprintf("session:%d:data", accountID)
}

// Auth authenticates the request from the auth_token cookie or a bearer
// header, resolves the account (Redis cache first, then the database) and
// attaches a session to the request context. rdb may be nil.
func Auth(jwtKey []byte, rdb *redis.Client, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortUnauthorized(c, "Authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				abortUnauthorized(c, "Invalid Authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}
		idFloat, ok := claims["account_id"].(float64)
		if !ok {
			abortUnauthorized(c, "Invalid account ID in token")
			return
		}
		accountID := uint(idFloat)

		ctx := c.Request.Context()

		if rdb != nil {
			if cached, err := rdb.Get(ctx, SessionCacheKey(accountID)).Result(); err == nil {
				var sess session.Session
				if json.Unmarshal([]byte(cached), &sess) == nil {
					proceed(c, &sess)
					return
				}
				slog.Warn("Dropping unreadable cached session", "account_id", accountID)
			} else if err != redis.Nil {
				slog.Error("Redis GET failed", "error", err, "account_id", accountID)
			}
		}

		acc, err := st.AccountByID(ctx, accountID)
		if err != nil {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			abortUnauthorized(c, "Account from token no longer exists")
			return
		}

		sess := session.Session{
			AccountID: acc.ID,
			Name:      acc.Name,
			Email:     acc.Email,
			Role:      acc.Role,
		}

		if rdb != nil {
			if data, err := json.Marshal(sess); err == nil {
				if err := rdb.Set(ctx, SessionCacheKey(acc.ID), data, sessionTTL).Err(); err != nil {
					slog.Error("Failed to cache session", "error", err, "account_id", acc.ID)
				}
			}
		}

		proceed(c, &sess)
	}
}

// RequireManager rejects requests from roles that may not manage shared
// content. The mutations enforce this again; the middleware just fails
// earlier.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c.Request.Context())
		if !ok || !authz.CanManageSharedContent(sess.Role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func proceed(c *gin.Context, sess *session.Session) {
	c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))
	c.Next()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
