// Package session carries the authenticated caller through a request.
// There is deliberately no process-wide "current user": a Session is
// created at login, travels in the request context, and dies with it.
package session

import (
	"context"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// Session identifies the authenticated account for one request.
type Session struct {
	AccountID uint        `json:"accountId"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

type ctxKey struct{}

// NewContext returns ctx with the session attached.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the session, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}
