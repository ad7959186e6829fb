package ai

import (
	"context"
	"errors"
)

// Disabled is the Generator used when no API key is configured. Every
// call fails, which routes all pipeline callers onto their fallbacks.
type Disabled struct{}

func (Disabled) Generate(context.Context, Request) (*Response, error) {
	return nil, errors.New("generative AI is not configured")
}
