// Package ai turns free text and images into structured, contract-checked
// artifacts by calling a generative model. The model is an injected
// capability; nothing in here touches the entity store.
package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// InlineImage is raw image bytes plus their mime type.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// Request is one call to the generative capability. ResponseMIMEType and
// ResponseSchema constrain the model to structured JSON output; they are a
// hint, not a guarantee — the pipeline still validates everything.
type Request struct {
	Model            string
	Prompt           string
	Image            *InlineImage
	ResponseMIMEType string
	ResponseSchema   *genai.Schema
}

// Response is whatever the model produced: accumulated text and any
// inline images, in order of appearance.
type Response struct {
	Text   string
	Images []InlineImage
}

// Generator is the external generative capability. Implementations are
// nondeterministic and may fail or hang; callers bound them with a
// context deadline.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// GeminiGenerator implements Generator on the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	model := g.client.GenerativeModel(req.Model)
	if req.ResponseMIMEType != "" {
		model.ResponseMIMEType = req.ResponseMIMEType
	}
	if req.ResponseSchema != nil {
		model.ResponseSchema = req.ResponseSchema
	}

	var parts []genai.Part
	if req.Image != nil {
		parts = append(parts, genai.Blob{MIMEType: req.Image.MIMEType, Data: req.Image.Data})
	}
	parts = append(parts, genai.Text(req.Prompt))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	out := &Response{}
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				out.Text += string(p)
			case genai.Blob:
				out.Images = append(out.Images, InlineImage{MIMEType: p.MIMEType, Data: p.Data})
			}
		}
	}
	return out, nil
}
