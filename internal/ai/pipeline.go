package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// Pipeline implements the three augmentation operations. Every call is
// stateless, bounded by a timeout, and converts any model misbehavior —
// transport failure, malformed JSON, contract violation — into
// models.ErrGeneration. Callers always have a fallback; nothing here may
// crash them.
type Pipeline struct {
	gen        Generator
	textModel  string
	imageModel string
	timeout    time.Duration
	log        *slog.Logger
}

func NewPipeline(gen Generator, textModel, imageModel string, timeout time.Duration, log *slog.Logger) *Pipeline {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Pipeline{gen: gen, textModel: textModel, imageModel: imageModel, timeout: timeout, log: log}
}

var translationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"hanzi":  {Type: genai.TypeString},
		"pinyin": {Type: genai.TypeString},
	},
	Required: []string{"hanzi", "pinyin"},
}

// Translate renders text (French or English) into Simplified Chinese plus
// Pinyin. Fails with ErrGeneration when the model output violates the
// two-field contract.
func (p *Pipeline) Translate(ctx context.Context, text string) (*models.Translation, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		`Translate the following text (which is in French or English) into Simplified Chinese (Hanzi). Also provide the Pinyin. Text: %q`,
		text)

	resp, err := p.gen.Generate(ctx, Request{
		Model:            p.textModel,
		Prompt:           prompt,
		ResponseMIMEType: "application/json",
		ResponseSchema:   translationSchema,
	})
	if err != nil {
		p.log.Error("Translation call failed", "error", err)
		return nil, fmt.Errorf("%w: translation failed", models.ErrGeneration)
	}

	raw := extractJSON(resp.Text)
	if raw == "" {
		p.log.Warn("Translation response contained no valid JSON", "response", resp.Text)
		return nil, fmt.Errorf("%w: translation failed", models.ErrGeneration)
	}

	var tr models.Translation
	if err := json.Unmarshal([]byte(raw), &tr); err != nil || tr.Hanzi == "" || tr.Pinyin == "" {
		p.log.Warn("Translation response violated its schema", "json", raw)
		return nil, fmt.Errorf("%w: translation failed", models.ErrGeneration)
	}
	return &tr, nil
}

const (
	quizQuestionCount = 5
	quizOptionCount   = 4
)

var quizSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question":      {Type: genai.TypeString},
			"options":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"correctAnswer": {Type: genai.TypeString},
			"explanation":   {Type: genai.TypeString},
		},
		Required: []string{"question", "options", "correctAnswer", "explanation"},
	},
}

// GenerateQuiz produces exactly 5 beginner multiple-choice questions on
// the topic, each with exactly 4 options of which one equals the correct
// answer verbatim. Each batch gets collision-free fresh question IDs.
func (p *Pipeline) GenerateQuiz(ctx context.Context, topic string) ([]models.QuizQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		`You are an expert Mandarin teacher. Generate exactly %d multiple-choice quiz questions for a beginner student about: %q. Each question must have exactly %d options, and "correctAnswer" must match one of the options verbatim. Return a JSON array.`,
		quizQuestionCount, topic, quizOptionCount)

	resp, err := p.gen.Generate(ctx, Request{
		Model:            p.textModel,
		Prompt:           prompt,
		ResponseMIMEType: "application/json",
		ResponseSchema:   quizSchema,
	})
	if err != nil {
		p.log.Error("Quiz generation call failed", "topic", topic, "error", err)
		return nil, fmt.Errorf("%w: quiz generation failed", models.ErrGeneration)
	}

	raw := extractJSON(resp.Text)
	if raw == "" {
		p.log.Warn("Quiz response contained no valid JSON", "response", resp.Text)
		return nil, fmt.Errorf("%w: quiz generation failed", models.ErrGeneration)
	}

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		p.log.Warn("Quiz response was not a question array", "json", raw)
		return nil, fmt.Errorf("%w: quiz generation failed", models.ErrGeneration)
	}
	if err := validateQuiz(questions); err != nil {
		p.log.Warn("Quiz response violated its contract", "reason", err)
		return nil, fmt.Errorf("%w: quiz generation failed", models.ErrGeneration)
	}

	batch := time.Now().UnixNano()
	for i := range questions {
		questions[i].ID = fmt.Sprintf("gen_%d_%d", batch, i)
	}
	return questions, nil
}

func validateQuiz(questions []models.QuizQuestion) error {
	if len(questions) != quizQuestionCount {
		return fmt.Errorf("expected %d questions, got %d", quizQuestionCount, len(questions))
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d is empty", i)
		}
		if len(q.Options) != quizOptionCount {
			return fmt.Errorf("question %d has %d options", i, len(q.Options))
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("question %d answer not among options", i)
		}
	}
	return nil
}

// GenerateOrEditImage asks the model for an illustration; with a base
// image it becomes an edit. base may be a data URI or bare base64. The
// first image in the response comes back as a data URI; "" with a nil
// error means the model produced no illustration, which is not a failure.
func (p *Pipeline) GenerateOrEditImage(ctx context.Context, prompt, base string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := Request{Model: p.imageModel, Prompt: prompt}
	if base != "" {
		img, err := ParseImageInput(base)
		if err != nil {
			return "", err
		}
		req.Image = &img
	}

	resp, err := p.gen.Generate(ctx, req)
	if err != nil {
		p.log.Error("Image generation call failed", "error", err)
		return "", fmt.Errorf("%w: image generation failed", models.ErrGeneration)
	}

	if len(resp.Images) == 0 {
		return "", nil
	}
	return EncodeDataURI("image/png", resp.Images[0].Data), nil
}
