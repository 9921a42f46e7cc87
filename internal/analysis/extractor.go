package analysis

import (
	"context"
	"log/slog"
	"strings"
)

// Extractor produces answer text for a question from retrieved context.
// The two implementations are interchangeable; which one runs is decided
// once at startup from a capability probe, not per call.
type Extractor interface {
	Extract(ctx context.Context, q Question, docContext string) (string, error)
}

// Generator is the single operation needed from a text-generation
// backend.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelExtractor asks a generative backend for answers and falls back to
// pattern rules when the backend fails. The fallback is local per
// question and never surfaces as an error.
type ModelExtractor struct {
	gen   Generator
	rules RuleExtractor
	log   *slog.Logger
}

// NewExtractor selects the extraction strategy. A nil generator means no
// model is available and every question runs on rules.
func NewExtractor(gen Generator, log *slog.Logger) Extractor {
	if gen == nil {
		return RuleExtractor{}
	}
	return &ModelExtractor{gen: gen, log: log}
}

func (m *ModelExtractor) Extract(ctx context.Context, q Question, docContext string) (string, error) {
	prompt := BuildPrompt(q, docContext)
	text, err := m.gen.Generate(ctx, prompt)
	if err != nil {
		m.log.Warn("model extraction failed, using rules", "question", string(q), "error", err)
		return m.rules.Extract(ctx, q, docContext)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		m.log.Warn("model returned empty answer, using rules", "question", string(q))
		return m.rules.Extract(ctx, q, docContext)
	}
	return text, nil
}
