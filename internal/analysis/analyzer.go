package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tenderlens/tenderlens/internal/chunker"
	"github.com/tenderlens/tenderlens/internal/index"
)

// AnalysisError reports an irrecoverable failure producing the answer for
// one question. It aborts the run; prior answers are discarded.
type AnalysisError struct {
	Question Question
	Err      error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis of %q: %v", e.Question, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Analyzer runs every question against one document's index and collects
// the answers. One Analyzer serves one analysis run.
type Analyzer struct {
	idx       *index.Index
	extractor Extractor
	topK      int
	log       *slog.Logger
}

// NewAnalyzer builds an analyzer over an already-built index.
func NewAnalyzer(idx *index.Index, extractor Extractor, topK int, log *slog.Logger) *Analyzer {
	if topK <= 0 {
		topK = index.DefaultTopK
	}
	return &Analyzer{idx: idx, extractor: extractor, topK: topK, log: log}
}

// Analyze answers all questions and returns the complete mapping. The
// per-question extractions are independent and run concurrently; failures
// are collected per question and the error reported names the earliest
// failing question in declared order.
func (a *Analyzer) Analyze(ctx context.Context) (Result, error) {
	type questionResult struct {
		q      Question
		answer string
		err    error
	}
	results := make(chan questionResult, len(Questions))

	for _, q := range Questions {
		go func(q Question) {
			answer, err := a.analyzeQuestion(ctx, q)
			results <- questionResult{q: q, answer: answer, err: err}
		}(q)
	}

	answers := make(Result, len(Questions))
	errs := make(map[Question]error, len(Questions))
	for range Questions {
		r := <-results
		if r.err != nil {
			a.log.Error("question analysis failed", "question", string(r.q), "error", r.err)
			errs[r.q] = r.err
			continue
		}
		answers[r.q] = r.answer
	}

	for _, q := range Questions {
		if err := errs[q]; err != nil {
			return nil, &AnalysisError{Question: q, Err: err}
		}
	}
	return answers, nil
}

func (a *Analyzer) analyzeQuestion(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	query := BuildSearchQuery(q)
	chunks, err := a.idx.Search(query, a.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}
	a.log.Debug("retrieved context", "question", string(q), "chunks", len(chunks))

	answer, err := a.extractor.Extract(ctx, q, index.Context(chunks))
	if err != nil {
		return "", fmt.Errorf("extract answer: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		answer = fmt.Sprintf("No specific %s information found in the document.", strings.ToLower(string(q)))
	}
	return answer, nil
}

// AnalyzeText is a convenience wrapper that chunks, indexes and analyzes
// a raw document text in one call.
func AnalyzeText(ctx context.Context, text string, chunkCfg chunker.Config, extractor Extractor, topK int, log *slog.Logger) (Result, error) {
	col, err := chunker.Split(text, chunkCfg)
	if err != nil {
		return nil, err
	}
	idx, err := index.Build(col)
	if err != nil {
		return nil, err
	}
	return NewAnalyzer(idx, extractor, topK, log).Analyze(ctx)
}
