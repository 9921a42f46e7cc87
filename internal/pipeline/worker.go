package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tenderlens/tenderlens/internal/analysis"
	"github.com/tenderlens/tenderlens/internal/chunker"
	"github.com/tenderlens/tenderlens/internal/document"
	"github.com/tenderlens/tenderlens/internal/index"
	"github.com/tenderlens/tenderlens/internal/report"
)

// Worker processes a single analysis task end to end.
type Worker struct {
	extractor   analysis.Extractor
	log         *slog.Logger
	chunkCfg    chunker.Config
	topK        int
	runTimeout  time.Duration
	pdfFallback bool
}

func NewWorker(extractor analysis.Extractor, log *slog.Logger, chunkCfg chunker.Config, topK int, runTimeout time.Duration, pdfFallback bool) *Worker {
	return &Worker{
		extractor:   extractor,
		log:         log,
		chunkCfg:    chunkCfg,
		topK:        topK,
		runTimeout:  runTimeout,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full analysis pipeline for a task. Each run builds
// its own chunk collection and index, so concurrent tasks never share
// document state.
func (w *Worker) Process(ctx context.Context, task *Task) {
	log := w.log.With("task_id", task.ID, "filename", task.Filename)
	start := time.Now()

	// Phase 1: extract text from the uploaded document.
	task.SetStatus(StatusExtracting)
	ext, err := document.ForFile(task.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		task.Fail(err.Error())
		return
	}
	if pdfExt, ok := ext.(*document.PDFExtractor); ok {
		pdfExt.FallbackPdftotext = w.pdfFallback
	}

	text, err := ext.Extract(bytes.NewReader(task.FileData()), task.Filename)
	if err != nil {
		log.Error("text extraction failed", "error", err)
		task.Fail(fmt.Sprintf("extract: %s", err))
		return
	}

	// Phase 2: chunk and index.
	task.SetStatus(StatusChunking)
	col, err := chunker.Split(text, w.chunkCfg)
	if err != nil {
		log.Error("chunking failed", "error", err)
		task.Fail(fmt.Sprintf("chunk: %s", err))
		return
	}
	log.Info("chunked document", "chunks", len(col.Chunks))

	idx, err := index.Build(col)
	if err != nil {
		log.Error("indexing failed", "error", err)
		task.Fail(fmt.Sprintf("index: %s", err))
		return
	}

	// Phase 3: answer each question against the index.
	task.SetStatus(StatusAnalyzing)
	runCtx := ctx
	if w.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, w.runTimeout)
		defer cancel()
	}

	analyzer := analysis.NewAnalyzer(idx, w.extractor, w.topK, w.log)
	result, err := analyzer.Analyze(runCtx)
	if err != nil {
		var aerr *analysis.AnalysisError
		if errors.As(err, &aerr) {
			log.Error("analysis failed", "question", string(aerr.Question), "error", aerr.Err)
		} else {
			log.Error("analysis failed", "error", err)
		}
		task.Fail(fmt.Sprintf("analyze: %s", err))
		return
	}

	// Phase 4: render the report.
	task.SetStatus(StatusRendering)
	rep := report.New(task.Filename, result)
	html, err := rep.HTML()
	if err != nil {
		log.Error("report rendering failed", "error", err)
		task.Fail(fmt.Sprintf("render: %s", err))
		return
	}
	task.SetReport(rep.Markdown(), html)

	task.SetStatus(StatusCompleted)
	log.Info("task completed", "duration_ms", time.Since(start).Milliseconds())
}
