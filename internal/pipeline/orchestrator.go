package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tenderlens/tenderlens/internal/analysis"
	"github.com/tenderlens/tenderlens/internal/chunker"
	"github.com/tenderlens/tenderlens/internal/config"
)

// Orchestrator manages the tender analysis pipeline.
type Orchestrator struct {
	tasks     *TaskStore
	queue     chan *Task
	extractor analysis.Extractor
	log       *slog.Logger
	cfg       config.Config
	chunkCfg  chunker.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, extractor analysis.Extractor, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		tasks:     NewTaskStore(cfg.TaskTTL),
		queue:     make(chan *Task, cfg.MaxQueueSize),
		extractor: extractor,
		log:       log,
		cfg:       cfg,
		chunkCfg: chunker.Config{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		},
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.extractor, o.log, o.chunkCfg, o.cfg.TopK, o.cfg.RunTimeout, o.cfg.PDFFallbackPdftotext)
			for {
				select {
				case <-workerCtx.Done():
					return
				case task, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, task)
				}
			}
		}()
	}

	// Start task store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.tasks.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new task for processing.
func (o *Orchestrator) Submit(task *Task) error {
	o.tasks.Put(task)
	select {
	case o.queue <- task:
		return nil
	default:
		task.Fail("queue_full")
		return fmt.Errorf("task queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetTask returns a task by ID.
func (o *Orchestrator) GetTask(id string) *Task {
	return o.tasks.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
