package pipeline

import (
	"sync"
	"time"
)

// TaskStatus represents the state of a single analysis task.
type TaskStatus string

const (
	StatusQueued     TaskStatus = "queued"
	StatusExtracting TaskStatus = "extracting_text"
	StatusChunking   TaskStatus = "chunking"
	StatusAnalyzing  TaskStatus = "analyzing"
	StatusRendering  TaskStatus = "rendering"
	StatusCompleted  TaskStatus = "completed"
	StatusFailed     TaskStatus = "failed"
)

// Task tracks one document analysis from upload to rendered report.
// A task owns its document exclusively; nothing is shared across tasks.
type Task struct {
	mu sync.Mutex

	ID       string
	Filename string

	Status TaskStatus
	Error  string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Internal, populated as the pipeline advances.
	fileData       []byte
	reportMarkdown string
	reportHTML     string
}

// NewTask creates a queued task for an uploaded file.
func NewTask(filename string, data []byte) *Task {
	now := time.Now()
	return &Task{
		ID:        newTaskID(),
		Filename:  filename,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
	}
}

// SetStatus updates task status atomically.
func (t *Task) SetStatus(status TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = status
	t.UpdatedAt = time.Now()
}

// Fail marks the task failed with a human-readable message.
func (t *Task) Fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = StatusFailed
	t.Error = msg
	t.UpdatedAt = time.Now()
}

// FileData returns the raw uploaded bytes.
func (t *Task) FileData() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fileData
}

// SetReport stores the rendered report and releases the upload bytes,
// which are no longer needed.
func (t *Task) SetReport(markdown, html string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reportMarkdown = markdown
	t.reportHTML = html
	t.fileData = nil
	t.UpdatedAt = time.Now()
}

// Report returns the rendered report texts.
func (t *Task) Report() (markdown, html string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reportMarkdown, t.reportHTML
}

// Snapshot is a read-only, JSON-safe copy of task state.
type Snapshot struct {
	ID        string     `json:"task_id"`
	Filename  string     `json:"filename"`
	Status    TaskStatus `json:"status"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the task state.
func (t *Task) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		ID:        t.ID,
		Filename:  t.Filename,
		Status:    t.Status,
		Error:     t.Error,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// TaskStore is a thread-safe in-memory task registry with TTL eviction,
// so completed and failed tasks do not accumulate without bound.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string]*Task
	ttl   time.Duration
}

func NewTaskStore(ttl time.Duration) *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*Task),
		ttl:   ttl,
	}
}

func (s *TaskStore) Put(task *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
}

func (s *TaskStore) Get(id string) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id]
}

// Cleanup removes expired tasks.
func (s *TaskStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, task := range s.tasks {
		task.mu.Lock()
		expired := now.Sub(task.UpdatedAt) > s.ttl
		task.mu.Unlock()
		if expired {
			delete(s.tasks, id)
		}
	}
}
