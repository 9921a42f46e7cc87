package chunker

import (
	"fmt"
	"strings"
)

// separators is the split cascade, tried in order. Each level that still
// produces oversized pieces hands them to the next level; the final empty
// separator means a hard character split.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Config controls chunking behavior.
type Config struct {
	ChunkSize    int // Target chunk size in characters.
	ChunkOverlap int // Overlap carried from each chunk into the next.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1000,
		ChunkOverlap: 200,
	}
}

// ChunkingError indicates the input text cannot be chunked.
type ChunkingError struct {
	Reason string
}

func (e *ChunkingError) Error() string {
	return "chunking: " + e.Reason
}

// Chunk is a bounded contiguous segment of document text. Adjacent chunks
// overlap by up to ChunkOverlap characters.
type Chunk struct {
	Content string
	Index   int
}

// Collection is an ordered, read-only set of chunks produced from one
// document, plus a parallel lower-cased content slice for fast scoring.
type Collection struct {
	Chunks  []Chunk
	Lowered []string
}

// Len returns the number of chunks.
func (c *Collection) Len() int { return len(c.Chunks) }

// Split breaks text into overlapping chunks using the separator cascade.
// Every chunk's content is at most ChunkSize+ChunkOverlap characters.
func Split(text string, cfg Config) (*Collection, error) {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = 0
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, &ChunkingError{Reason: fmt.Sprintf("overlap %d must be smaller than chunk size %d", cfg.ChunkOverlap, cfg.ChunkSize)}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ChunkingError{Reason: "cannot process empty text"}
	}

	parts := splitRecursive(text, cfg.ChunkSize, separators)

	col := &Collection{
		Chunks:  make([]Chunk, 0, len(parts)),
		Lowered: make([]string, 0, len(parts)),
	}
	prev := ""
	for _, part := range parts {
		content := part
		if prev != "" && cfg.ChunkOverlap > 0 {
			content = tail(prev, cfg.ChunkOverlap) + content
		}
		idx := len(col.Chunks)
		col.Chunks = append(col.Chunks, Chunk{Content: content, Index: idx})
		col.Lowered = append(col.Lowered, strings.ToLower(content))
		prev = part
	}
	return col, nil
}

// splitRecursive splits text on the first separator, merges resulting pieces
// back together up to size, and subdivides any piece still over size using
// the remaining separators.
func splitRecursive(text string, size int, seps []string) []string {
	if len(text) <= size {
		if t := strings.TrimSpace(text); t != "" {
			return []string{t}
		}
		return nil
	}

	sep := seps[0]
	if sep == "" {
		return hardSplit(text, size)
	}

	pieces := strings.SplitAfter(text, sep)
	var out []string
	var cur strings.Builder

	flush := func() {
		if t := strings.TrimSpace(cur.String()); t != "" {
			out = append(out, t)
		}
		cur.Reset()
	}

	for _, piece := range pieces {
		if len(piece) > size {
			flush()
			out = append(out, splitRecursive(piece, size, seps[1:])...)
			continue
		}
		if cur.Len() > 0 && cur.Len()+len(piece) > size {
			flush()
		}
		cur.WriteString(piece)
	}
	flush()
	return out
}

// hardSplit cuts text into size-length pieces at rune boundaries. Last
// resort when no separator level can bring a piece under size.
func hardSplit(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		if t := strings.TrimSpace(string(runes[start:end])); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// tail returns the last n runes of s.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
