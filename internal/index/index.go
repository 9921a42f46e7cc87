package index

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tenderlens/tenderlens/internal/chunker"
)

// Index supports ranked retrieval of chunks by keyword overlap with a
// query. It is a textual approximation to semantic search and needs no
// embedding backend; one Index serves exactly one analysis run and is
// read-only after Build.
type Index struct {
	col *chunker.Collection
}

// RetrievalError indicates the index could not serve a search.
type RetrievalError struct {
	Reason string
}

func (e *RetrievalError) Error() string {
	return "retrieval: " + e.Reason
}

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// minTokenLen filters out short, low-signal words ("the", "for", "of").
const minTokenLen = 3

// Build creates an index over a chunk collection.
func Build(col *chunker.Collection) (*Index, error) {
	if col == nil || col.Len() == 0 {
		return nil, &RetrievalError{Reason: "cannot index an empty chunk collection"}
	}
	return &Index{col: col}, nil
}

// Search returns the k chunks most relevant to query, ordered by
// descending score with ties broken by ascending chunk index. A query
// with no qualifying keywords returns the first k chunks in document
// order rather than failing.
func (ix *Index) Search(query string, k int) ([]chunker.Chunk, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	if k > ix.col.Len() {
		k = ix.col.Len()
	}

	keywords := Tokenize(query)
	if len(keywords) == 0 {
		return append([]chunker.Chunk(nil), ix.col.Chunks[:k]...), nil
	}

	type scored struct {
		idx   int
		score int
	}
	scores := make([]scored, ix.col.Len())
	for i, text := range ix.col.Lowered {
		n := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				n++
			}
		}
		scores[i] = scored{idx: i, score: n}
	}

	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].score > scores[b].score
	})

	out := make([]chunker.Chunk, 0, k)
	for _, s := range scores[:k] {
		out = append(out, ix.col.Chunks[s.idx])
	}
	return out, nil
}

// Tokenize lowercases query and extracts word tokens longer than three
// characters.
func Tokenize(query string) []string {
	raw := wordPattern.FindAllString(strings.ToLower(query), -1)
	out := raw[:0]
	for _, tok := range raw {
		if len(tok) > minTokenLen {
			out = append(out, tok)
		}
	}
	return out
}

// Context joins retrieved chunks with blank lines, in retrieval order,
// for handoff to answer extraction.
func Context(chunks []chunker.Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}
	return strings.Join(parts, "\n\n")
}
