package models

import (
	"fmt"
	"strings"
	"time"
)

// WordCount is one ranked word with its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Ranking is the ordered result of a frequency analysis for one title.
type Ranking struct {
	Title  string      `json:"title"`
	Words  []WordCount `json:"words"`
	Source string      `json:"source,omitempty"` // URL the text was fetched from

	// Analysis metadata
	Language      string    `json:"language,omitempty"` // ISO 639-1
	TotalWords    int       `json:"total_words,omitempty"`
	DistinctWords int       `json:"distinct_words,omitempty"`
	AnalyzedAt    time.Time `json:"analyzed_at,omitempty"`
}

// Lines renders the ranking as "word: count" lines, one per word.
func (r *Ranking) Lines() string {
	var sb strings.Builder
	for _, wc := range r.Words {
		fmt.Fprintf(&sb, "%s: %d\n", wc.Word, wc.Count)
	}
	return sb.String()
}
