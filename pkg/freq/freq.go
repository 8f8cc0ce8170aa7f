// Package freq computes word-frequency rankings for plain text.
package freq

import (
	"sort"
	"strings"

	"github.com/ncostello/bookfreq/models"
)

// DefaultTopN is the ranking length used by Rank.
const DefaultTopN = 10

// Analyzer turns raw text into a ranked list of (word, count) pairs.
// The zero value counts every word; use WithStopwords to skip common ones.
type Analyzer struct {
	skipStopwords bool
}

// NewAnalyzer returns an Analyzer with the given options applied.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStopwords makes the analyzer drop common English words before ranking.
func WithStopwords() Option {
	return func(a *Analyzer) { a.skipStopwords = true }
}

// Rank returns the top 10 words in text by descending count.
func (a *Analyzer) Rank(text string) []models.WordCount {
	return a.RankN(text, DefaultTopN)
}

// RankN returns the top n words in text by descending count. Ties keep the
// order in which the words first appeared. Texts with fewer than n distinct
// words yield all of them; empty or non-alphabetic text yields an empty
// ranking.
func (a *Analyzer) RankN(text string, n int) []models.WordCount {
	return TopN(a.Tally(text), n)
}

// Tally counts every word in text, in first-encounter order. Words are
// maximal runs of ASCII letters after lowercasing; digits, punctuation,
// apostrophes and hyphens all act as separators.
func (a *Analyzer) Tally(text string) []models.WordCount {
	text = strings.ToLower(text)

	var counts []models.WordCount
	index := make(map[string]int)

	emit := func(word string) {
		if word == "" {
			return
		}
		if a.skipStopwords && IsStopword(word) {
			return
		}
		if i, ok := index[word]; ok {
			counts[i].Count++
			return
		}
		index[word] = len(counts)
		counts = append(counts, models.WordCount{Word: word, Count: 1})
	}

	var sb strings.Builder
	for _, r := range text {
		if 'a' <= r && r <= 'z' {
			sb.WriteRune(r)
			continue
		}
		emit(sb.String())
		sb.Reset()
	}
	emit(sb.String())

	return counts
}

// TopN sorts a tally by descending count and truncates it to n entries.
// The sort is stable, so equal counts keep their tally order.
func TopN(counts []models.WordCount, n int) []models.WordCount {
	if n <= 0 {
		return nil
	}

	ranked := make([]models.WordCount, len(counts))
	copy(ranked, counts)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Total sums the counts in a tally.
func Total(counts []models.WordCount) int {
	total := 0
	for _, wc := range counts {
		total += wc.Count
	}
	return total
}
