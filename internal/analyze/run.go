// Package analyze orchestrates the lookup → retrieve → rank → remember flow
// behind the analyze command.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ncostello/bookfreq/models"
	"github.com/ncostello/bookfreq/pkg/freq"
	"github.com/ncostello/bookfreq/pkg/gutenberg"
)

// ErrEmptyTitle is returned when no title was supplied.
var ErrEmptyTitle = errors.New("title must not be empty")

// ErrStorage marks result-store failures so callers can tell them apart from
// retrieval failures. A store that reports it should be considered unusable
// until reopened.
var ErrStorage = errors.New("storage failure")

// Retriever produces raw book text: a search step that maps a title to a
// text URL, and a fetch step that downloads the body.
type Retriever interface {
	SearchTitle(ctx context.Context, title string) (string, error)
	FetchText(ctx context.Context, url string) (string, int, error)
}

// Store is the slice of the result store the runner needs.
type Store interface {
	Lookup(title string) (*models.Ranking, error)
	Remember(title string, ranking *models.Ranking) error
	RecordFetch(url string, statusCode int, errorType string, success bool) error
}

// TextCache fronts the network fetch of raw book text.
type TextCache interface {
	Get(url string) ([]byte, bool)
	Set(url string, data []byte) error
}

// LanguageDetector identifies the language of fetched text.
type LanguageDetector interface {
	Detect(text string) string
}

// Runner wires the store, retriever and analyzer into one analyze flow.
// Cache and Detector are optional.
type Runner struct {
	Logger    *slog.Logger
	Store     Store
	Retriever Retriever
	Analyzer  *freq.Analyzer
	Cache     TextCache
	Detector  LanguageDetector
	TopN      int
}

// Run performs one analysis for a title. The result store is consulted first;
// on a hit no retrieval happens at all. On a miss the text comes from
// directURL when given, otherwise from a title search, and the computed
// ranking is persisted before it is returned. force skips the store lookup
// and always re-analyzes.
func (r *Runner) Run(ctx context.Context, title, directURL string, force bool) (*models.Ranking, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}

	if !force {
		cached, err := r.Store.Lookup(title)
		if err != nil {
			return nil, fmt.Errorf("%w: lookup: %w", ErrStorage, err)
		}
		if cached != nil {
			r.Logger.Info("Result cache hit", "title", title, "analyzed_at", cached.AnalyzedAt)
			return cached, nil
		}
	}

	textURL := directURL
	if textURL == "" {
		var err error
		textURL, err = r.Retriever.SearchTitle(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("search for %q failed: %w", title, err)
		}
		r.Logger.Info("Search resolved title", "title", title, "url", textURL)
	}

	text, err := r.fetch(ctx, textURL)
	if err != nil {
		return nil, err
	}

	ranking := r.rank(title, textURL, text)
	if err := r.Store.Remember(title, ranking); err != nil {
		return nil, fmt.Errorf("%w: remember: %w", ErrStorage, err)
	}
	r.Logger.Info("Analysis stored", "title", title,
		"total_words", ranking.TotalWords, "distinct_words", ranking.DistinctWords,
		"language", ranking.Language)

	return ranking, nil
}

// fetch returns the raw text for a URL, via the text cache when possible.
// Network attempts land in the fetch log either way.
func (r *Runner) fetch(ctx context.Context, textURL string) (string, error) {
	if r.Cache != nil {
		if data, ok := r.Cache.Get(textURL); ok {
			r.Logger.Info("Text cache hit", "url", textURL, "bytes", len(data))
			return string(data), nil
		}
	}

	text, status, err := r.Retriever.FetchText(ctx, textURL)
	if err != nil {
		if logErr := r.Store.RecordFetch(textURL, status, errorType(err), false); logErr != nil {
			r.Logger.Warn("Failed to record fetch attempt", "url", textURL, "error", logErr)
		}
		return "", fmt.Errorf("fetch of %s failed: %w", textURL, err)
	}
	if logErr := r.Store.RecordFetch(textURL, status, "", true); logErr != nil {
		r.Logger.Warn("Failed to record fetch attempt", "url", textURL, "error", logErr)
	}
	r.Logger.Info("Fetched text", "url", textURL, "bytes", len(text))

	if r.Cache != nil {
		if err := r.Cache.Set(textURL, []byte(text)); err != nil {
			r.Logger.Warn("Failed to cache text", "url", textURL, "error", err)
		}
	}

	return text, nil
}

// rank computes the ranking and its metadata from raw text.
func (r *Runner) rank(title, textURL, text string) *models.Ranking {
	topN := r.TopN
	if topN <= 0 {
		topN = freq.DefaultTopN
	}

	tally := r.Analyzer.Tally(text)

	ranking := &models.Ranking{
		Title:         title,
		Source:        textURL,
		Words:         freq.TopN(tally, topN),
		TotalWords:    freq.Total(tally),
		DistinctWords: len(tally),
		AnalyzedAt:    time.Now(),
	}
	if r.Detector != nil {
		ranking.Language = r.Detector.Detect(text)
	}
	return ranking
}

// errorType classifies a retrieval error for the fetch log.
func errorType(err error) string {
	if errors.Is(err, gutenberg.ErrNotFound) {
		return "not_found"
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timeout"
	}
	return "fetch_error"
}
