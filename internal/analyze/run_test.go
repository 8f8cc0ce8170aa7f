package analyze

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ncostello/bookfreq/models"
	"github.com/ncostello/bookfreq/pkg/freq"
	"github.com/ncostello/bookfreq/pkg/gutenberg"
)

// fakeStore is an in-memory Store that records call counts.
type fakeStore struct {
	rankings  map[string]*models.Ranking
	lookupErr error
	writeErr  error

	lookups   int
	remembers int
	fetchLogs int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rankings: make(map[string]*models.Ranking)}
}

func (s *fakeStore) Lookup(title string) (*models.Ranking, error) {
	s.lookups++
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.rankings[title], nil
}

func (s *fakeStore) Remember(title string, ranking *models.Ranking) error {
	s.remembers++
	if s.writeErr != nil {
		return s.writeErr
	}
	s.rankings[title] = ranking
	return nil
}

func (s *fakeStore) RecordFetch(url string, statusCode int, errorType string, success bool) error {
	s.fetchLogs++
	return nil
}

// fakeRetriever serves canned text and counts network activity.
type fakeRetriever struct {
	textURL   string
	text      string
	searchErr error
	fetchErr  error

	searches int
	fetches  int
}

func (r *fakeRetriever) SearchTitle(ctx context.Context, title string) (string, error) {
	r.searches++
	if r.searchErr != nil {
		return "", r.searchErr
	}
	return r.textURL, nil
}

func (r *fakeRetriever) FetchText(ctx context.Context, url string) (string, int, error) {
	r.fetches++
	if r.fetchErr != nil {
		return "", 500, r.fetchErr
	}
	return r.text, 200, nil
}

func newTestRunner(store *fakeStore, retriever *fakeRetriever) *Runner {
	return &Runner{
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Store:     store,
		Retriever: retriever,
		Analyzer:  freq.NewAnalyzer(),
	}
}

func TestRun_MissFetchesAndRemembers(t *testing.T) {
	store := newFakeStore()
	retriever := &fakeRetriever{
		textURL: "https://archive.example/2701.txt",
		text:    "The the THE cat sat.",
	}
	runner := newTestRunner(store, retriever)

	got, err := runner.Run(context.Background(), "Moby Dick", "", false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []models.WordCount{
		{Word: "the", Count: 3},
		{Word: "cat", Count: 1},
		{Word: "sat", Count: 1},
	}
	if len(got.Words) != len(want) {
		t.Fatalf("Run() words = %v, want %v", got.Words, want)
	}
	for i := range want {
		if got.Words[i] != want[i] {
			t.Errorf("Words[%d] = %v, want %v", i, got.Words[i], want[i])
		}
	}

	if got.Source != retriever.textURL {
		t.Errorf("Source = %q, want %q", got.Source, retriever.textURL)
	}
	if got.TotalWords != 5 || got.DistinctWords != 3 {
		t.Errorf("totals = (%d, %d), want (5, 3)", got.TotalWords, got.DistinctWords)
	}
	if store.remembers != 1 {
		t.Errorf("Remember() called %d times, want 1", store.remembers)
	}
	if store.fetchLogs != 1 {
		t.Errorf("RecordFetch() called %d times, want 1", store.fetchLogs)
	}
}

func TestRun_CachePrecedesRetrieval(t *testing.T) {
	store := newFakeStore()
	store.rankings["Moby Dick"] = &models.Ranking{
		Title: "Moby Dick",
		Words: []models.WordCount{{Word: "whale", Count: 42}},
	}
	retriever := &fakeRetriever{textURL: "https://archive.example/2701.txt", text: "whale"}
	runner := newTestRunner(store, retriever)

	got, err := runner.Run(context.Background(), "Moby Dick", "", false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got.Words[0].Word != "whale" || got.Words[0].Count != 42 {
		t.Errorf("Run() = %v, want cached ranking", got.Words)
	}
	if retriever.searches != 0 || retriever.fetches != 0 {
		t.Errorf("cache hit still touched the network: %d searches, %d fetches",
			retriever.searches, retriever.fetches)
	}
	if store.remembers != 0 {
		t.Errorf("cache hit caused %d Remember() calls, want 0", store.remembers)
	}
}

func TestRun_ForceSkipsLookup(t *testing.T) {
	store := newFakeStore()
	store.rankings["Moby Dick"] = &models.Ranking{
		Title: "Moby Dick",
		Words: []models.WordCount{{Word: "stale", Count: 1}},
	}
	retriever := &fakeRetriever{textURL: "https://archive.example/2701.txt", text: "fresh fresh"}
	runner := newTestRunner(store, retriever)

	got, err := runner.Run(context.Background(), "Moby Dick", "", true)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.Words[0].Word != "fresh" {
		t.Errorf("Run(force) = %v, want fresh analysis", got.Words)
	}
	if retriever.fetches != 1 || store.remembers != 1 {
		t.Errorf("Run(force) fetches = %d, remembers = %d, want 1 and 1",
			retriever.fetches, store.remembers)
	}
}

func TestRun_DirectURLSkipsSearch(t *testing.T) {
	store := newFakeStore()
	retriever := &fakeRetriever{text: "some words here"}
	runner := newTestRunner(store, retriever)

	got, err := runner.Run(context.Background(), "My Book", "https://example.com/book.txt", false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if retriever.searches != 0 {
		t.Errorf("direct URL still searched %d times", retriever.searches)
	}
	if got.Source != "https://example.com/book.txt" {
		t.Errorf("Source = %q, want direct URL", got.Source)
	}
}

func TestRun_EmptyTitle(t *testing.T) {
	store := newFakeStore()
	runner := newTestRunner(store, &fakeRetriever{})

	_, err := runner.Run(context.Background(), "", "", false)
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Run(\"\") error = %v, want ErrEmptyTitle", err)
	}
	if store.lookups != 0 || store.remembers != 0 {
		t.Error("empty title touched the store")
	}
}

func TestRun_SearchNotFound_NoCacheWrite(t *testing.T) {
	store := newFakeStore()
	retriever := &fakeRetriever{searchErr: gutenberg.ErrNotFound}
	runner := newTestRunner(store, retriever)

	_, err := runner.Run(context.Background(), "No Such Book", "", false)
	if !errors.Is(err, gutenberg.ErrNotFound) {
		t.Errorf("Run() error = %v, want ErrNotFound", err)
	}
	if store.remembers != 0 {
		t.Errorf("failed retrieval caused %d Remember() calls, want 0", store.remembers)
	}
}

func TestRun_FetchFailure_NoCacheWrite(t *testing.T) {
	store := newFakeStore()
	retriever := &fakeRetriever{
		textURL:  "https://archive.example/2701.txt",
		fetchErr: errors.New("connection refused"),
	}
	runner := newTestRunner(store, retriever)

	_, err := runner.Run(context.Background(), "Moby Dick", "", false)
	if err == nil {
		t.Fatal("Run() with failing fetch = nil error, want error")
	}
	if store.remembers != 0 {
		t.Errorf("failed fetch caused %d Remember() calls, want 0", store.remembers)
	}
	if store.fetchLogs != 1 {
		t.Errorf("failed fetch logged %d times, want 1", store.fetchLogs)
	}
}

func TestRun_StorageErrors(t *testing.T) {
	t.Run("lookup failure", func(t *testing.T) {
		store := newFakeStore()
		store.lookupErr = errors.New("database is locked")
		runner := newTestRunner(store, &fakeRetriever{})

		_, err := runner.Run(context.Background(), "Moby Dick", "", false)
		if !errors.Is(err, ErrStorage) {
			t.Errorf("Run() error = %v, want ErrStorage", err)
		}
	})

	t.Run("remember failure", func(t *testing.T) {
		store := newFakeStore()
		store.writeErr = errors.New("disk full")
		retriever := &fakeRetriever{textURL: "https://archive.example/1.txt", text: "words"}
		runner := newTestRunner(store, retriever)

		_, err := runner.Run(context.Background(), "Moby Dick", "", false)
		if !errors.Is(err, ErrStorage) {
			t.Errorf("Run() error = %v, want ErrStorage", err)
		}
	})
}

// memCache is a map-backed TextCache.
type memCache struct {
	entries map[string][]byte
	hits    int
}

func (c *memCache) Get(url string) ([]byte, bool) {
	data, ok := c.entries[url]
	if ok {
		c.hits++
	}
	return data, ok
}

func (c *memCache) Set(url string, data []byte) error {
	c.entries[url] = data
	return nil
}

func TestRun_TextCacheSkipsFetch(t *testing.T) {
	store := newFakeStore()
	retriever := &fakeRetriever{text: "network words"}
	cache := &memCache{entries: map[string][]byte{
		"https://example.com/book.txt": []byte("cached words words"),
	}}

	runner := newTestRunner(store, retriever)
	runner.Cache = cache

	got, err := runner.Run(context.Background(), "My Book", "https://example.com/book.txt", false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if retriever.fetches != 0 {
		t.Errorf("text cache hit still fetched %d times", retriever.fetches)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}
	if got.Words[0].Word != "words" || got.Words[0].Count != 2 {
		t.Errorf("Run() = %v, want analysis of cached text", got.Words)
	}
	// A text-cache hit is not a result-cache hit: the ranking is still stored.
	if store.remembers != 1 {
		t.Errorf("Remember() called %d times, want 1", store.remembers)
	}
}
