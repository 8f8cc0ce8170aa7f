package analyze

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ncostello/bookfreq/internal/common"
	"github.com/ncostello/bookfreq/models"
	"github.com/ncostello/bookfreq/pkg/caching"
	"github.com/ncostello/bookfreq/pkg/db"
	"github.com/ncostello/bookfreq/pkg/detector"
	"github.com/ncostello/bookfreq/pkg/freq"
	"github.com/ncostello/bookfreq/pkg/gutenberg"
	"github.com/urfave/cli/v2"
)

// AnalyzeAction implements `bookfreq analyze`.
func AnalyzeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	applyFlags(c, &config)

	// The title is the cache key and is stored verbatim; trimming user input
	// happens here, at the presentation boundary, and nowhere below.
	title := strings.TrimSpace(c.String("title"))
	directURL := common.SanitizeURL(c.String("url"))

	if title == "" {
		fmt.Fprintln(os.Stderr, "Error: No title provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  bookfreq analyze --title "Moby Dick"`)
		fmt.Fprintln(os.Stderr, `  bookfreq analyze --title "Moby Dick" --url "https://www.gutenberg.org/files/2701/2701-0.txt"`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: bookfreq analyze --help")
		os.Exit(1)
	}
	if c.IsSet("url") {
		if err := common.ValidateURL(directURL); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --url: %v\n", err)
			fmt.Fprintln(os.Stderr, "Note: URLs are auto-cleaned (whitespace trimmed, trailing punctuation removed, markdown links extracted)")
			os.Exit(1)
		}
	}

	database, err := db.Open(config.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	textCache, err := caching.NewCache(config.CacheDir, config.CacheTTL)
	if err != nil {
		logger.Error("failed to initialize text cache", "error", err)
		os.Exit(2)
	}

	var analyzerOpts []freq.Option
	if c.Bool("skip-common") {
		analyzerOpts = append(analyzerOpts, freq.WithStopwords())
	}

	runner := &Runner{
		Logger: logger,
		Store:  database,
		Retriever: gutenberg.NewClient(
			gutenberg.WithBaseURL(config.ArchiveURL),
			gutenberg.WithTimeout(config.FetchTimeout),
			gutenberg.WithUserAgent(config.UserAgent),
		),
		Analyzer: freq.NewAnalyzer(analyzerOpts...),
		Cache:    textCache,
		Detector: detector.New(),
		TopN:     config.TopN,
	}

	ranking, err := runner.Run(c.Context, title, directURL, c.Bool("force"))
	if err != nil {
		if errors.Is(err, gutenberg.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Book not found in archive: %s\n", title)
			os.Exit(1)
		}
		logger.Error("analysis failed", "title", title, "error", err)
		if errors.Is(err, ErrStorage) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	fmt.Print(ranking.Lines())
	return nil
}

// applyFlags overrides config values with any flags that were set.
func applyFlags(c *cli.Context, config *models.Config) {
	if c.IsSet("db") {
		config.DBPath = c.String("db")
	}
	if c.IsSet("archive-url") {
		config.ArchiveURL = c.String("archive-url")
	}
	if c.IsSet("cache-dir") {
		config.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("timeout") {
		config.FetchTimeout = c.Duration("timeout")
	}
	if c.IsSet("top") {
		config.TopN = c.Int("top")
	}
}
