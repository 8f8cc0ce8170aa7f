// Command bookfreq analyzes word frequencies in public-archive book texts.
// It searches the archive for a title (or takes a direct text URL), tallies
// the ten most frequent words, caches the result per title in SQLite, and
// prints the ranking.
package main

import (
	"fmt"
	"os"

	"github.com/ncostello/bookfreq/internal/analyze"
	internaldb "github.com/ncostello/bookfreq/internal/db"
	"github.com/urfave/cli/v2"
)

var version = "1.0.0"

func main() {
	app := &cli.App{
		Name:    "bookfreq",
		Usage:   "word-frequency analysis for public-archive books",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "analyze a book's word frequencies (cached per title)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "book title, used verbatim as the cache key",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "url",
						Aliases: []string{"u"},
						Usage:   "direct URL of the text body, skips the archive search",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "re-analyze even when a cached result exists",
					},
					&cli.BoolFlag{
						Name:  "skip-common",
						Usage: "drop common English words before ranking",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "ranking length",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to YAML config file",
						Value: "bookfreq.yaml",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "path to the SQLite database",
					},
					&cli.StringFlag{
						Name:  "archive-url",
						Usage: "book archive root URL",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "directory for the fetched-text cache",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "per-request fetch timeout",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "only log errors",
					},
				},
				Action: analyze.AnalyzeAction,
			},
			{
				Name:  "db",
				Usage: "inspect the cached rankings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "path to the SQLite database",
					},
				},
				Subcommands: []*cli.Command{
					{
						Name:   "titles",
						Usage:  "list cached titles",
						Action: internaldb.TitlesAction,
					},
					{
						Name:  "show",
						Usage: "print the cached ranking for a title",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
						},
						Action: internaldb.ShowAction,
					},
					{
						Name:  "history",
						Usage: "print every stored analysis for a title",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
						},
						Action: internaldb.HistoryAction,
					},
					{
						Name:  "purge",
						Usage: "delete the cached rows for a title",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
						},
						Action: internaldb.PurgeAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
