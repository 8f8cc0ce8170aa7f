// Package db implements the `bookfreq db` inspection commands.
package db

import (
	"fmt"
	"strings"

	dbpkg "github.com/ncostello/bookfreq/pkg/db"
	"github.com/urfave/cli/v2"
)

func openStore(c *cli.Context) (*dbpkg.DB, error) {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// TitlesAction lists every cached title.
func TitlesAction(c *cli.Context) error {
	database, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	titles, err := database.Titles()
	if err != nil {
		return fmt.Errorf("failed to list titles: %w", err)
	}

	if len(titles) == 0 {
		fmt.Println("No cached titles")
		return nil
	}

	fmt.Printf("%-40s %-10s %-6s %-20s\n", "Title", "Analyses", "Lang", "Last Analyzed")
	fmt.Println(strings.Repeat("-", 80))
	for _, info := range titles {
		lang := info.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Printf("%-40s %-10d %-6s %-20s\n",
			info.Title,
			info.AnalysisCount,
			lang,
			info.LastAnalyzed.Format("2006-01-02 15:04:05"),
		)
	}

	fmt.Printf("\nTotal: %d titles\n", len(titles))
	fmt.Printf("\nTip: Use 'bookfreq db show --title <title>' to see a ranking\n")

	return nil
}

// ShowAction prints the cached ranking for one title.
func ShowAction(c *cli.Context) error {
	title := c.String("title")
	if title == "" {
		return fmt.Errorf("no title provided with --title flag")
	}

	database, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	ranking, err := database.Lookup(title)
	if err != nil {
		return fmt.Errorf("failed to look up title: %w", err)
	}
	if ranking == nil {
		return fmt.Errorf("title not cached: %s", title)
	}

	fmt.Printf("Title:    %s\n", ranking.Title)
	if ranking.Source != "" {
		fmt.Printf("Source:   %s\n", ranking.Source)
	}
	if ranking.Language != "" {
		fmt.Printf("Language: %s\n", ranking.Language)
	}
	fmt.Printf("Analyzed: %s (%d words, %d distinct)\n",
		ranking.AnalyzedAt.Format("2006-01-02 15:04:05"),
		ranking.TotalWords, ranking.DistinctWords)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Print(ranking.Lines())

	return nil
}

// HistoryAction prints every stored analysis for one title, oldest first.
func HistoryAction(c *cli.Context) error {
	title := c.String("title")
	if title == "" {
		return fmt.Errorf("no title provided with --title flag")
	}

	database, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	history, err := database.History(title)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(history) == 0 {
		return fmt.Errorf("title not cached: %s", title)
	}

	for i, ranking := range history {
		fmt.Printf("Analysis %d/%d (%s)\n", i+1, len(history),
			ranking.AnalyzedAt.Format("2006-01-02 15:04:05"))
		fmt.Println(strings.Repeat("-", 40))
		fmt.Print(ranking.Lines())
		if i < len(history)-1 {
			fmt.Println()
		}
	}

	return nil
}

// PurgeAction removes every cached row for one title.
func PurgeAction(c *cli.Context) error {
	title := c.String("title")
	if title == "" {
		return fmt.Errorf("no title provided with --title flag")
	}

	database, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := database.PurgeTitle(title)
	if err != nil {
		return fmt.Errorf("failed to purge title: %w", err)
	}
	if n == 0 {
		fmt.Printf("Nothing cached for: %s\n", title)
		return nil
	}

	fmt.Printf("Purged %d analyses for: %s\n", n, title)
	return nil
}
