package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ncostello/bookfreq/models"
)

// Lookup returns the most recently stored ranking for an exact-match title,
// or (nil, nil) if the title has never been analyzed. The title is compared
// verbatim; case and whitespace variants are distinct keys.
func (db *DB) Lookup(title string) (*models.Ranking, error) {
	var (
		analysisID    int64
		sourceURL     sql.NullString
		language      sql.NullString
		totalWords    int
		distinctWords int
		createdAt     time.Time
	)
	err := db.QueryRow(`
		SELECT analysis_id, source_url, language, total_words, distinct_words, created_at
		FROM analyses
		WHERE title = ?
		ORDER BY analysis_id DESC
		LIMIT 1
	`, title).Scan(&analysisID, &sourceURL, &language, &totalWords, &distinctWords, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up title: %w", err)
	}

	rows, err := db.Query(`
		SELECT word, frequency
		FROM books
		WHERE analysis_id = ?
		ORDER BY position
	`, analysisID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking: %w", err)
	}
	defer rows.Close()

	ranking := &models.Ranking{
		Title:         title,
		Source:        sourceURL.String,
		Language:      language.String,
		TotalWords:    totalWords,
		DistinctWords: distinctWords,
		AnalyzedAt:    createdAt,
	}
	for rows.Next() {
		var wc models.WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan ranking row: %w", err)
		}
		ranking.Words = append(ranking.Words, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranking: %w", err)
	}

	return ranking, nil
}

// Remember persists a ranking for a title. Each (word, count) pair becomes one
// books row tagged with a fresh analysis id. Prior rows for the same title are
// never deleted or updated; Lookup scopes to the newest analysis, so repeated
// analysis of one title accumulates history without polluting reads.
func (db *DB) Remember(title string, ranking *models.Ranking) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO analyses (title, source_url, language, total_words, distinct_words)
		VALUES (?, ?, ?, ?, ?)
	`, title, ranking.Source, ranking.Language, ranking.TotalWords, ranking.DistinctWords)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	analysisID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get analysis ID: %w", err)
	}

	for i, wc := range ranking.Words {
		_, err := tx.Exec(`
			INSERT INTO books (title, word, frequency, position, analysis_id)
			VALUES (?, ?, ?, ?, ?)
		`, title, wc.Word, wc.Count, i+1, analysisID)
		if err != nil {
			return fmt.Errorf("failed to insert ranking row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ranking: %w", err)
	}
	return nil
}

// TitleInfo summarizes the cached state of one title.
type TitleInfo struct {
	Title         string
	AnalysisCount int
	Language      string
	LastAnalyzed  time.Time
}

// Titles lists every cached title with its analysis count, newest first.
func (db *DB) Titles() ([]TitleInfo, error) {
	rows, err := db.Query(`
		SELECT title, COUNT(*), COALESCE(MAX(language), ''), MAX(created_at)
		FROM analyses
		GROUP BY title
		ORDER BY MAX(created_at) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	defer rows.Close()

	var titles []TitleInfo
	for rows.Next() {
		var info TitleInfo
		var lastAnalyzed string
		if err := rows.Scan(&info.Title, &info.AnalysisCount, &info.Language, &lastAnalyzed); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		// MAX() strips the column's TIMESTAMP declared type, so the driver
		// hands the aggregate back as text.
		if t, err := time.Parse("2006-01-02 15:04:05", lastAnalyzed); err == nil {
			info.LastAnalyzed = t
		}
		titles = append(titles, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}

	return titles, nil
}

// History returns every stored analysis for a title, oldest first.
func (db *DB) History(title string) ([]models.Ranking, error) {
	rows, err := db.Query(`
		SELECT a.analysis_id, a.source_url, a.language, a.total_words, a.distinct_words, a.created_at,
		       b.word, b.frequency
		FROM analyses a
		JOIN books b ON b.analysis_id = a.analysis_id
		WHERE a.title = ?
		ORDER BY a.analysis_id, b.position
	`, title)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer rows.Close()

	var history []models.Ranking
	var lastID int64 = -1
	for rows.Next() {
		var (
			analysisID    int64
			sourceURL     sql.NullString
			language      sql.NullString
			totalWords    int
			distinctWords int
			createdAt     time.Time
			wc            models.WordCount
		)
		err := rows.Scan(&analysisID, &sourceURL, &language, &totalWords, &distinctWords, &createdAt,
			&wc.Word, &wc.Count)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		if analysisID != lastID {
			history = append(history, models.Ranking{
				Title:         title,
				Source:        sourceURL.String,
				Language:      language.String,
				TotalWords:    totalWords,
				DistinctWords: distinctWords,
				AnalyzedAt:    createdAt,
			})
			lastID = analysisID
		}
		cur := &history[len(history)-1]
		cur.Words = append(cur.Words, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return history, nil
}

// PurgeTitle removes every analysis and ranking row for an exact-match title.
// Returns the number of analyses removed.
func (db *DB) PurgeTitle(title string) (int64, error) {
	result, err := db.Exec("DELETE FROM analyses WHERE title = ?", title)
	if err != nil {
		return 0, fmt.Errorf("failed to purge title: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged analyses: %w", err)
	}
	return n, nil
}

// RecordFetch logs a retrieval attempt against the book archive.
func (db *DB) RecordFetch(url string, statusCode int, errorType string, success bool) error {
	_, err := db.Exec(`
		INSERT INTO fetch_log (url, status_code, error_type, success)
		VALUES (?, ?, ?, ?)
	`, url, statusCode, errorType, success)
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// FetchRecord is one logged retrieval attempt.
type FetchRecord struct {
	LogID      int64
	URL        string
	StatusCode int
	ErrorType  string
	Success    bool
	FetchedAt  time.Time
}

// LastFetch returns the most recent fetch record for a URL, or nil if the URL
// was never fetched.
func (db *DB) LastFetch(url string) (*FetchRecord, error) {
	var record FetchRecord
	err := db.QueryRow(`
		SELECT log_id, url, status_code, error_type, success, fetched_at
		FROM fetch_log
		WHERE url = ?
		ORDER BY log_id DESC
		LIMIT 1
	`, url).Scan(&record.LogID, &record.URL, &record.StatusCode, &record.ErrorType, &record.Success, &record.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last fetch: %w", err)
	}
	return &record, nil
}
