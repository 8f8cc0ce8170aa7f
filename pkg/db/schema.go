package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Analyses: one row per completed frequency analysis of a title
CREATE TABLE IF NOT EXISTS analyses (
    analysis_id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    source_url TEXT,
    language TEXT,
    total_words INTEGER DEFAULT 0,
    distinct_words INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_analyses_title ON analyses(title);
CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at DESC);

-- Books: one row per ranked word per analysis.
-- The title is the cache key, stored verbatim: case and whitespace variants
-- are distinct keys, and there is deliberately no uniqueness constraint on it.
CREATE TABLE IF NOT EXISTS books (
    title TEXT NOT NULL,
    word TEXT NOT NULL,
    frequency INTEGER NOT NULL,
    position INTEGER NOT NULL,
    analysis_id INTEGER NOT NULL,
    FOREIGN KEY (analysis_id) REFERENCES analyses(analysis_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_books_title ON books(title);
CREATE INDEX IF NOT EXISTS idx_books_analysis ON books(analysis_id);

-- Fetch log: every retrieval attempt against the book archive
CREATE TABLE IF NOT EXISTS fetch_log (
    log_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    status_code INTEGER,
    error_type TEXT,
    success BOOLEAN NOT NULL,
    fetched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_fetch_log_url ON fetch_log(url);
CREATE INDEX IF NOT EXISTS idx_fetch_log_time ON fetch_log(fetched_at);
`
