package database

import "fmt"

// Schema statements are idempotent so Migrate can run on every startup.
// The unique indexes on articles.fingerprint and signals.article_id are
// load-bearing: the pipeline performs check-then-act without transactional
// isolation, so overlapping runs rely on the storage layer to enforce
// at-most-once semantics.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS news_sources (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		base_url   TEXT NOT NULL UNIQUE,
		type       TEXT NOT NULL DEFAULT 'RSS',
		is_active  INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol    TEXT NOT NULL UNIQUE,
		name      TEXT NOT NULL,
		isin      TEXT,
		exchange  TEXT NOT NULL,
		is_listed INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		source_id      INTEGER NOT NULL REFERENCES news_sources(id),
		title          TEXT NOT NULL,
		content        TEXT NOT NULL DEFAULT '',
		url            TEXT NOT NULL,
		fingerprint    TEXT NOT NULL UNIQUE,
		published_at   TIMESTAMP,
		fetched_at     TIMESTAMP NOT NULL,
		is_processed   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_unprocessed ON articles(is_processed)`,
	`CREATE TABLE IF NOT EXISTS processed_events (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		article_id        INTEGER NOT NULL UNIQUE REFERENCES articles(id),
		company_id        INTEGER NOT NULL REFERENCES companies(id),
		detected_keywords TEXT NOT NULL DEFAULT '[]',
		category          TEXT NOT NULL DEFAULT 'GENERAL',
		base_score        INTEGER NOT NULL DEFAULT 0,
		final_score       INTEGER NOT NULL DEFAULT 0,
		sentiment         TEXT NOT NULL,
		confidence_score  INTEGER NOT NULL DEFAULT 0,
		processed_at      TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_processed_at ON processed_events(processed_at)`,
	`CREATE TABLE IF NOT EXISTS signals (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id    INTEGER NOT NULL REFERENCES companies(id),
		article_id    INTEGER NOT NULL UNIQUE REFERENCES articles(id),
		signal_type   TEXT NOT NULL,
		severity      TEXT NOT NULL,
		signal_score  INTEGER NOT NULL,
		generated_at  TIMESTAMP NOT NULL,
		is_active     INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS prices (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id  INTEGER NOT NULL REFERENCES companies(id),
		price       REAL,
		open        REAL,
		high        REAL,
		low         REAL,
		volume      INTEGER,
		change      REAL,
		pchange     REAL,
		captured_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prices_company ON prices(company_id, captured_at)`,
}

// Migrate creates the schema if it does not exist yet
func (db *DB) Migrate() error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
