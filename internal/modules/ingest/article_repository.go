package ingest

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/rs/zerolog"
)

// ArticleRepository handles article database operations. It is the single
// owner of the articles table; other stages read through it.
type ArticleRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sql.DB, log zerolog.Logger) *ArticleRepository {
	return &ArticleRepository{
		db:  db,
		log: log.With().Str("repo", "article").Logger(),
	}
}

// FingerprintExists reports whether an article with this fingerprint was
// ever ingested
func (r *ArticleRepository) FingerprintExists(fingerprint string) (bool, error) {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM articles WHERE fingerprint = ?`, fingerprint).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check fingerprint: %w", err)
	}
	return true, nil
}

// Insert stores a new article. The fingerprint column carries a UNIQUE
// constraint, so a concurrent run inserting the same article loses the
// race silently; the return value reports whether this call inserted.
func (r *ArticleRepository) Insert(a *domain.Article) (bool, error) {
	query := `INSERT OR IGNORE INTO articles
		(source_id, title, content, url, fingerprint, published_at, fetched_at, is_processed)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)`

	result, err := r.db.Exec(query,
		a.SourceID, a.Title, a.Content, a.URL, a.Fingerprint, a.PublishedAt, a.FetchedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert article: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return affected > 0, nil
}

// GetUnprocessed returns all articles awaiting classification
func (r *ArticleRepository) GetUnprocessed() ([]domain.Article, error) {
	query := `SELECT id, source_id, title, content, url, fingerprint, published_at, fetched_at, is_processed
		FROM articles WHERE is_processed = 0 ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return articles, nil
}

// GetByID returns an article by id, or nil when not found
func (r *ArticleRepository) GetByID(id int64) (*domain.Article, error) {
	query := `SELECT id, source_id, title, content, url, fingerprint, published_at, fetched_at, is_processed
		FROM articles WHERE id = ?`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query article by id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}

	a, err := scanArticle(rows)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// MarkProcessed flips the processed flag. The flag never reverses; there
// is deliberately no way to set it back to 0.
func (r *ArticleRepository) MarkProcessed(id int64) error {
	_, err := r.db.Exec(`UPDATE articles SET is_processed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark article processed: %w", err)
	}
	return nil
}

// Stats returns total and processed article counts
func (r *ArticleRepository) Stats() (total int, processed int, err error) {
	err = r.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(is_processed), 0) FROM articles`).
		Scan(&total, &processed)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return total, processed, nil
}

func scanArticle(rows *sql.Rows) (domain.Article, error) {
	var a domain.Article
	var published sql.NullTime
	var fetched time.Time

	if err := rows.Scan(&a.ID, &a.SourceID, &a.Title, &a.Content, &a.URL,
		&a.Fingerprint, &published, &fetched, &a.Processed); err != nil {
		return domain.Article{}, fmt.Errorf("failed to scan article: %w", err)
	}

	if published.Valid {
		t := published.Time
		a.PublishedAt = &t
	}
	a.FetchedAt = fetched

	return a, nil
}
