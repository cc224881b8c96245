package ingest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/navitrade/newsflow/internal/database"
	"github.com/navitrade/newsflow/internal/domain"
	"github.com/navitrade/newsflow/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func seedSource(t *testing.T, db *database.DB) int64 {
	t.Helper()

	result, err := db.Conn().Exec(`INSERT INTO news_sources (name, base_url) VALUES ('test', 'https://feed.example/rss')`)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestArticleRepository_FingerprintUniqueness(t *testing.T) {
	db := testDB(t)
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	repo := NewArticleRepository(db.Conn(), log)
	sourceID := seedSource(t, db)

	article := domain.Article{
		SourceID:    sourceID,
		Title:       "Company X faces fraud investigation",
		URL:         "https://feed.example/x",
		Fingerprint: Fingerprint("Company X faces fraud investigation", "https://feed.example/x"),
		FetchedAt:   time.Now().UTC(),
	}

	inserted, err := repo.Insert(&article)
	require.NoError(t, err)
	assert.True(t, inserted)

	// The UNIQUE constraint absorbs the second insert without error
	dup := article
	inserted, err = repo.Insert(&dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	total, _, err := repo.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	exists, err := repo.FingerprintExists(article.Fingerprint)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestArticleRepository_ProcessedTransition(t *testing.T) {
	db := testDB(t)
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	repo := NewArticleRepository(db.Conn(), log)
	sourceID := seedSource(t, db)

	article := domain.Article{
		SourceID:    sourceID,
		Title:       "T",
		URL:         "https://feed.example/t",
		Fingerprint: Fingerprint("T", "https://feed.example/t"),
		FetchedAt:   time.Now().UTC(),
	}
	_, err := repo.Insert(&article)
	require.NoError(t, err)

	unprocessed, err := repo.GetUnprocessed()
	require.NoError(t, err)
	require.Len(t, unprocessed, 1)
	assert.False(t, unprocessed[0].Processed)

	require.NoError(t, repo.MarkProcessed(unprocessed[0].ID))

	unprocessed, err = repo.GetUnprocessed()
	require.NoError(t, err)
	assert.Empty(t, unprocessed)

	got, err := repo.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Processed)
}

func TestArticleRepository_GetByIDMissing(t *testing.T) {
	db := testDB(t)
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	repo := NewArticleRepository(db.Conn(), log)

	got, err := repo.GetByID(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}
