package scoring

import (
	"testing"
	"time"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/navitrade/newsflow/internal/events"
	"github.com/navitrade/newsflow/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventStore struct {
	events []domain.ProcessedEvent
}

func (f *fakeEventStore) GetSince(cutoff time.Time) ([]domain.ProcessedEvent, error) {
	return f.events, nil
}

type fakeArticleStore struct {
	articles map[int64]*domain.Article
	calls    int
}

func (f *fakeArticleStore) GetByID(id int64) (*domain.Article, error) {
	f.calls++
	return f.articles[id], nil
}

type fakeCompanyStore struct {
	companies map[int64]*domain.Company
}

func (f *fakeCompanyStore) GetByID(id int64) (*domain.Company, error) {
	return f.companies[id], nil
}

type fakeSignalStore struct {
	byArticle map[int64]domain.Signal
}

func newFakeSignalStore() *fakeSignalStore {
	return &fakeSignalStore{byArticle: make(map[int64]domain.Signal)}
}

func (f *fakeSignalStore) ExistsForArticle(articleID int64) (bool, error) {
	_, ok := f.byArticle[articleID]
	return ok, nil
}

func (f *fakeSignalStore) Insert(s *domain.Signal) (bool, error) {
	if _, ok := f.byArticle[s.ArticleID]; ok {
		return false, nil
	}
	f.byArticle[s.ArticleID] = *s
	return true, nil
}

type fakeNotifier struct {
	alerts []domain.Signal
	names  []string
}

func (f *fakeNotifier) SignalAlert(sig domain.Signal, companyName, headline string) {
	f.alerts = append(f.alerts, sig)
	f.names = append(f.names, companyName)
}

type fixture struct {
	svc      *Service
	articles *fakeArticleStore
	signals  *fakeSignalStore
	notifier *fakeNotifier
}

func newFixture(evs []domain.ProcessedEvent, articles map[int64]*domain.Article) *fixture {
	log := logger.New(logger.Config{Level: "error", Pretty: false})

	articleStore := &fakeArticleStore{articles: articles}
	signalStore := newFakeSignalStore()
	notifier := &fakeNotifier{}

	svc := NewService(Config{
		Events:   &fakeEventStore{events: evs},
		Articles: articleStore,
		Companies: &fakeCompanyStore{companies: map[int64]*domain.Company{
			10: {ID: 10, Symbol: "COMPX", Name: "Company X"},
		}},
		Signals:  signalStore,
		Notifier: notifier,
		EventBus: events.NewManager(log),
		Window:   12 * time.Hour,
		Log:      log,
	})

	return &fixture{svc: svc, articles: articleStore, signals: signalStore, notifier: notifier}
}

func bearishFixture() *fixture {
	return newFixture(
		[]domain.ProcessedEvent{{ID: 1, ArticleID: 100, CompanyID: 10, ProcessedAt: time.Now().UTC()}},
		map[int64]*domain.Article{
			100: {ID: 100, Title: "Company X faces fraud investigation", Content: ""},
		},
	)
}

func TestRun_SellSignalEmittedAndDelivered(t *testing.T) {
	f := bearishFixture()

	require.NoError(t, f.svc.Run())

	sig, ok := f.signals.byArticle[100]
	require.True(t, ok, "expected a signal for article 100")
	assert.Equal(t, domain.SignalSell, sig.Type)
	assert.Equal(t, domain.SeverityHigh, sig.Severity)
	assert.Equal(t, -100, sig.Score)
	assert.True(t, sig.Active)
	assert.Equal(t, int64(10), sig.CompanyID)

	require.Len(t, f.notifier.alerts, 1)
	assert.Equal(t, "Company X", f.notifier.names[0])
}

func TestRun_SecondPassEmitsNothing(t *testing.T) {
	f := bearishFixture()

	require.NoError(t, f.svc.Run())
	require.NoError(t, f.svc.Run())

	assert.Len(t, f.signals.byArticle, 1)
	assert.Len(t, f.notifier.alerts, 1)
}

func TestRun_ExistingSignalSkipsScoringEntirely(t *testing.T) {
	f := bearishFixture()
	f.signals.byArticle[100] = domain.Signal{ArticleID: 100}

	require.NoError(t, f.svc.Run())

	// The idempotency gate fires before any article text is even loaded
	assert.Equal(t, 0, f.articles.calls)
	assert.Empty(t, f.notifier.alerts)
}

func TestRun_MediumSeverityProducesNoSignal(t *testing.T) {
	f := newFixture(
		[]domain.ProcessedEvent{{ID: 1, ArticleID: 101, CompanyID: 10, ProcessedAt: time.Now().UTC()}},
		map[int64]*domain.Article{
			// "guidance raise" scores 25: MEDIUM severity, below direction thresholds
			101: {ID: 101, Title: "Company X guidance raise announced", Content: ""},
		},
	)

	require.NoError(t, f.svc.Run())

	assert.Empty(t, f.signals.byArticle)
	assert.Empty(t, f.notifier.alerts)
}

func TestRun_NoMatchesProducesNothing(t *testing.T) {
	f := newFixture(
		[]domain.ProcessedEvent{{ID: 1, ArticleID: 102, CompanyID: 10, ProcessedAt: time.Now().UTC()}},
		map[int64]*domain.Article{
			102: {ID: 102, Title: "Company X schedules annual meeting", Content: ""},
		},
	)

	require.NoError(t, f.svc.Run())

	assert.Empty(t, f.signals.byArticle)
	assert.Empty(t, f.notifier.alerts)
}

func TestRun_MissingArticleIsIsolated(t *testing.T) {
	f := newFixture(
		[]domain.ProcessedEvent{
			{ID: 1, ArticleID: 999, CompanyID: 10, ProcessedAt: time.Now().UTC()},
			{ID: 2, ArticleID: 100, CompanyID: 10, ProcessedAt: time.Now().UTC()},
		},
		map[int64]*domain.Article{
			100: {ID: 100, Title: "Company X faces fraud investigation", Content: ""},
		},
	)

	require.NoError(t, f.svc.Run())

	// The dangling event is skipped; the valid one still emits
	assert.Len(t, f.signals.byArticle, 1)
}
