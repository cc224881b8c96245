package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/navitrade/newsflow/internal/clients/feeds"
	"github.com/navitrade/newsflow/internal/clients/nse"
	"github.com/navitrade/newsflow/internal/clients/telegram"
	"github.com/navitrade/newsflow/internal/clients/yahoo"
	"github.com/navitrade/newsflow/internal/config"
	"github.com/navitrade/newsflow/internal/database"
	"github.com/navitrade/newsflow/internal/domain"
	"github.com/navitrade/newsflow/internal/events"
	"github.com/navitrade/newsflow/internal/modules/alerts"
	"github.com/navitrade/newsflow/internal/modules/classify"
	"github.com/navitrade/newsflow/internal/modules/ingest"
	"github.com/navitrade/newsflow/internal/modules/prices"
	"github.com/navitrade/newsflow/internal/modules/scoring"
	"github.com/navitrade/newsflow/internal/modules/universe"
	"github.com/navitrade/newsflow/internal/scheduler"
	"github.com/navitrade/newsflow/internal/server"
	"github.com/navitrade/newsflow/pkg/logger"
)

// defaultSources seeds the feed registry on first start
var defaultSources = []domain.NewsSource{
	{Name: "Economic Times Markets", BaseURL: "https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms", Type: "RSS", IsActive: true},
	{Name: "Moneycontrol Top News", BaseURL: "https://www.moneycontrol.com/rss/MCtopnews.xml", Type: "RSS", IsActive: true},
	{Name: "LiveMint Markets", BaseURL: "https://www.livemint.com/rss/markets", Type: "RSS", IsActive: true},
}

func main() {
	runOnce := flag.Bool("once", false, "Run one pipeline pass and exit")
	syncUniverse := flag.Bool("sync-universe", false, "Run one universe sync and exit")
	syncPrices := flag.Bool("sync-prices", false, "Run one price snapshot sync and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		// Logger not up yet; config failure is fatal either way
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Str("exchange", cfg.Exchange).Msg("Starting news signal scanner")

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Event bus (log-backed)
	eventBus := events.NewManager(log)

	// Repositories
	articleRepo := ingest.NewArticleRepository(db.Conn(), log)
	sourceRepo := ingest.NewSourceRepository(db.Conn(), log)
	eventRepo := classify.NewEventRepository(db.Conn(), log)
	signalRepo := scoring.NewSignalRepository(db.Conn(), log)
	companyRepo := universe.NewCompanyRepository(db.Conn(), log)
	priceRepo := prices.NewPriceRepository(db.Conn(), log)

	if err := sourceRepo.Seed(defaultSources); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed news sources")
	}

	// External clients
	feedClient := feeds.NewClient(log)
	nseClient := nse.NewClient(log)
	yahooClient := yahoo.NewClient(log)
	telegramClient := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID, log)

	if !cfg.TelegramConfigured() {
		log.Warn().Msg("Telegram credentials missing, alerts will be skipped")
	}

	// Services
	notifier := alerts.NewNotifier(telegramClient, eventBus, log)
	ingestSvc := ingest.NewService(articleRepo, sourceRepo, feedClient, eventBus, log)
	classifySvc := classify.NewService(articleRepo, companyRepo, eventRepo, eventBus, cfg.Exchange, log)
	scoringSvc := scoring.NewService(scoring.Config{
		Events:    eventRepo,
		Articles:  articleRepo,
		Companies: companyRepo,
		Signals:   signalRepo,
		Notifier:  notifier,
		EventBus:  eventBus,
		Window:    time.Duration(cfg.ScoreWindowHours) * time.Hour,
		Log:       log,
	})
	universeSvc := universe.NewSyncService(cfg.Exchange, nseClient, companyRepo, eventBus, log)
	pricesSvc := prices.NewSyncService(cfg.Exchange, yahooClient, companyRepo, priceRepo, eventBus, log)

	pipeline := scheduler.NewPipelineJob(log,
		scheduler.Stage{Name: "ingest", Run: ingestSvc.Run},
		scheduler.Stage{Name: "classify", Run: classifySvc.Run},
		scheduler.Stage{Name: "score", Run: scoringSvc.Run},
	)

	// One-shot modes for external schedulers and manual runs
	switch {
	case *runOnce:
		exitOn(log, pipeline.Run())
	case *syncUniverse:
		_, err := universeSvc.Sync()
		exitOn(log, err)
	case *syncPrices:
		_, err := pricesSvc.Sync()
		exitOn(log, err)
	}

	// Long-running mode: cron scheduler plus read-only API
	sched := scheduler.New(log)
	marketHours := scheduler.NewMarketHoursService(log)

	if err := registerJobs(sched, jobDeps{
		pipeline:    pipeline,
		universeSvc: universeSvc,
		pricesSvc:   pricesSvc,
		marketHours: marketHours,
		db:          db,
		exchange:    cfg.Exchange,
		log:         log,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}

	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		Signals:   signalRepo,
		Articles:  articleRepo,
		Companies: companyRepo,
		Prices:    pricesSvc,
		DevMode:   cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Scanner running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Scanner stopped")
}

type jobDeps struct {
	pipeline    *scheduler.PipelineJob
	universeSvc *universe.SyncService
	pricesSvc   *prices.SyncService
	marketHours *scheduler.MarketHoursService
	db          *database.DB
	exchange    string
	log         zerolog.Logger
}

func registerJobs(sched *scheduler.Scheduler, deps jobDeps) error {
	if err := sched.AddJob("0 */5 * * * *", deps.pipeline); err != nil {
		return err
	}
	if err := sched.AddJob("0 30 6 * * *", scheduler.NewUniverseSyncJob(deps.universeSvc, deps.log)); err != nil {
		return err
	}
	if err := sched.AddJob("0 */15 * * * *", scheduler.NewPriceSnapshotJob(deps.pricesSvc, deps.marketHours, deps.exchange, deps.log)); err != nil {
		return err
	}
	if err := sched.AddJob("0 0 */6 * * *", scheduler.NewHealthCheckJob(deps.db, deps.log)); err != nil {
		return err
	}
	return nil
}

// exitOn terminates a one-shot run with the conventional exit code
func exitOn(log zerolog.Logger, err error) {
	if err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
	os.Exit(0)
}
