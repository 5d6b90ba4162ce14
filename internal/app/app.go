package app

import (
	"context"
	"fmt"

	"github.com/NasaVasa/pricewatch/internal/catalog"
	"github.com/NasaVasa/pricewatch/internal/config"
	"github.com/NasaVasa/pricewatch/internal/delivery/status"
	"github.com/NasaVasa/pricewatch/internal/delivery/telegram"
	"github.com/NasaVasa/pricewatch/internal/infra/albion"
	"github.com/NasaVasa/pricewatch/internal/infra/db"
	"github.com/NasaVasa/pricewatch/internal/infra/log"
	"github.com/NasaVasa/pricewatch/internal/scheduler"
	"github.com/NasaVasa/pricewatch/internal/usecase"
	"go.uber.org/zap"
)

type App struct {
	bot       *telegram.Bot
	checker   *usecase.AlertChecker
	scheduler *scheduler.Scheduler
	status    *status.Server
	httpAddr  string
	logger    *zap.Logger
	cleanupFn func() error
}

func New(cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	items, err := catalog.Load(cfg.ItemsFile)
	if err != nil {
		return nil, err
	}
	logger.Info("item catalog loaded", zap.String("path", cfg.ItemsFile), zap.Int("items", items.Len()))

	overlap, err := scheduler.ParseOverlapPolicy(cfg.CheckOverlap)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	alertRepo := db.NewAlertRepository(dbConn)
	priceClient := albion.NewPriceClient(cfg.PricesBaseURL, cfg.PricesTimeout, logger)
	alertUC := usecase.NewAlertUsecase(alertRepo, items)

	api, err := telegram.NewAPI(cfg.TelegramBotToken)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("connect telegram: %w", err)
	}

	notifier := telegram.NewNotifier(api, logger)
	checker := usecase.NewAlertChecker(alertRepo, priceClient, notifier, logger)
	handlers := telegram.NewHandlers(api, alertUC, items, logger)
	bot := telegram.NewBot(api, handlers, cfg.TelegramPollTimeout)

	sched := scheduler.New(scheduler.Job{
		Name:     "check-alerts",
		Interval: cfg.CheckInterval,
		Overlap:  overlap,
		RunFirst: cfg.CheckOnStart,
		Handler: func(ctx context.Context) error {
			_, err := checker.RunCycle(ctx)
			return err
		},
	}, logger)

	return &App{
		bot:       bot,
		checker:   checker,
		scheduler: sched,
		status:    newStatusServer(cfg, alertUC, items, logger),
		httpAddr:  cfg.HTTPAddr,
		logger:    logger,
		cleanupFn: cleanup,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("pricewatch service starting")

	go a.scheduler.Run(ctx, a.bot.Ready())

	if a.status != nil {
		go func() {
			if err := a.status.ListenAndServe(ctx, a.httpAddr); err != nil {
				a.logger.Error("status api stopped", zap.Error(err))
			}
		}()
	}

	return a.bot.Start(ctx)
}

// newStatusServer returns nil unless HTTP_ADDR is configured.
func newStatusServer(cfg config.Config, alerts status.AlertLister, items status.ItemSearcher, logger *zap.Logger) *status.Server {
	if cfg.HTTPAddr == "" {
		return nil
	}
	return status.NewServer(alerts, items, cfg.StatusToken, logger)
}

// CheckOnce runs a single alert check without starting the bot poller.
func (a *App) CheckOnce(ctx context.Context) error {
	report, err := a.checker.RunCycle(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("single check finished", zap.String("cycle_id", report.CycleID), zap.Int("notified", report.Notified))
	return nil
}

// Shutdown closes the database. Alert checks still in flight are not
// awaited; an alert delivered but not yet deleted fires again next time.
func (a *App) Shutdown() {
	a.logger.Info("pricewatch service shutting down")
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		} else {
			a.logger.Info("database connection closed")
		}
	}
	_ = a.logger.Sync()
}
