package worker

import (
	"context"
	"time"

	"github.com/windedu/windtest-entry-app/internal/catalog"
	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/logger"

	"github.com/rs/zerolog"
)

// RefreshWorker re-warms the catalog cache on an interval so entry forms get
// answered from memory instead of a remote round trip.
type RefreshWorker struct {
	cfg     *config.Config
	catalog *catalog.Service
	log     zerolog.Logger
}

func NewRefreshWorker(cfg *config.Config, catalogSvc *catalog.Service) *RefreshWorker {
	return &RefreshWorker{
		cfg:     cfg,
		catalog: catalogSvc,
		log:     logger.Get(),
	}
}

func (w *RefreshWorker) Start(ctx context.Context) error {
	w.log.Info().Dur("interval", w.cfg.Workers.Refresh.Interval).Msg("Starting refresh worker")

	if w.cfg.Workers.Refresh.RunOnStart {
		w.log.Info().Msg("Running initial catalog refresh")
		if err := w.catalog.Refresh(ctx); err != nil {
			w.log.Error().Err(err).Msg("Initial catalog refresh failed")
		}
	}

	interval := w.cfg.Workers.Refresh.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Refresh worker context cancelled")
			return ctx.Err()
		case <-ticker.C:
			if err := w.catalog.Refresh(ctx); err != nil {
				w.log.Error().Err(err).Msg("Catalog refresh failed")
			}
		}
	}
}
