package cli

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nhle/tasklogger/internal/logging"
	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/store"
	"github.com/nhle/tasklogger/internal/tracker"
)

// runtime is everything a command needs: config, logger, the open store
// and a controller over it. Close releases them in reverse order.
type runtime struct {
	cfg      *model.AppConfig
	log      *zap.Logger
	closeLog func() error
	store    *store.SQLiteStore
	ctrl     *tracker.Controller
}

func openRuntime(opts *options) (*runtime, error) {
	cfg, err := model.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.Database.Path = opts.dbPath
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
		File:     cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Error("opening database", zap.String("path", cfg.Database.Path), zap.Error(err))
		_ = closeLog()
		return nil, fmt.Errorf("opening database %s: %w", cfg.Database.Path, err)
	}

	ctrl := tracker.New(s, logger, tracker.WithWeekStart(cfg.WeekStartDay()))

	return &runtime{
		cfg:      cfg,
		log:      logger,
		closeLog: closeLog,
		store:    s,
		ctrl:     ctrl,
	}, nil
}

// Close closes the store and flushes the logger.
func (r *runtime) Close() error {
	return errors.Join(r.store.Close(), r.closeLog())
}
