package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/simaogato/wealthflow-datagen/internal/domain"
	"github.com/simaogato/wealthflow-datagen/internal/logging"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/iteration"
)

// DefaultInterval is the pause between two iterations in loop mode
const DefaultInterval = 2 * time.Second

// Iterator runs one generation iteration
type Iterator interface {
	Run(ctx context.Context) (*iteration.Summary, error)
}

// Config controls how many iterations run and how far apart
type Config struct {
	Once     bool
	Interval time.Duration
}

// Runner drives the pipeline once or until interrupted
type Runner struct {
	pipeline Iterator
	cfg      Config
	logger   *logging.Logger
}

// NewRunner creates a new Runner. A non-positive interval falls back to DefaultInterval.
func NewRunner(pipeline Iterator, cfg Config, logger *logging.Logger) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Runner{
		pipeline: pipeline,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run executes iterations until the context is cancelled, or just one in once mode.
// Cancellation is a normal way to stop and returns nil.
// An insert failure aborts the loop and is returned.
func (r *Runner) Run(ctx context.Context) error {
	for n := 1; ; n++ {
		log := r.logger.With(zap.Int("iteration", n))
		log.Info("Starting data generation iteration")

		summary, err := r.pipeline.Run(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				var fields []zap.Field
				if summary != nil {
					fields = append(fields,
						zap.Int("customers", summary.Customers),
						zap.Int("accounts", summary.Accounts),
						zap.Int("transactions", summary.Transactions),
					)
				}
				log.Info("Interrupted during iteration, stopping", fields...)
				return nil
			}
			return fmt.Errorf("iteration %d failed: %w", n, err)
		}

		logSummary(log, summary)

		if r.cfg.Once {
			r.logger.Info("Single iteration complete")
			return nil
		}

		if ctx.Err() != nil {
			r.logger.Info("Interrupted, stopping", zap.Int("completed_iterations", n))
			return nil
		}

		r.logger.Debug("Waiting before next iteration", zap.Duration("interval", r.cfg.Interval))

		timer := time.NewTimer(r.cfg.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("Interrupted, stopping", zap.Int("completed_iterations", n))
			return nil
		case <-timer.C:
		}
	}
}

func logSummary(log *logging.Logger, s *iteration.Summary) {
	log.Info(fmt.Sprintf("Generated %d customers, %d accounts, %d transactions",
		s.Customers, s.Accounts, s.Transactions),
		zap.String("run_id", s.RunID.String()),
		zap.Duration("duration", s.Duration),
	)

	types := make([]string, 0, len(s.AccountsByType))
	for t := range s.AccountsByType {
		types = append(types, string(t))
	}
	sort.Strings(types)

	fields := make([]zap.Field, 0, len(types)+1)
	for _, t := range types {
		fields = append(fields, zap.Int(t, s.AccountsByType[domain.AccountType(t)]))
	}
	fields = append(fields, zap.Int("email_fallbacks", s.EmailFallbacks))
	log.Info("Account type breakdown", fields...)
}
