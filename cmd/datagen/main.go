package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simaogato/wealthflow-datagen/internal/adapter/fakedata"
	"github.com/simaogato/wealthflow-datagen/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthflow-datagen/internal/config"
	"github.com/simaogato/wealthflow-datagen/internal/logging"
	"github.com/simaogato/wealthflow-datagen/internal/metrics"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/account"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/customer"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/emailregistry"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/iteration"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/runner"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/timestamp"
	"github.com/simaogato/wealthflow-datagen/internal/usecase/transaction"
)

const metricsShutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		once bool
		seed uint64
	)

	rootCmd := &cobra.Command{
		Use:          "datagen",
		Short:        "Generate synthetic customers, accounts and transactions into PostgreSQL",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.Loop.Once = once
			return run(cmd.Context(), cfg, seed)
		},
	}
	rootCmd.Flags().BoolVar(&once, "once", false, "run a single iteration and exit")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")

	rootCmd.AddCommand(migrateCommand())
	return rootCmd
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "apply database schema migrations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := logging.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := postgres.NewDB(cfg.Database.ConnString())
			if err != nil {
				logger.Error("Failed to connect to database", zap.Error(err))
				return err
			}
			defer closeDB(db, logger)

			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				logger.Error("Migration failed", zap.Error(err))
				return err
			}
			logger.Info("Schema is up to date")
			return nil
		},
	}
}

func run(parent context.Context, cfg *config.Config, seed uint64) error {
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Setup Database
	db, err := postgres.NewDB(cfg.Database.ConnString())
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer closeDB(db, logger)

	// 2. Metrics
	var collector metrics.Collector = metrics.NoOpCollector{}
	if cfg.MetricsAddr != "" {
		pc := metrics.NewPrometheusCollector(cfg.MetricsNamespace)
		shutdown, err := serveMetrics(cfg.MetricsAddr, pc, logger.Named("metrics"))
		if err != nil {
			return err
		}
		defer shutdown()
		collector = pc
	}

	// 3. Initialize Repositories (Postgres)
	customerRepo := postgres.NewCustomerRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	// 4. Initialize Synthesizers
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	people := fakedata.NewProvider(seed)
	policy := timestamp.DefaultPolicy()
	windowStart, windowEnd := policy.Window()
	logger.Info("Generator seeded",
		zap.Uint64("seed", seed),
		zap.Time("window_start", windowStart),
		zap.Time("window_end", windowEnd),
	)
	emails := emailregistry.New(emailregistry.DefaultConfig(), rng)

	customers := customer.NewSynthesizer(customerRepo, people, people, emails, policy, rng)
	accounts := account.NewSynthesizer(accountRepo, account.Config{
		MinPerCustomer: cfg.Generation.AccountsPerCustomerMin,
		MaxPerCustomer: cfg.Generation.AccountsPerCustomerMax,
	}, policy, rng)
	transactions := transaction.NewSynthesizer(transactionRepo, policy, rng)

	pipeline := iteration.NewPipeline(iteration.Config{
		Customers:    cfg.Generation.Customers,
		Transactions: cfg.Generation.Transactions,
	}, customers, accounts, transactions, emails, collector)

	// 5. Run
	r := runner.NewRunner(pipeline, runner.Config{
		Once:     cfg.Loop.Once,
		Interval: cfg.Loop.Interval,
	}, logger.Named("runner"))

	if err := r.Run(ctx); err != nil {
		logger.Error("Data generation failed", zap.Error(err))
		return err
	}
	return nil
}

// serveMetrics exposes /metrics in the background and returns a shutdown func
func serveMetrics(addr string, pc *metrics.PrometheusCollector, logger *logging.Logger) (func(), error) {
	registry := prometheus.NewRegistry()
	if err := pc.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("Metrics server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	return func() { shutdownServer(srv, logger) }, nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func shutdownServer(srv shutdowner, logger *logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("Failed to shut down metrics server", zap.Error(err))
	}
}

func closeDB(db io.Closer, logger *logging.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("Failed to close database connection", zap.Error(err))
		return
	}
	logger.Info("Database connection closed")
}
