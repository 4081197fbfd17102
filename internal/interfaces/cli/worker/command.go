package worker

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"talentika/internal/infrastructure/database"
	"talentika/internal/infrastructure/metrics"
	"talentika/internal/infrastructure/scheduler"
	httpRouter "talentika/internal/interfaces/http"
	"talentika/internal/interfaces/cli/bootstrap"
)

var (
	env         string
	metricsAddr string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run background jobs",
		Long:  `Run the subscription expiry sweep and the activation retry job for paid transactions.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address, e.g. :9091")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("starting worker", "environment", env)

	registry := prometheus.NewRegistry()
	ucs, err := httpRouter.NewUseCases(database.Get(), cfg, log, metrics.NewPaymentMetrics(registry))
	if err != nil {
		return fmt.Errorf("failed to build use cases: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	schedulers := []*scheduler.BatchScheduler{
		scheduler.NewSubscriptionScheduler(
			ucs.ExpireSubscriptions,
			time.Duration(cfg.Scheduler.ExpiryIntervalMin)*time.Minute,
			log,
		),
		scheduler.NewActivationRetryScheduler(
			ucs.RetryActivation,
			time.Duration(cfg.Scheduler.ActivationIntervalMin)*time.Minute,
			log,
		),
	}
	for _, s := range schedulers {
		s.Start(ctx)
	}

	var metricsSrv *http.Server
	if metricsAddr != "" {
		metricsSrv = &http.Server{
			Addr:              metricsAddr,
			Handler:           metrics.Handler(registry),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorw("metrics server failed", "error", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infow("received shutdown signal", "signal", sig.String())

	cancel()
	for _, s := range schedulers {
		s.Stop()
	}

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}

	log.Infow("worker stopped")
	return nil
}
