// Command omopgraph serves bounded concept-relationship traversals over an
// OMOP vocabulary in PostgreSQL.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/omopgraph/omopgraph/internal/api"
	"github.com/omopgraph/omopgraph/internal/config"
	"github.com/omopgraph/omopgraph/internal/dbpool"
	"github.com/omopgraph/omopgraph/internal/metrics"
	"github.com/omopgraph/omopgraph/internal/service"
	"github.com/omopgraph/omopgraph/internal/store"
	"github.com/omopgraph/omopgraph/internal/traverse"
)

const (
	shutdownTimeout   = 15 * time.Second
	poolStatsInterval = 15 * time.Second
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel) // validated by config.Load
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("omopgraph exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	if err := store.ValidateSchema(cfg.Schema); err != nil {
		return err
	}

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	graphStore := store.NewGraphStore(store.Base{Pool: pool, Log: log, Schema: cfg.Schema})
	if err := graphStore.CheckSchema(ctx); err != nil {
		log.WithError(err).WithField("schema", cfg.Schema).Warn("concept tables not readable yet; /ready will report not_ready")
	}

	allow := traverse.NewAllowList(traverse.DefaultRelationships...)
	svc := service.NewGraphService(
		graphStore,
		traverse.NewEngine(traverse.WithMaxSteps(cfg.TraverseMaxSteps)),
		traverse.NewPolicies(allow),
		service.GraphServiceConfig{Timeout: cfg.TraverseTimeout, MaxDepth: cfg.MaxTraverseDepth},
		log,
	)

	apiSrv := &http.Server{
		Addr: cfg.Addr(),
		Handler: api.NewRouter(&api.RouterDeps{
			Log:         log,
			DB:          pool,
			Schema:      graphStore,
			Graph:       svc,
			CORSOrigins: cfg.CORSOrigins,
			Version:     config.Version,
			MaxDepth:    cfg.MaxTraverseDepth,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.TraverseTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.WithFields(logrus.Fields{
		"addr":          cfg.Addr(),
		"metrics_addr":  cfg.MetricsAddr(),
		"schema":        cfg.Schema,
		"db_max_conns":  cfg.DBMaxConns,
		"relationships": allow.Len(),
		"version":       config.Version,
	}).Info("omopgraph starting")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return serve(apiSrv) })
	g.Go(func() error { return serve(metricsSrv) })
	g.Go(func() error {
		samplePoolStats(gctx, pool)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(apiSrv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	}

	return nil
}

// samplePoolStats publishes pool usage until ctx is done.
func samplePoolStats(ctx context.Context, pool *dbpool.Pool) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()

	for {
		metrics.DBPoolAcquired.Set(float64(pool.Stat().AcquiredConns()))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
