package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nainya/photoquery/internal/metrics"
	"github.com/nainya/photoquery/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve /query, /metrics and health endpoints over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			e.cfg.Metrics.Port = servePort
		}
		return runServe(cmd.Context(), e)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 9090, "HTTP port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, e *env) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(reg)
	m.UpdateCatalogStats(e.coll.Len(), e.coll.Directory().Len())

	qs := server.NewQueryServer(e.builder, e.coll, e.log)
	srv := server.NewObservabilityServer(e.cfg.Metrics.Port, reg, m, qs, e.log)
	e.log.LogServerStart(e.cfg.Metrics.Port, e.catalog)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		m.RunUptime(ctx.Done())
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		e.log.LogServerShutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
