package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	httpAdapter "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the sample machines behind a JSON API over HTTP, with Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := resolveConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		collector := observability.NewCollector(prometheus.DefaultRegisterer)
		reg, err := cli.BuildRegistry(logger,
			arbor.WithTransitionHook(collector.TransitionHook()),
			arbor.WithChainObserver(collector.ChainObserver()),
		)
		if err != nil {
			fmt.Printf("Error building machines: %v\n", err)
			os.Exit(1)
		}
		for _, name := range reg.Names() {
			if m, ok := reg.Get(name); ok {
				observability.BusyGauge(prometheus.DefaultRegisterer, name, m.Busy)
			}
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/", httpAdapter.NewHandler(reg, logger, httpAdapter.WithCollector(collector)))

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Arbor server on %s (machines: %v)\n", srv.Addr, reg.Names())
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown failed: %v\n", err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Forced close failed: %v\n", err)
				}
			}
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
