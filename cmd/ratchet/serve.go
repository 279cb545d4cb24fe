package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ratchetworks/ratchet"
	"github.com/ratchetworks/ratchet/internal/logging"
	httpAdapter "github.com/ratchetworks/ratchet/pkg/adapters/http"
	"github.com/ratchetworks/ratchet/pkg/adapters/memory"
	"github.com/ratchetworks/ratchet/pkg/binder"
	"github.com/ratchetworks/ratchet/pkg/observability"
	"github.com/ratchetworks/ratchet/pkg/schema"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the workflow HTTP server",
	Long:  `Serves the workflow API over HTTP with an in-memory subject store and Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		port, _ := cmd.Flags().GetString("port")
		subjects, _ := cmd.Flags().GetStringSlice("subject")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if err := runServe(file, port, subjects, verbose); err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().StringSlice("subject", nil, "Subject IDs to seed in the initial state")
	serveCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
}

func runServe(file, port string, subjects []string, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	def, err := schema.Load(f)
	f.Close()
	if err != nil {
		return err
	}

	collector := observability.NewCollector()
	registry := prometheus.NewRegistry()
	if err := registry.Register(collector); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	factory, err := ratchet.NewFactory(def,
		ratchet.WithLogger(logger),
		ratchet.WithEventManager(collector),
	)
	if err != nil {
		return err
	}

	store := memory.NewSubjectStore()
	for _, id := range subjects {
		store.Put(id, memory.NewSubject(def.InitialState()))
	}

	b := binder.New(factory, store, binder.WithLogger(logger))

	r := chi.NewRouter()
	r.Mount("/", httpAdapter.NewHandler(b, httpAdapter.WithLogger(logger)))
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("starting ratchet server", "addr", srv.Addr, "workflow", def.Name)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		logger.Info("starting shutdown", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("killing server: %w", err)
			}
		}
		logger.Info("ratchet server stopped")
		return nil
	}
}
