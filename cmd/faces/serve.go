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

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/faces/internal/config"
	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/httpapi"
	"github.com/alexisbeaulieu97/faces/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	addr    string
	noWatch bool
}

func newServeCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the engine over HTTP with Prometheus metrics",
		Long: `Serve the loaded theme over a JSON API for resolving faces and editing
styles, with metrics at /metrics. The theme file is re-applied whenever it
changes unless --no-watch is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "Address to listen on")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Do not re-apply the theme when it changes")

	return cmd
}

// newServeHandler wires the API of a session to its metrics.
func newServeHandler(s *session, collector *metrics.Collector) http.Handler {
	return httpapi.NewHandler(s.engine, httpapi.Options{Logger: s.logger, Metrics: collector.Handler()})
}

func runServe(cmd *cobra.Command, rootFlags *rootFlags, opts *serveOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.New()
	started := time.Now()
	s, err := openSession(ctx, cmd, rootFlags, engine.Options{Observer: collector})
	if err != nil {
		return err
	}
	collector.RecordRefresh(s.results, time.Since(started))

	if s.theme != nil && !opts.noWatch {
		w, err := config.NewWatcher(s.theme.Path, s.engine, config.ApplyOptions{Logger: s.logger})
		if err != nil {
			return newCommandError("serve", "watching the theme", err, "Pass --no-watch to serve without reloading.")
		}
		defer w.Close()
		w.OnReload(func(_ *config.Theme, err error) {
			if err != nil {
				return
			}
			began := time.Now()
			results, _ := s.engine.Refresh(ctx)
			collector.RecordRefresh(results, time.Since(began))
		})
		go func() { _ = w.Run(ctx) }()
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServeHandler(s, collector),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.WithFields(map[string]any{"addr": opts.addr, "surfaces": s.engine.SurfaceNames()}).Info("serving")
		fmt.Fprintf(cmd.OutOrStdout(), "Serving faces on %s\n", opts.addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return newCommandError("serve", "listening on "+opts.addr, err, "Choose another address with --addr.")

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(err, "graceful shutdown did not complete")
			return srv.Close()
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Server stopped")
		return nil
	}
}
