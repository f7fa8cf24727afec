package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout is the time running requests get to finish on shutdown.
const shutdownTimeout = 10 * time.Second

func (a *app) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(store *models.Store) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				return a.serve(ctx, store)
			})
		},
	}
}

// serve runs the API until ctx is done.
func (a *app) serve(ctx context.Context, store *models.Store) error {
	err := a.cfg.Export()
	if err != nil {
		return err
	}

	// Both have been validated with the configuration
	url, _ := a.cfg.BaseURL()
	location, _ := a.cfg.TimeLocation()

	r, teardown, err := router.Config(url)
	defer teardown()
	if err != nil {
		return err
	}
	router.AttachRoutes(r.Group(url.Path), store, location)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("url", url.String()).Msg("backend startup complete")

		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
