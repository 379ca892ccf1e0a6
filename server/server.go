// Package server wires configuration, the player service and the HTTP
// handlers into a runnable server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"

	"linkrelay/config"
	"linkrelay/handlers"
	"linkrelay/services/player"
	"linkrelay/utils"
)

// Name is reported by the index endpoint.
const Name = "linkrelay"

// NewHandler builds the routed handler for settings.
func NewHandler(settings *config.Settings, logger logrus.FieldLogger) *mux.Router {
	client := player.NewClient(settings.Upstream, logger)
	service := player.NewService(client, settings.Tag, logger)

	r := utils.NewRouter(logger, settings.Tag)

	index := handlers.NewIndexHandler(Name, settings.Tag)
	r.HandleFunc("/", index.Index).Methods(http.MethodGet, http.MethodOptions)

	links := handlers.NewLinksHandler(service, logger)
	r.HandleFunc("/get_links", links.GetLinks).Methods(http.MethodGet, http.MethodOptions)

	return r
}

// New returns an *http.Server listening on the configured address.
func New(settings *config.Settings, logger logrus.FieldLogger) *http.Server {
	return &http.Server{
		Addr:              settings.Server.Address(),
		Handler:           NewHandler(settings, logger),
		ReadHeaderTimeout: settings.Server.ReadTimeout,
		ReadTimeout:       settings.Server.ReadTimeout,
		WriteTimeout:      settings.Server.WriteTimeout,
		IdleTimeout:       settings.Server.IdleTimeout,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most settings.Server.ShutdownTimeout.
func Run(ctx context.Context, srv *http.Server, settings *config.Settings, logger logrus.FieldLogger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg          conc.WaitGroup
		serveErr    error
		shutdownErr error
	)

	wg.Go(func() {
		defer cancel()
		logger.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("listen: %w", err)
		}
	})

	wg.Go(func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), settings.Server.ShutdownTimeout)
		defer done()
		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			shutdownErr = fmt.Errorf("shutdown: %w", err)
		}
	})

	wg.Wait()
	return errors.Join(serveErr, shutdownErr)
}
