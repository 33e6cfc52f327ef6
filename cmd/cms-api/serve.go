package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cms-api/internal/config"
	httpserver "cms-api/internal/http-server"
	"cms-api/internal/http-server/middleware/metrics"
	"cms-api/internal/lib/jwt"
	"cms-api/internal/lib/logger"
	"cms-api/internal/lib/logger/sl"
	articleservice "cms-api/internal/service/article"
	reviewservice "cms-api/internal/service/review"
	userservice "cms-api/internal/service/user"
	"cms-api/internal/storage/sqlite"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(config.MustLoad(cfgPath))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cfg *config.Config) error {
	log := logger.New(cfg.Env)

	log.Debug("initializing server...", slog.String("addr", cfg.Address))

	// Init storage
	storage, err := sqlite.New(cfg.StoragePath)
	if err != nil {
		log.Error("error opening storage", sl.Error(err))
		return err
	}
	defer storage.Close()

	// Init service layer
	reviews := reviewservice.New(log, storage)
	services := httpserver.Services{
		Articles: articleservice.New(log, storage),
		Ratings:  reviews,
		Reviews:  reviews,
		Users:    userservice.New(log, storage, cfg.Secret, cfg.TokenTTL),
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	r := httpserver.NewRouter(log, services, jwt.NewAuth(cfg.Secret), m)

	srv := http.Server{
		Handler:      r,
		Addr:         cfg.Address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	log.Debug("server initialized")
	log.Info("server is running...", slog.String("addr", cfg.Address))

	// Gracefully shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("error starting server", sl.Error(err))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to stop server", sl.Error(err))
		return err
	}

	log.Info("server stopped")

	return nil
}
