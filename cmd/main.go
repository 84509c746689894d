package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "servo_control/docs"
	"servo_control/internal/config"
	"servo_control/internal/handlers"
	"servo_control/internal/logger"
	"servo_control/internal/reflector"
	"servo_control/internal/repository"
	"servo_control/internal/server"
	"servo_control/internal/service"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file (default configs/config.yml)")
	flag.Parse()

	// load config before the logger so log.level applies
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if cfg.LogLevel != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// wire dependencies
	clk := clock.New()
	repos := repository.NewRepository(cfg.Device.BaseURL, repository.NewHTTPClient(cfg.Device.Timeout))
	hub := reflector.NewHub(clk)
	services := service.NewService(repos, hub, service.Options{
		PollInterval: cfg.Sync.PollInterval,
		RefreshDelay: cfg.Sync.RefreshDelay,
		Clock:        clk,
	}, log.Named("servo"))
	apiHandler := handlers.NewHandler(services, log.Named("http"))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Infow("sync_started",
		"device", cfg.Device.BaseURL,
		"poll_interval", cfg.Sync.PollInterval,
		"refresh_delay", cfg.Sync.RefreshDelay,
	)
	go services.Sync.Run(ctx)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "addr", server.Addr(port))
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down...")

	// stop the sync loop
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
