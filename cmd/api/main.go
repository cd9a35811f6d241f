package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/wyattmchalffey/Dice-Dash/internal/config"
	"github.com/wyattmchalffey/Dice-Dash/internal/logger"
	"github.com/wyattmchalffey/Dice-Dash/internal/monitor"
	"github.com/wyattmchalffey/Dice-Dash/internal/server"
)

func gracefulShutdown(gameServer *server.Server, httpServer *http.Server, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Log.Info("Shutdown signal received, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := gameServer.Shutdown(ctx); err != nil {
		logger.Log.Errorw("error during game server shutdown", "error", err)
	}

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Log.Errorw("HTTP server forced to shutdown", "error", err)
	}

	done <- true
}

func main() {
	logger.Init()
	defer logger.Log.Sync()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalw("failed to load config", "error", err)
	}

	mon := monitor.NewMonitor("dicedash")
	mon.StartServer(cfg.Server.MetricsAddress)

	gameServer, httpServer := server.NewServer(cfg, mon)

	done := make(chan bool, 1)
	go gracefulShutdown(gameServer, httpServer, done)

	logger.Log.Infow("server listening", "address", cfg.Server.Address, "metrics", cfg.Server.MetricsAddress)
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	logger.Log.Info("Graceful shutdown complete.")
}
