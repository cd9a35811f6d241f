package server

import (
	"context"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/wyattmchalffey/Dice-Dash/internal/config"
	"github.com/wyattmchalffey/Dice-Dash/internal/logger"
	"github.com/wyattmchalffey/Dice-Dash/internal/monitor"
)

type Server struct {
	cfg               *config.Config
	connectionManager *ConnectionManager
	gameManager       *GameManager
	rateLimiter       *RateLimiter
	health            *ConnectionHealth
	monitor           *monitor.Monitor
	stopTasks         chan struct{}
}

// NewServer wires the managers together and returns both the game server
// and the configured HTTP server.
func NewServer(cfg *config.Config, mon *monitor.Monitor) (*Server, *http.Server) {
	s := &Server{
		cfg:               cfg,
		connectionManager: NewConnectionManager(),
		gameManager:       NewGameManager(cfg),
		rateLimiter:       NewRateLimiter(cfg.Server.RateLimitPerSecond, time.Second),
		health:            NewConnectionHealth(),
		monitor:           mon,
		stopTasks:         make(chan struct{}),
	}

	go s.sweepTask()

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s, httpServer
}

// sweepTask periodically reaps idle rooms, stale rate-limit entries, and
// connections that went silent without a close frame.
func (s *Server) sweepTask() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.rateLimiter.Cleanup()

			if removed := s.gameManager.CleanupIdleRooms(s.cfg.Server.IdleRoomTimeout); removed > 0 {
				logger.Log.Infow("idle room sweep", "removed", removed)
			}

			for _, connID := range s.health.GetInactiveConnections(s.cfg.Server.IdleRoomTimeout) {
				if conn := s.connectionManager.GetConnection(connID); conn != nil {
					conn.Close("inactive")
				}
			}

			s.setActiveRooms()
		case <-s.stopTasks:
			return
		}
	}
}

func (s *Server) setActiveRooms() {
	if s.monitor != nil {
		s.monitor.SetActiveRooms(s.gameManager.RoomCount())
	}
}

// Shutdown tears down rooms and background tasks. The HTTP server is shut
// down separately by the caller.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.stopTasks)
	s.gameManager.Shutdown()
	return nil
}
