package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/wyattmchalffey/Dice-Dash/internal/logger"
)

func (s *Server) RegisterRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/rooms", s.roomsHandler)
	mux.HandleFunc("/websocket", s.websocketHandler)

	return s.corsMiddleware(mux)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) roomsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.gameManager.RoomStats())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		logger.Log.Warnw("failed to write response", "error", err)
	}
}

func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	socket, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // TODO: restrict to the client origin in production config
	})
	if err != nil {
		http.Error(w, "Failed to open websocket", http.StatusInternalServerError)
		return
	}
	defer socket.Close(websocket.StatusGoingAway, "Server closing")

	ctx := r.Context()
	conn := newWSConn(uuid.New().String(), socket)
	connectionID := conn.ID()

	logger.Log.Infow("connection opened", "connection", connectionID)
	s.connectionManager.AddConnection(conn)
	if s.monitor != nil {
		s.monitor.IncOnlinePlayers()
	}

	defer func() {
		s.gameManager.HandlePlayerDisconnect(connectionID)
		s.connectionManager.RemoveConnection(connectionID)
		s.rateLimiter.RemoveConnection(connectionID)
		s.health.RemoveConnection(connectionID)
		if s.monitor != nil {
			s.monitor.DecOnlinePlayers()
		}
		s.setActiveRooms()
		logger.Log.Infow("connection closed", "connection", connectionID)
	}()

	for {
		msgType, data, err := socket.Read(ctx)
		if err != nil {
			logger.Log.Debugw("connection read ended", "connection", connectionID, "error", err)
			return
		}

		if msgType != websocket.MessageText {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(conn, "INVALID_JSON: Malformed message")
			continue
		}

		if !s.rateLimiter.Allow(connectionID) {
			s.sendError(conn, "RATE_LIMITED: Too many messages, slow down")
			continue
		}
		s.health.UpdateActivity(connectionID)

		if s.monitor != nil {
			s.monitor.IncMessagesReceived()
		}

		start := time.Now()
		s.dispatch(conn, msg)
		if s.monitor != nil {
			s.monitor.ObserveMessageLatency(time.Since(start))
		}
	}
}

// dispatch routes one inbound message. It is the error boundary: a panic in
// a handler is logged and answered with a generic error, never allowed to
// take down the room or the process.
func (s *Server) dispatch(conn Conn, msg ClientMessage) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Log.Errorw("panic handling message", "connection", conn.ID(), "type", msg.Type, "panic", rec)
			s.sendError(conn, "INTERNAL_ERROR: Something went wrong handling that action")
		}
	}()

	if err := ValidateMessageType(msg.Type); err != nil {
		s.sendError(conn, err.Error())
		return
	}

	switch msg.Type {
	case EventPing:
		if err := conn.Send(EventPong, struct{}{}); err != nil {
			logger.Log.Debugw("failed to send pong", "connection", conn.ID(), "error", err)
		}

	case EventJoinGame:
		s.handleJoinGame(conn, msg.Payload)

	case EventLeaveGame:
		s.gameManager.HandlePlayerLeave(conn.ID())
		s.setActiveRooms()

	case EventRequestRoll:
		if err := s.gameManager.HandleRollDice(conn.ID()); err != nil {
			s.sendError(conn, err.Error())
			return
		}
		if s.monitor != nil {
			s.monitor.IncDiceRolls()
		}

	case EventMinigameResult:
		var req MinigameResultRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			s.sendError(conn, "INVALID_PAYLOAD: Invalid minigame_result payload")
			return
		}
		if err := s.gameManager.HandleMinigameResult(conn.ID(), req); err != nil {
			s.sendError(conn, err.Error())
		}

	case EventChatMessage:
		var req ChatMessageRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			s.sendError(conn, "INVALID_PAYLOAD: Invalid chat_message payload")
			return
		}
		s.gameManager.HandleChatMessage(conn.ID(), req.Message)

	case EventEmoteSent:
		var req EmoteRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			s.sendError(conn, "INVALID_PAYLOAD: Invalid emote_sent payload")
			return
		}
		s.gameManager.HandleEmote(conn.ID(), req.EmoteID)

	default:
		s.sendError(conn, fmt.Sprintf("INVALID_MESSAGE_TYPE: Unknown message type '%s'", msg.Type))
	}
}

func (s *Server) handleJoinGame(conn Conn, payload json.RawMessage) {
	var req JoinGameRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		s.sendError(conn, "INVALID_PAYLOAD: Invalid join_game payload")
		return
	}

	result, err := s.gameManager.HandlePlayerJoin(conn, req.PlayerName, req.RoomID)
	if err != nil {
		s.sendError(conn, err.Error())
		return
	}

	if err := conn.Send(EventGameJoined, result); err != nil {
		logger.Log.Warnw("failed to send game_joined", "connection", conn.ID(), "error", err)
	}
	s.setActiveRooms()
}

// sendError delivers a structured error to exactly one connection.
func (s *Server) sendError(conn Conn, message string) {
	if err := conn.Send(EventError, ErrorMessage{Message: message}); err != nil {
		logger.Log.Debugw("failed to send error", "connection", conn.ID(), "error", err)
	}
}
