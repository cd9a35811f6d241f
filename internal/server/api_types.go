package server

import (
	"github.com/wyattmchalffey/Dice-Dash/internal/board"
	"github.com/wyattmchalffey/Dice-Dash/internal/game"
)

// ============================================================================
// ERROR RESPONSES
// ============================================================================
type ErrorMessage struct {
	Message string `json:"message"`
}

// ============================================================================
// JOIN GAME (join_game)
// ============================================================================
type JoinGameRequest struct {
	PlayerName string `json:"playerName"`
	RoomID     string `json:"roomId,omitempty"`
}

// GameJoinedPayload is the directed reply to a successful join.
type GameJoinedPayload struct {
	PlayerID  string            `json:"playerId"`
	RoomID    string            `json:"roomId"`
	GameState GameStatePayload  `json:"gameState"`
	Player    game.PublicPlayer `json:"player"`
}

// ============================================================================
// GAME STATE (game_joined reply, game_state_update broadcast)
// ============================================================================
type GameStatePayload struct {
	RoomID        string              `json:"roomId"`
	State         RoomState           `json:"state"`
	Players       []game.PublicPlayer `json:"players"`
	CurrentPlayer string              `json:"currentPlayer,omitempty"`
	TurnNumber    int                 `json:"turnNumber"`
	Board         board.Snapshot      `json:"board"`
}

type GameStateUpdatePayload struct {
	RoomID        string    `json:"roomId"`
	State         RoomState `json:"state"`
	CurrentPlayer string    `json:"currentPlayer,omitempty"`
}

// ============================================================================
// PLAYER LIFECYCLE (player_joined, player_left broadcasts)
// ============================================================================
type PlayerJoinedPayload struct {
	RoomID       string            `json:"roomId"`
	Player       game.PublicPlayer `json:"player"`
	TotalPlayers int               `json:"totalPlayers"`
}

type PlayerLeftPayload struct {
	RoomID     string `json:"roomId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// ============================================================================
// DICE AND MOVEMENT (dice_rolled, player_moving broadcasts)
// ============================================================================
type DiceRolledPayload struct {
	RoomID     string          `json:"roomId"`
	PlayerID   string          `json:"playerId"`
	PlayerName string          `json:"playerName"`
	DiceResult game.DiceResult `json:"diceResult"`
}

type PlayerMovingPayload struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	From     int    `json:"from"`
	To       int    `json:"to"`
	Spaces   int    `json:"spaces"`
}

// ============================================================================
// SPACE EFFECTS (space_action broadcast)
// ============================================================================
type SpaceActionPayload struct {
	RoomID    string            `json:"roomId"`
	PlayerID  string            `json:"playerId"`
	SpaceType board.SpaceType   `json:"spaceType"`
	Result    game.ActionResult `json:"result"`
	// Set when a collected star relocated to a new space.
	StarMovedTo *int `json:"starMovedTo,omitempty"`
}

// ============================================================================
// ENERGY (energy_updated broadcast, energy_regenerated directed)
// ============================================================================
type EnergyUpdatedPayload struct {
	RoomID        string `json:"roomId"`
	PlayerID      string `json:"playerId"`
	CurrentEnergy int    `json:"currentEnergy"`
	MaxEnergy     int    `json:"maxEnergy"`
}

type EnergyRegeneratedPayload struct {
	RoomID        string `json:"roomId"`
	CurrentEnergy int    `json:"currentEnergy"`
	MaxEnergy     int    `json:"maxEnergy"`
}

// ============================================================================
// MINIGAMES (minigame_start directed, minigame_result inbound,
// minigame_ended broadcast)
// ============================================================================
type MinigameStartPayload struct {
	RoomID    string `json:"roomId"`
	Type      string `json:"type"`
	TimeLimit int    `json:"timeLimit"` // milliseconds
}

type MinigameResultRequest struct {
	Completed   bool `json:"completed"`
	Score       int  `json:"score"`
	TimeElapsed int  `json:"timeElapsed"` // milliseconds
}

type MinigameEndedPayload struct {
	RoomID     string `json:"roomId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	Reward     int    `json:"reward"`
}

// ============================================================================
// SOCIAL (chat_message, emote_sent)
// ============================================================================
type ChatMessageRequest struct {
	Message string `json:"message"`
}

type ChatMessagePayload struct {
	RoomID     string `json:"roomId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

type EmoteRequest struct {
	EmoteID string `json:"emoteId"`
}

type EmotePayload struct {
	RoomID     string `json:"roomId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	EmoteID    string `json:"emoteId"`
	Position   int    `json:"position"`
}

// ============================================================================
// ROOM LISTING (GET /rooms)
// ============================================================================
type RoomInfo struct {
	RoomID      string    `json:"roomId"`
	PlayerCount int       `json:"playerCount"`
	MaxPlayers  int       `json:"maxPlayers"`
	State       RoomState `json:"state"`
	CreatedAt   int64     `json:"createdAt"`
}

type RoomListResponse struct {
	Rooms        []RoomInfo `json:"rooms"`
	TotalRooms   int        `json:"totalRooms"`
	TotalPlayers int        `json:"totalPlayers"`
}
