package server

import "encoding/json"

type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Inbound event types (client -> server).
const (
	EventJoinGame       = "join_game"
	EventLeaveGame      = "leave_game"
	EventRequestRoll    = "request_roll"
	EventMinigameResult = "minigame_result"
	EventPing           = "ping"
)

// Outbound event types (server -> client). Broadcast unless noted directed.
const (
	EventGameJoined        = "game_joined" // directed
	EventGameStateUpdate   = "game_state_update"
	EventPlayerJoined      = "player_joined"
	EventPlayerLeft        = "player_left"
	EventDiceRolled        = "dice_rolled"
	EventPlayerMoving      = "player_moving"
	EventSpaceAction       = "space_action"
	EventEnergyUpdated     = "energy_updated"
	EventEnergyRegenerated = "energy_regenerated" // directed
	EventMinigameStart     = "minigame_start"     // directed
	EventMinigameEnded     = "minigame_ended"
	EventError             = "error" // directed
	EventPong              = "pong"  // directed
)

// Bidirectional event types: inbound requests rebroadcast to the room.
const (
	EventChatMessage = "chat_message"
	EventEmoteSent   = "emote_sent"
)
