package server

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/wyattmchalffey/Dice-Dash/internal/config"
	"github.com/wyattmchalffey/Dice-Dash/internal/logger"
)

// PlayerIdentity ties a connection to a stable player id. The id outlives
// the connection; the connection id does not.
type PlayerIdentity struct {
	ID   string
	Name string
}

// GameManager owns the room registry and routes connection-scoped requests
// to the right room. A connection maps to at most one room at a time, and
// both routing maps are cleared on disconnect.
type GameManager struct {
	cfg         *config.Config
	rooms       map[string]*GameRoom      // roomID -> room
	connRooms   map[string]string         // connectionID -> roomID
	connPlayers map[string]PlayerIdentity // connectionID -> identity
	identities  *IdentityStore
	newRng      func() *rand.Rand
	mu          sync.RWMutex
}

func NewGameManager(cfg *config.Config) *GameManager {
	return &GameManager{
		cfg:         cfg,
		rooms:       make(map[string]*GameRoom),
		connRooms:   make(map[string]string),
		connPlayers: make(map[string]PlayerIdentity),
		identities:  NewIdentityStore(),
		newRng: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// HandlePlayerJoin places a connection into a room: the requested room if
// given, otherwise any waiting room with capacity, otherwise a fresh room.
func (gm *GameManager) HandlePlayerJoin(conn Conn, playerName, requestedRoomID string) (*GameJoinedPayload, error) {
	if err := ValidatePlayerName(playerName); err != nil {
		return nil, err
	}
	name := SanitizePlayerName(playerName)

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.connRooms[conn.ID()]; exists {
		return nil, errors.New("ALREADY_IN_GAME: Already in a game")
	}

	var room *GameRoom
	if requestedRoomID == "" {
		room = gm.findAvailableRoomLocked()
		if room == nil {
			room = gm.createRoomLocked()
		}
	} else {
		roomID := NormalizeRoomCode(requestedRoomID)
		if err := ValidateRoomCode(roomID); err != nil {
			return nil, err
		}
		var exists bool
		room, exists = gm.rooms[roomID]
		if !exists {
			return nil, errors.New("ROOM_NOT_FOUND: Room not found")
		}
		if room.IsFull() {
			return nil, errors.New("ROOM_FULL: Room is full")
		}
	}

	playerID := gm.identities.GetOrCreate(name)
	player, err := room.AddPlayer(playerID, name, conn)
	if err != nil {
		return nil, err
	}

	gm.connRooms[conn.ID()] = room.ID
	gm.connPlayers[conn.ID()] = PlayerIdentity{ID: playerID, Name: name}

	logger.Log.Infow("player joined", "room", room.ID, "player", playerID, "name", name)

	return &GameJoinedPayload{
		PlayerID:  playerID,
		RoomID:    room.ID,
		GameState: room.GameState(),
		Player:    player.PublicData(),
	}, nil
}

func (gm *GameManager) findAvailableRoomLocked() *GameRoom {
	for _, room := range gm.rooms {
		if room.IsWaitingForPlayers() && !room.IsFull() {
			return room
		}
	}
	return nil
}

func (gm *GameManager) createRoomLocked() *GameRoom {
	used := make(map[string]bool, len(gm.rooms))
	for id := range gm.rooms {
		used[id] = true
	}

	roomID := GenerateRoomCode(used)
	room := NewGameRoom(roomID, gm.cfg.Game, gm.newRng())
	gm.rooms[roomID] = room

	logger.Log.Infow("room created", "room", roomID)
	return room
}

// HandleRollDice routes a roll request. Unlike chat/emote, an unmapped
// connection gets an explicit error.
func (gm *GameManager) HandleRollDice(connectionID string) error {
	room, identity, err := gm.resolve(connectionID)
	if err != nil {
		return err
	}
	return room.HandleRollDice(identity.ID)
}

func (gm *GameManager) HandleMinigameResult(connectionID string, result MinigameResultRequest) error {
	room, identity, err := gm.resolve(connectionID)
	if err != nil {
		return err
	}
	return room.HandleMinigameResult(identity.ID, result)
}

// HandleChatMessage is a no-op for connections not in a room.
func (gm *GameManager) HandleChatMessage(connectionID, message string) {
	room, identity, err := gm.resolve(connectionID)
	if err != nil {
		return
	}
	room.HandleChatMessage(identity.ID, message)
}

// HandleEmote is a no-op for connections not in a room.
func (gm *GameManager) HandleEmote(connectionID, emoteID string) {
	room, identity, err := gm.resolve(connectionID)
	if err != nil {
		return
	}
	room.HandleEmote(identity.ID, emoteID)
}

func (gm *GameManager) resolve(connectionID string) (*GameRoom, PlayerIdentity, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	roomID, exists := gm.connRooms[connectionID]
	if !exists {
		return nil, PlayerIdentity{}, errors.New("NOT_IN_GAME: Not in a game")
	}
	room, exists := gm.rooms[roomID]
	if !exists {
		return nil, PlayerIdentity{}, errors.New("ROOM_NOT_FOUND: Room not found")
	}
	return room, gm.connPlayers[connectionID], nil
}

// HandlePlayerLeave removes the player but keeps the connection open, so
// they may join another room afterwards.
func (gm *GameManager) HandlePlayerLeave(connectionID string) {
	gm.removeFromRoom(connectionID)
}

// HandlePlayerDisconnect cleans up all state for a dropped connection.
func (gm *GameManager) HandlePlayerDisconnect(connectionID string) {
	gm.removeFromRoom(connectionID)
}

func (gm *GameManager) removeFromRoom(connectionID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	roomID, exists := gm.connRooms[connectionID]
	if !exists {
		return
	}

	delete(gm.connRooms, connectionID)
	identity, hadIdentity := gm.connPlayers[connectionID]
	delete(gm.connPlayers, connectionID)

	room, exists := gm.rooms[roomID]
	if !exists {
		return
	}
	if hadIdentity {
		room.RemovePlayer(identity.ID)
	}

	if room.IsEmpty() {
		room.Close()
		delete(gm.rooms, roomID)
		logger.Log.Infow("removed empty room", "room", roomID)
	}
}

// CleanupIdleRooms closes rooms with no activity past timeout, kicking any
// remaining connections. Abandoned rooms must not accumulate.
func (gm *GameManager) CleanupIdleRooms(timeout time.Duration) int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	removed := 0
	for roomID, room := range gm.rooms {
		if time.Since(room.LastActivity()) <= timeout {
			continue
		}

		for connID, mappedRoomID := range gm.connRooms {
			if mappedRoomID != roomID {
				continue
			}
			delete(gm.connRooms, connID)
			delete(gm.connPlayers, connID)
		}

		room.Close()
		delete(gm.rooms, roomID)
		removed++
		logger.Log.Infow("closed idle room", "room", roomID)
	}
	return removed
}

func (gm *GameManager) GetRoom(roomID string) (*GameRoom, bool) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	room, exists := gm.rooms[roomID]
	return room, exists
}

func (gm *GameManager) RoomCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.rooms)
}

// RoomStats summarizes live rooms for the REST listing.
func (gm *GameManager) RoomStats() RoomListResponse {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	resp := RoomListResponse{
		Rooms:        make([]RoomInfo, 0, len(gm.rooms)),
		TotalRooms:   len(gm.rooms),
		TotalPlayers: len(gm.connRooms),
	}
	for roomID, room := range gm.rooms {
		resp.Rooms = append(resp.Rooms, RoomInfo{
			RoomID:      roomID,
			PlayerCount: room.PlayerCount(),
			MaxPlayers:  gm.cfg.Game.MaxPlayersPerRoom,
			State:       room.State(),
			CreatedAt:   room.CreatedAt().UnixMilli(),
		})
	}
	return resp
}

// Shutdown closes every room and notifies remaining connections.
func (gm *GameManager) Shutdown() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for roomID, room := range gm.rooms {
		room.Close()
		delete(gm.rooms, roomID)
	}
	gm.connRooms = make(map[string]string)
	gm.connPlayers = make(map[string]PlayerIdentity)
}
