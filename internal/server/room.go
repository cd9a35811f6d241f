package server

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/wyattmchalffey/Dice-Dash/internal/board"
	"github.com/wyattmchalffey/Dice-Dash/internal/config"
	"github.com/wyattmchalffey/Dice-Dash/internal/game"
	"github.com/wyattmchalffey/Dice-Dash/internal/logger"
)

type RoomState string

const (
	RoomWaitingForPlayers RoomState = "waiting_for_players"
	RoomInProgress        RoomState = "in_progress"
	RoomPaused            RoomState = "paused"
	RoomFinished          RoomState = "finished"
)

// Extra slack past the minigame time limit before the server force-resolves
// a stuck minigame, covering result delivery latency.
const minigameGrace = 5 * time.Second

// GameRoom owns one board, one player set, and the roll -> move -> space
// action -> (minigame) pipeline. All mutation happens under mu; delayed
// continuations (movement pacing, minigame timeout) re-acquire mu and
// re-check that the room is still open and the player still present before
// touching anything.
//
// Roll policy is free-for-all: any player may roll whenever they have the
// energy and are not already mid-move or mid-minigame. The turn manager is
// round bookkeeping for state snapshots and stats, not an access gate.
type GameRoom struct {
	ID string

	mu             sync.Mutex
	cfg            config.GameConfig
	players        map[string]*game.Player
	conns          map[string]Conn // playerID -> live connection
	board          *board.Board
	turns          *game.TurnManager
	state          RoomState
	rng            *rand.Rand
	createdAt      time.Time
	lastActivityAt time.Time
	closed         bool
	stopRegen      chan struct{}
}

func NewGameRoom(id string, cfg config.GameConfig, rng *rand.Rand) *GameRoom {
	now := time.Now()
	r := &GameRoom{
		ID:             id,
		cfg:            cfg,
		players:        make(map[string]*game.Player),
		conns:          make(map[string]Conn),
		board:          board.New(rng),
		turns:          game.NewTurnManager(),
		state:          RoomWaitingForPlayers,
		rng:            rng,
		createdAt:      now,
		lastActivityAt: now,
		stopRegen:      make(chan struct{}),
	}

	go r.regenLoop()
	return r
}

// AddPlayer creates a player at the board's start position and announces
// the join. Reaching the start threshold transitions the room to
// in_progress exactly once.
func (r *GameRoom) AddPlayer(playerID, name string, conn Conn) (*game.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, errors.New("ROOM_NOT_FOUND: Game room is closed")
	}
	if len(r.players) >= r.cfg.MaxPlayersPerRoom {
		return nil, errors.New("ROOM_FULL: Game room is full")
	}
	if _, exists := r.players[playerID]; exists {
		return nil, errors.New("NAME_TAKEN: That name is already playing in this room")
	}

	player := game.NewPlayer(playerID, name, r.board.StartPosition(), game.PlayerConfig{
		StartingCoins:  r.cfg.StartingCoins,
		StartingGems:   r.cfg.StartingGems,
		StartingEnergy: r.cfg.StartingEnergy,
		MaxEnergy:      r.cfg.MaxEnergy,
	})
	r.players[playerID] = player
	r.conns[playerID] = conn
	r.turns.AddPlayer(playerID)

	r.broadcastLocked(EventPlayerJoined, PlayerJoinedPayload{
		RoomID:       r.ID,
		Player:       player.PublicData(),
		TotalPlayers: len(r.players),
	})

	if len(r.players) >= r.cfg.MinPlayersToStart && r.state == RoomWaitingForPlayers {
		r.startGameLocked()
	}

	r.touchLocked()
	return player, nil
}

func (r *GameRoom) startGameLocked() {
	r.state = RoomInProgress

	playerIDs := make([]string, 0, len(r.players))
	for id := range r.players {
		playerIDs = append(playerIDs, id)
	}
	r.turns.InitializeOrder(r.rng, playerIDs)

	r.broadcastLocked(EventGameStateUpdate, GameStateUpdatePayload{
		RoomID:        r.ID,
		State:         r.state,
		CurrentPlayer: r.turns.CurrentPlayer(),
	})

	logger.Log.Infow("game started", "room", r.ID, "players", len(r.players))
}

// RemovePlayer drops a player after a leave or disconnect. The player set
// shrinks by exactly one, keeping adds-minus-removes equal to the count.
func (r *GameRoom) RemovePlayer(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, exists := r.players[playerID]
	if !exists {
		return
	}

	player.SetDisconnected()
	delete(r.conns, playerID)
	delete(r.players, playerID)
	r.turns.RemovePlayer(playerID)

	r.broadcastLocked(EventPlayerLeft, PlayerLeftPayload{
		RoomID:     r.ID,
		PlayerID:   playerID,
		PlayerName: player.Name,
	})

	r.touchLocked()
}

// HandleRollDice validates and runs one roll for playerID. Validation
// failures mutate nothing and surface to the requester only.
func (r *GameRoom) HandleRollDice(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, exists := r.players[playerID]
	if !exists {
		return errors.New("PLAYER_NOT_FOUND: Player not in this room")
	}
	if r.state != RoomInProgress {
		return errors.New("GAME_NOT_STARTED: Waiting for more players")
	}
	// A player mid-move or mid-minigame cannot start a second pipeline.
	if player.State != game.StateWaiting {
		return errors.New("INVALID_ACTION: Cannot roll in current state")
	}
	if !player.HasEnergy(r.cfg.EnergyCostPerRoll) {
		return errors.New("INSUFFICIENT_ENERGY: Not enough energy to roll")
	}

	player.UseEnergy(r.cfg.EnergyCostPerRoll)
	r.broadcastLocked(EventEnergyUpdated, EnergyUpdatedPayload{
		RoomID:        r.ID,
		PlayerID:      playerID,
		CurrentEnergy: player.Energy,
		MaxEnergy:     player.MaxEnergy,
	})

	diceResult := game.RollDice(r.rng, 1)
	r.broadcastLocked(EventDiceRolled, DiceRolledPayload{
		RoomID:     r.ID,
		PlayerID:   playerID,
		PlayerName: player.Name,
		DiceResult: diceResult,
	})

	r.movePlayerLocked(player, diceResult.Total)
	r.touchLocked()
	return nil
}

// movePlayerLocked starts the movement stage: position updates immediately,
// the landed space resolves after a pacing delay proportional to the
// distance so clients can animate in step with the server.
func (r *GameRoom) movePlayerLocked(player *game.Player, spaces int) {
	from := player.Position
	to := r.board.NewPosition(from, spaces)

	player.MoveTo(to, spaces)
	player.SetState(game.StateMoving)
	r.turns.SetPhase(game.PhaseMoving)

	r.broadcastLocked(EventPlayerMoving, PlayerMovingPayload{
		RoomID:   r.ID,
		PlayerID: player.ID,
		From:     from,
		To:       to,
		Spaces:   spaces,
	})

	delay := time.Duration(spaces) * r.cfg.MoveAnimationDuration
	playerID := player.ID
	time.AfterFunc(delay, func() {
		r.resolveSpace(playerID, to)
	})
}

// resolveSpace is the delayed continuation of a move. The room may have
// been torn down or the player may have left during the pacing wait.
func (r *GameRoom) resolveSpace(playerID string, position int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	player, exists := r.players[playerID]
	if !exists || player.IsDisconnected {
		return
	}

	r.executeSpaceActionLocked(player, position)
}

func (r *GameRoom) executeSpaceActionLocked(player *game.Player, position int) {
	space := r.board.Space(position)
	if space == nil {
		logger.Log.Errorw("space action at invalid position", "room", r.ID, "position", position)
		r.finishActionLocked(player)
		return
	}

	r.turns.SetPhase(game.PhaseSpaceAction)
	spaceType := space.Type
	result := game.SpaceAction(r.rng, spaceType, game.Rewards{
		BlueSpaceReward: r.cfg.BlueSpaceReward,
		RedSpacePenalty: r.cfg.RedSpacePenalty,
		StarSpaceReward: r.cfg.StarSpaceReward,
	})

	if result.Coins != 0 {
		player.AddCoins(result.Coins)
	}
	if result.Energy != 0 {
		player.AddEnergy(result.Energy)
	}
	if result.Gems != 0 {
		player.AddGems(result.Gems)
	}

	payload := SpaceActionPayload{
		RoomID:    r.ID,
		PlayerID:  player.ID,
		SpaceType: spaceType,
		Result:    result,
	}

	if spaceType == board.Star {
		player.CollectStar()
		if newPos, ok := r.board.RelocateStar(position); ok {
			payload.StarMovedTo = &newPos
		} else {
			// No eligible BLUE space. One fewer star this round.
			logger.Log.Warnw("star relocation failed", "room", r.ID, "from", position)
		}
	}

	r.broadcastLocked(EventSpaceAction, payload)

	switch result.Action {
	case game.ActionStartMinigame:
		r.startMinigameLocked(player)
	default:
		// SHOP, WARP and EVENT teleports are placeholder hooks for now.
		r.finishActionLocked(player)
	}

	r.touchLocked()
}

// finishActionLocked returns the player to the rollable state and advances
// the bookkeeping turn pointer.
func (r *GameRoom) finishActionLocked(player *game.Player) {
	player.SetState(game.StateWaiting)
	r.turns.SetPhase(game.PhaseEndTurn)
	r.turns.Advance(func(id string) bool {
		p, ok := r.players[id]
		return !ok || p.IsDisconnected
	})
}

func (r *GameRoom) startMinigameLocked(player *game.Player) {
	player.SetState(game.StateInMinigame)
	r.turns.SetPhase(game.PhaseMinigame)

	kind := game.PickMinigame(r.rng)
	timeLimit := r.cfg.MinigameTimeLimit

	if conn := r.conns[player.ID]; conn != nil {
		err := conn.Send(EventMinigameStart, MinigameStartPayload{
			RoomID:    r.ID,
			Type:      kind,
			TimeLimit: int(timeLimit.Milliseconds()),
		})
		if err != nil {
			logger.Log.Warnw("failed to send minigame start", "room", r.ID, "player", player.ID, "error", err)
		}
	}

	playerID := player.ID
	time.AfterFunc(timeLimit+minigameGrace, func() {
		r.minigameTimeout(playerID)
	})
}

// minigameTimeout force-resolves a minigame whose result never arrived so
// the player is not stuck in_minigame forever. A result that already came
// in reset the state, making this a no-op.
func (r *GameRoom) minigameTimeout(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	player, exists := r.players[playerID]
	if !exists || player.State != game.StateInMinigame {
		return
	}

	player.RecordMinigame(false)
	player.SetState(game.StateWaiting)

	r.broadcastLocked(EventMinigameEnded, MinigameEndedPayload{
		RoomID:     r.ID,
		PlayerID:   playerID,
		PlayerName: player.Name,
		Score:      0,
		Reward:     0,
	})
	r.finishActionLocked(player)
}

// HandleMinigameResult validates and scores a reported minigame result.
func (r *GameRoom) HandleMinigameResult(playerID string, result MinigameResultRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, exists := r.players[playerID]
	if !exists {
		return errors.New("PLAYER_NOT_FOUND: Player not in this room")
	}
	if player.State != game.StateInMinigame {
		return errors.New("INVALID_ACTION: No minigame in progress")
	}
	if result.Score < 0 || result.TimeElapsed < 0 {
		return errors.New("INVALID_RESULT: Malformed minigame result")
	}

	won := result.Completed && result.Score > 0
	reward := 0
	if won {
		reward = game.MinigameReward(r.cfg.MinigameWinReward, result.Score, result.TimeElapsed)
	}

	player.AddCoins(reward)
	player.RecordMinigame(won)
	player.SetState(game.StateWaiting)

	r.broadcastLocked(EventMinigameEnded, MinigameEndedPayload{
		RoomID:     r.ID,
		PlayerID:   playerID,
		PlayerName: player.Name,
		Score:      result.Score,
		Reward:     reward,
	})

	r.finishActionLocked(player)
	r.touchLocked()
	return nil
}

func (r *GameRoom) HandleChatMessage(playerID, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, exists := r.players[playerID]
	if !exists {
		return
	}
	if err := ValidateChatMessage(message, r.cfg.ChatMaxLength); err != nil {
		return
	}

	r.broadcastLocked(EventChatMessage, ChatMessagePayload{
		RoomID:     r.ID,
		PlayerID:   playerID,
		PlayerName: player.Name,
		Message:    SanitizeChatMessage(message, r.cfg.ChatMaxLength),
		Timestamp:  time.Now().UnixMilli(),
	})
	r.touchLocked()
}

func (r *GameRoom) HandleEmote(playerID, emoteID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, exists := r.players[playerID]
	if !exists {
		return
	}

	r.broadcastLocked(EventEmoteSent, EmotePayload{
		RoomID:     r.ID,
		PlayerID:   playerID,
		PlayerName: player.Name,
		EmoteID:    emoteID,
		Position:   player.Position,
	})
	r.touchLocked()
}

// regenLoop adds one energy per interval to every player below max and
// notifies only that player's connection. It is tied 1:1 to room lifetime.
func (r *GameRoom) regenLoop() {
	ticker := time.NewTicker(r.cfg.EnergyRegenInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.regenTick()
		case <-r.stopRegen:
			return
		}
	}
}

func (r *GameRoom) regenTick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	for playerID, player := range r.players {
		if player.Energy >= player.MaxEnergy {
			continue
		}
		player.AddEnergy(1)

		conn := r.conns[playerID]
		if conn == nil {
			continue
		}
		err := conn.Send(EventEnergyRegenerated, EnergyRegeneratedPayload{
			RoomID:        r.ID,
			CurrentEnergy: player.Energy,
			MaxEnergy:     player.MaxEnergy,
		})
		if err != nil {
			logger.Log.Debugw("energy regen send failed", "room", r.ID, "player", playerID, "error", err)
		}
	}
}

// broadcastLocked fans an event out to every connection in the room. A dead
// recipient is logged and skipped, never fatal.
func (r *GameRoom) broadcastLocked(event string, payload interface{}) {
	for playerID, conn := range r.conns {
		if err := conn.Send(event, payload); err != nil {
			logger.Log.Warnw("broadcast failed", "room", r.ID, "player", playerID, "event", event, "error", err)
		}
	}
}

// GameState snapshots the room for outbound sync.
func (r *GameRoom) GameState() GameStatePayload {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]game.PublicPlayer, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p.PublicData())
	}

	return GameStatePayload{
		RoomID:        r.ID,
		State:         r.state,
		Players:       players,
		CurrentPlayer: r.turns.CurrentPlayer(),
		TurnNumber:    r.turns.TurnNumber(),
		Board:         r.board.Snapshot(),
	}
}

func (r *GameRoom) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (r *GameRoom) IsFull() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players) >= r.cfg.MaxPlayersPerRoom
}

func (r *GameRoom) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players) == 0
}

func (r *GameRoom) IsWaitingForPlayers() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == RoomWaitingForPlayers
}

func (r *GameRoom) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *GameRoom) CreatedAt() time.Time {
	return r.createdAt
}

func (r *GameRoom) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivityAt
}

// Close stops the regen loop and marks the room disposed so any in-flight
// delayed continuation no-ops instead of mutating freed state.
func (r *GameRoom) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	close(r.stopRegen)
}

func (r *GameRoom) touchLocked() {
	r.lastActivityAt = time.Now()
}
