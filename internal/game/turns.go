package game

import (
	"math/rand"
	"time"
)

type TurnPhase string

const (
	PhaseWaiting     TurnPhase = "waiting"
	PhaseRolling     TurnPhase = "rolling"
	PhaseMoving      TurnPhase = "moving"
	PhaseSpaceAction TurnPhase = "space_action"
	PhaseMinigame    TurnPhase = "minigame"
	PhaseEndTurn     TurnPhase = "end_turn"
)

type TurnRecord struct {
	PlayerID   string
	TurnNumber int
	Duration   time.Duration
	Timestamp  time.Time
}

const turnHistoryLimit = 100

// TurnManager tracks turn order, the current-player pointer, and a bounded
// turn history. Under the free-for-all roll policy it is bookkeeping only:
// rolls are gated by energy and player state, never by whose turn it is.
type TurnManager struct {
	order       []string
	index       int
	turnNumber  int
	phase       TurnPhase
	turnStarted time.Time
	history     []TurnRecord
}

func NewTurnManager() *TurnManager {
	return &TurnManager{phase: PhaseWaiting}
}

// InitializeOrder shuffles playerIDs into a turn order and starts turn 1.
func (tm *TurnManager) InitializeOrder(rng *rand.Rand, playerIDs []string) {
	tm.order = make([]string, len(playerIDs))
	copy(tm.order, playerIDs)
	rng.Shuffle(len(tm.order), func(i, j int) {
		tm.order[i], tm.order[j] = tm.order[j], tm.order[i]
	})
	tm.index = 0
	tm.turnNumber = 1
	tm.phase = PhaseWaiting
	tm.turnStarted = time.Now()
}

func (tm *TurnManager) CurrentPlayer() string {
	if len(tm.order) == 0 {
		return ""
	}
	return tm.order[tm.index]
}

func (tm *TurnManager) IsCurrentPlayer(playerID string) bool {
	return tm.CurrentPlayer() == playerID
}

// Advance records the finished turn and moves the pointer to the next
// player, skipping players the predicate reports disconnected. The skip is
// bounded by one full pass so a fully disconnected order cannot loop.
func (tm *TurnManager) Advance(disconnected func(playerID string) bool) string {
	if len(tm.order) == 0 {
		return ""
	}

	tm.record()
	tm.step()

	for attempts := 0; attempts < len(tm.order); attempts++ {
		if disconnected == nil || !disconnected(tm.CurrentPlayer()) {
			break
		}
		tm.step()
	}

	tm.phase = PhaseWaiting
	tm.turnStarted = time.Now()
	return tm.CurrentPlayer()
}

func (tm *TurnManager) step() {
	tm.index = (tm.index + 1) % len(tm.order)
	if tm.index == 0 {
		tm.turnNumber++
	}
}

func (tm *TurnManager) record() {
	if tm.turnStarted.IsZero() {
		return
	}
	tm.history = append(tm.history, TurnRecord{
		PlayerID:   tm.CurrentPlayer(),
		TurnNumber: tm.turnNumber,
		Duration:   time.Since(tm.turnStarted),
		Timestamp:  time.Now(),
	})
	if len(tm.history) > turnHistoryLimit {
		tm.history = tm.history[1:]
	}
}

func (tm *TurnManager) AddPlayer(playerID string) {
	for _, id := range tm.order {
		if id == playerID {
			return
		}
	}
	tm.order = append(tm.order, playerID)
}

func (tm *TurnManager) RemovePlayer(playerID string) {
	for i, id := range tm.order {
		if id == playerID {
			tm.order = append(tm.order[:i], tm.order[i+1:]...)
			if tm.index >= len(tm.order) && len(tm.order) > 0 {
				tm.index = 0
			}
			return
		}
	}
}

func (tm *TurnManager) Order() []string {
	order := make([]string, len(tm.order))
	copy(order, tm.order)
	return order
}

func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

func (tm *TurnManager) Phase() TurnPhase {
	return tm.phase
}

func (tm *TurnManager) SetPhase(phase TurnPhase) {
	tm.phase = phase
}

// TimedOut reports whether the current turn has run longer than timeout.
// The caller decides enforcement.
func (tm *TurnManager) TimedOut(timeout time.Duration) bool {
	return !tm.turnStarted.IsZero() && time.Since(tm.turnStarted) > timeout
}

func (tm *TurnManager) History() []TurnRecord {
	history := make([]TurnRecord, len(tm.history))
	copy(history, tm.history)
	return history
}

func (tm *TurnManager) Reset() {
	tm.order = nil
	tm.index = 0
	tm.turnNumber = 0
	tm.phase = PhaseWaiting
	tm.turnStarted = time.Time{}
	tm.history = nil
}
