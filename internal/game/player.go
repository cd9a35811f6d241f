package game

import (
	"time"
)

type PlayerState string

const (
	StateWaiting      PlayerState = "waiting"
	StateRolling      PlayerState = "rolling"
	StateMoving       PlayerState = "moving"
	StateInMinigame   PlayerState = "in_minigame"
	StateChoosing     PlayerState = "choosing"
	StateSpectating   PlayerState = "spectating"
	StateDisconnected PlayerState = "disconnected"
)

type PlayerStats struct {
	TurnsPlayed      int `json:"turnsPlayed"`
	SpacesMovedTotal int `json:"spacesMovedTotal"`
	CoinsEarned      int `json:"coinsEarned"`
	CoinsLost        int `json:"coinsLost"`
	MinigamesPlayed  int `json:"minigamesPlayed"`
	MinigamesWon     int `json:"minigamesWon"`
	StarsCollected   int `json:"starsCollected"`
}

// PublicPlayer is the player view safe to send to every client.
type PublicPlayer struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Position       int         `json:"position"`
	Coins          int         `json:"coins"`
	Energy         int         `json:"energy"`
	State          PlayerState `json:"state"`
	IsDisconnected bool        `json:"isDisconnected"`
	Stats          PlayerStats `json:"stats"`
}

type PlayerConfig struct {
	StartingCoins  int
	StartingGems   int
	StartingEnergy int
	MaxEnergy      int
}

// Player is one player's mutable state. It is owned by exactly one room for
// its lifetime and mutated only through room-mediated operations.
type Player struct {
	ID             string
	Name           string
	Position       int
	Coins          int
	Gems           int
	Energy         int
	MaxEnergy      int
	State          PlayerState
	IsDisconnected bool
	JoinedAt       time.Time
	LastActivityAt time.Time
	Stats          PlayerStats
}

func NewPlayer(id, name string, startPosition int, cfg PlayerConfig) *Player {
	now := time.Now()
	return &Player{
		ID:             id,
		Name:           name,
		Position:       startPosition,
		Coins:          cfg.StartingCoins,
		Gems:           cfg.StartingGems,
		Energy:         cfg.StartingEnergy,
		MaxEnergy:      cfg.MaxEnergy,
		State:          StateWaiting,
		JoinedAt:       now,
		LastActivityAt: now,
	}
}

// MoveTo sets the player's position and accumulates the distance actually
// travelled. Movement is always forward around the circular board, so the
// caller passes the number of spaces moved rather than having us guess it
// from the wrapped positions.
func (p *Player) MoveTo(position, spacesMoved int) {
	p.Position = position
	p.Stats.SpacesMovedTotal += spacesMoved
	p.touch()
}

// AddCoins applies a coin delta, clamping the balance at zero. Earned and
// lost amounts are tracked separately for stats.
func (p *Player) AddCoins(amount int) {
	p.Coins += amount
	if p.Coins < 0 {
		p.Coins = 0
	}
	if amount > 0 {
		p.Stats.CoinsEarned += amount
	} else {
		p.Stats.CoinsLost += -amount
	}
	p.touch()
}

func (p *Player) AddGems(amount int) {
	p.Gems += amount
	if p.Gems < 0 {
		p.Gems = 0
	}
	p.touch()
}

// AddEnergy adds energy, clamped at MaxEnergy.
func (p *Player) AddEnergy(amount int) {
	p.Energy += amount
	if p.Energy > p.MaxEnergy {
		p.Energy = p.MaxEnergy
	}
	p.touch()
}

// UseEnergy spends cost energy if available. On failure nothing mutates and
// the caller reports insufficient energy to the requester.
func (p *Player) UseEnergy(cost int) bool {
	if p.Energy < cost {
		return false
	}
	p.Energy -= cost
	p.Stats.TurnsPlayed++
	p.touch()
	return true
}

func (p *Player) HasEnergy(cost int) bool {
	return p.Energy >= cost
}

func (p *Player) SetState(state PlayerState) {
	p.State = state
	p.touch()
}

func (p *Player) SetDisconnected() {
	p.IsDisconnected = true
	p.State = StateDisconnected
}

func (p *Player) Reconnect() {
	p.IsDisconnected = false
	p.State = StateWaiting
	p.touch()
}

func (p *Player) RecordMinigame(won bool) {
	p.Stats.MinigamesPlayed++
	if won {
		p.Stats.MinigamesWon++
	}
}

func (p *Player) CollectStar() {
	p.Stats.StarsCollected++
}

func (p *Player) Inactive(threshold time.Duration) bool {
	return time.Since(p.LastActivityAt) > threshold
}

func (p *Player) PublicData() PublicPlayer {
	return PublicPlayer{
		ID:             p.ID,
		Name:           p.Name,
		Position:       p.Position,
		Coins:          p.Coins,
		Energy:         p.Energy,
		State:          p.State,
		IsDisconnected: p.IsDisconnected,
		Stats:          p.Stats,
	}
}

func (p *Player) touch() {
	p.LastActivityAt = time.Now()
}
