package server

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/wyattmchalffey/Dice-Dash/internal/config"
)

// fakeConn records everything sent to it so tests can assert on the exact
// event traffic a client would see.
type fakeConn struct {
	id string

	mu        sync.Mutex
	sent      []sentEvent
	closed    bool
	failSends bool
}

type sentEvent struct {
	Event   string
	Payload interface{}
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string {
	return c.id
}

func (c *fakeConn) Send(event string, payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSends {
		return errors.New("connection gone")
	}
	c.sent = append(c.sent, sentEvent{Event: event, Payload: payload})
	return nil
}

func (c *fakeConn) Close(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// eventsOf returns every recorded payload for the named event.
func (c *fakeConn) eventsOf(event string) []sentEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	matches := []sentEvent{}
	for _, e := range c.sent {
		if e.Event == event {
			matches = append(matches, e)
		}
	}
	return matches
}

func (c *fakeConn) countOf(event string) int {
	return len(c.eventsOf(event))
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = nil
}

// testGameConfig shrinks the pacing delays so delayed continuations resolve
// within a test run. Regen is kept long; regen-specific tests override it.
func testGameConfig() config.GameConfig {
	return config.GameConfig{
		MinPlayersToStart:     2,
		MaxPlayersPerRoom:     8,
		StartingCoins:         10,
		StartingGems:          0,
		StartingEnergy:        5,
		MaxEnergy:             5,
		EnergyCostPerRoll:     1,
		EnergyRegenInterval:   time.Hour,
		MoveAnimationDuration: time.Millisecond,
		MinigameTimeLimit:     30 * time.Second,
		BlueSpaceReward:       3,
		RedSpacePenalty:       3,
		StarSpaceReward:       20,
		MinigameWinReward:     10,
		ChatMaxLength:         200,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Address:            ":0",
			RateLimitPerSecond: 10,
			IdleRoomTimeout:    30 * time.Minute,
		},
		Game: testGameConfig(),
	}
}

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// newTestRoom builds a seeded room. Callers must Close it.
func newTestRoom(cfg config.GameConfig) *GameRoom {
	return NewGameRoom("TESTRM", cfg, testRng())
}
