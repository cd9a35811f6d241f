package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestTurnManager(playerIDs ...string) *TurnManager {
	tm := NewTurnManager()
	tm.InitializeOrder(rand.New(rand.NewSource(9)), playerIDs)
	return tm
}

func TestInitializeOrder(t *testing.T) {
	assert := assert.New(t)
	tm := newTestTurnManager("a", "b", "c")

	assert.ElementsMatch([]string{"a", "b", "c"}, tm.Order())
	assert.Equal(1, tm.TurnNumber())
	assert.Equal(PhaseWaiting, tm.Phase())
	assert.Contains([]string{"a", "b", "c"}, tm.CurrentPlayer())
}

func TestCurrentPlayerEmptyOrder(t *testing.T) {
	tm := NewTurnManager()

	assert.Equal(t, "", tm.CurrentPlayer())
	assert.Equal(t, "", tm.Advance(nil))
}

func TestAdvanceCyclesAndIncrementsTurnNumber(t *testing.T) {
	assert := assert.New(t)
	tm := newTestTurnManager("a", "b", "c")

	seen := map[string]int{}
	for i := 0; i < 3; i++ {
		seen[tm.CurrentPlayer()]++
		tm.Advance(nil)
	}

	// One full pass visits every player exactly once and starts turn 2.
	assert.Equal(map[string]int{"a": 1, "b": 1, "c": 1}, seen)
	assert.Equal(2, tm.TurnNumber())
}

func TestAdvanceSkipsDisconnected(t *testing.T) {
	assert := assert.New(t)
	tm := newTestTurnManager("a", "b", "c")

	skip := tm.Order()[1]
	next := tm.Advance(func(id string) bool { return id == skip })

	assert.NotEqual(skip, next)
	assert.Equal(tm.Order()[2], next)
}

func TestAdvanceAllDisconnectedTerminates(t *testing.T) {
	tm := newTestTurnManager("a", "b")

	// The skip pass is bounded, so this returns instead of looping.
	next := tm.Advance(func(string) bool { return true })

	assert.Contains(t, []string{"a", "b"}, next)
}

func TestAddPlayerDeduplicates(t *testing.T) {
	assert := assert.New(t)
	tm := newTestTurnManager("a", "b")

	tm.AddPlayer("c")
	tm.AddPlayer("c")

	assert.Len(tm.Order(), 3)
	assert.Contains(tm.Order(), "c")
}

func TestRemovePlayerAdjustsIndex(t *testing.T) {
	assert := assert.New(t)
	tm := newTestTurnManager("a", "b", "c")

	tm.Advance(nil)
	tm.Advance(nil)
	last := tm.CurrentPlayer()

	tm.RemovePlayer(last)

	assert.Len(tm.Order(), 2)
	assert.NotContains(tm.Order(), last)
	// Pointer wrapped back into range.
	assert.Contains(tm.Order(), tm.CurrentPlayer())
}

func TestRemoveUnknownPlayerIsNoop(t *testing.T) {
	tm := newTestTurnManager("a", "b")

	tm.RemovePlayer("ghost")

	assert.Len(t, tm.Order(), 2)
}

func TestHistoryIsBounded(t *testing.T) {
	tm := newTestTurnManager("a", "b")

	for i := 0; i < 250; i++ {
		tm.Advance(nil)
	}

	assert.LessOrEqual(t, len(tm.History()), 100)
}

func TestTimedOut(t *testing.T) {
	assert := assert.New(t)
	tm := NewTurnManager()

	// No turn started yet.
	assert.False(tm.TimedOut(time.Nanosecond))

	tm.InitializeOrder(rand.New(rand.NewSource(1)), []string{"a"})
	assert.False(tm.TimedOut(time.Hour))

	time.Sleep(2 * time.Millisecond)
	assert.True(tm.TimedOut(time.Millisecond))
}

func TestReset(t *testing.T) {
	assert := assert.New(t)
	tm := newTestTurnManager("a", "b")
	tm.Advance(nil)

	tm.Reset()

	assert.Empty(tm.Order())
	assert.Equal(0, tm.TurnNumber())
	assert.Empty(tm.History())
	assert.Equal("", tm.CurrentPlayer())
}
