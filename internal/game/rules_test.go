package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wyattmchalffey/Dice-Dash/internal/board"
)

var testRewards = Rewards{
	BlueSpaceReward: 3,
	RedSpacePenalty: 3,
	StarSpaceReward: 20,
}

func TestRollDiceBounds(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		result := RollDice(rng, 1)

		assert.Len(result.Rolls, 1)
		assert.GreaterOrEqual(result.Rolls[0], MinDiceValue)
		assert.LessOrEqual(result.Rolls[0], MaxDiceValue)
		assert.Equal(result.Rolls[0], result.Total)
	}
}

func TestRollDiceTotalIsSum(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		result := RollDice(rng, 3)

		assert.Len(result.Rolls, 3)
		sum := 0
		for _, roll := range result.Rolls {
			assert.GreaterOrEqual(roll, MinDiceValue)
			assert.LessOrEqual(roll, MaxDiceValue)
			sum += roll
		}
		assert.Equal(sum, result.Total)
	}
}

func TestSpaceActionBlue(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	result := SpaceAction(rng, board.Blue, testRewards)

	assert.Equal(t, 3, result.Coins)
	assert.Empty(t, result.Action)
}

func TestSpaceActionRed(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	result := SpaceAction(rng, board.Red, testRewards)

	assert.Equal(t, -3, result.Coins)
	assert.Empty(t, result.Action)
}

func TestSpaceActionStar(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	result := SpaceAction(rng, board.Star, testRewards)

	assert.Equal(t, 20, result.Coins)
	assert.Empty(t, result.Action)
}

func TestSpaceActionMinigame(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	result := SpaceAction(rng, board.Minigame, testRewards)

	assert.Equal(t, 0, result.Coins)
	assert.Equal(t, ActionStartMinigame, result.Action)
}

func TestSpaceActionShopAndWarp(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, ActionOpenShop, SpaceAction(rng, board.Shop, testRewards).Action)
	assert.Equal(t, ActionWarp, SpaceAction(rng, board.Warp, testRewards).Action)
}

func TestSpaceActionStartIsNeutral(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	result := SpaceAction(rng, board.Start, testRewards)

	assert.Equal(t, 0, result.Coins)
	assert.Equal(t, 0, result.Energy)
	assert.Empty(t, result.Action)
}

func TestPickRandomEventDrawsFromTable(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(3))

	valid := make(map[string]bool, len(RandomEvents))
	for _, e := range RandomEvents {
		valid[e.ID] = true
	}

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		event := PickRandomEvent(rng)
		assert.True(valid[event.ID], "unknown event %q", event.ID)
		seen[event.ID] = true
	}

	// 500 draws over a table whose rarest entry has weight 5/100 hits
	// every outcome.
	assert.Equal(len(RandomEvents), len(seen))
}

func TestEventWeightsArePositive(t *testing.T) {
	for _, e := range RandomEvents {
		assert.Greater(t, e.Weight, 0, "event %s", e.ID)
	}
}

func TestPickMinigame(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 50; i++ {
		kind := PickMinigame(rng)
		assert.Contains(t, MinigameKinds, kind)
	}
}

func TestMinigameReward(t *testing.T) {
	assert := assert.New(t)

	// Base reward only.
	assert.Equal(10, MinigameReward(10, 50, 20000))
	// High score bonus.
	assert.Equal(15, MinigameReward(10, 150, 20000))
	// Both score bonuses.
	assert.Equal(25, MinigameReward(10, 250, 20000))
	// Speed bonus stacks on top.
	assert.Equal(30, MinigameReward(10, 250, 9000))
	assert.Equal(15, MinigameReward(10, 50, 5000))
	// Thresholds are strict.
	assert.Equal(10, MinigameReward(10, 100, 10000))
}

func TestBoardDistance(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, BoardDistance(5, 5, 32))
	assert.Equal(3, BoardDistance(0, 3, 32))
	assert.Equal(3, BoardDistance(3, 0, 32))
	// Shortest way around the circle.
	assert.Equal(4, BoardDistance(30, 2, 32))
	assert.Equal(16, BoardDistance(0, 16, 32))
}
