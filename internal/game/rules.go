package game

import (
	"fmt"
	"math/rand"

	"github.com/wyattmchalffey/Dice-Dash/internal/board"
)

const (
	MinDiceValue = 1
	MaxDiceValue = 6
)

type DiceResult struct {
	Rolls []int `json:"rolls"`
	Total int   `json:"total"`
}

// RollDice rolls numDice dice uniformly in [MinDiceValue, MaxDiceValue].
func RollDice(rng *rand.Rand, numDice int) DiceResult {
	result := DiceResult{Rolls: make([]int, 0, numDice)}
	for i := 0; i < numDice; i++ {
		roll := rng.Intn(MaxDiceValue-MinDiceValue+1) + MinDiceValue
		result.Rolls = append(result.Rolls, roll)
		result.Total += roll
	}
	return result
}

// Follow-up actions a space effect can request from the room.
const (
	ActionStartMinigame = "start_minigame"
	ActionOpenShop      = "open_shop"
	ActionWarp          = "warp"
	ActionTeleport      = "teleport"
)

// ActionResult is the pure effect of landing on a space. The room applies
// the deltas and dispatches the follow-up action.
type ActionResult struct {
	Coins   int    `json:"coins"`
	Energy  int    `json:"energy"`
	Gems    int    `json:"gems"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// Rewards carries the configured space payouts into the rules.
type Rewards struct {
	BlueSpaceReward int
	RedSpacePenalty int
	StarSpaceReward int
}

// SpaceAction computes the effect of landing on a space of the given type.
// It never mutates player state.
func SpaceAction(rng *rand.Rand, spaceType board.SpaceType, rw Rewards) ActionResult {
	var result ActionResult

	switch spaceType {
	case board.Blue:
		result.Coins = rw.BlueSpaceReward
		result.Message = fmt.Sprintf("+%d coins!", rw.BlueSpaceReward)
	case board.Red:
		result.Coins = -rw.RedSpacePenalty
		result.Message = fmt.Sprintf("-%d coins!", rw.RedSpacePenalty)
	case board.Star:
		result.Coins = rw.StarSpaceReward
		result.Message = fmt.Sprintf("Star collected! +%d coins!", rw.StarSpaceReward)
	case board.Minigame:
		result.Action = ActionStartMinigame
		result.Message = "Time for a minigame!"
	case board.Event:
		event := PickRandomEvent(rng)
		result.Coins = event.Coins
		result.Energy = event.Energy
		if event.Teleport {
			result.Action = ActionTeleport
		}
		result.Message = event.Description
	case board.Shop:
		result.Action = ActionOpenShop
		result.Message = "Welcome to the shop!"
	case board.Warp:
		result.Action = ActionWarp
		result.Message = "Warping to a new location!"
	}

	return result
}

type RandomEvent struct {
	ID          string
	Name        string
	Description string
	Coins       int
	Energy      int
	Teleport    bool
	Weight      int
}

var RandomEvents = []RandomEvent{
	{ID: "treasure", Name: "Found Treasure!", Description: "You discovered a hidden treasure chest!", Coins: 5, Weight: 25},
	{ID: "lightning", Name: "Lightning Strike!", Description: "You were struck by lightning!", Coins: -5, Weight: 20},
	{ID: "lucky_day", Name: "Lucky Day!", Description: "Today is your lucky day!", Coins: 10, Weight: 15},
	{ID: "pickpocket", Name: "Pickpocket!", Description: "A thief stole some of your coins!", Coins: -3, Weight: 25},
	{ID: "energy_boost", Name: "Energy Drink!", Description: "You found an energy drink!", Energy: 1, Weight: 10},
	{ID: "teleport", Name: "Magic Portal!", Description: "A magic portal appears!", Teleport: true, Weight: 5},
}

func totalEventWeight() int {
	total := 0
	for _, e := range RandomEvents {
		total += e.Weight
	}
	return total
}

// PickRandomEvent draws one event from the weighted outcome table.
func PickRandomEvent(rng *rand.Rand) RandomEvent {
	remaining := rng.Intn(totalEventWeight())
	for _, event := range RandomEvents {
		remaining -= event.Weight
		if remaining < 0 {
			return event
		}
	}
	return RandomEvents[0]
}

// MinigameKinds are the configured minigame variants. The server treats
// their rulesets as a black box; it only dispatches a kind and scores the
// reported result.
var MinigameKinds = []string{"memory_match", "fruit_slash", "quick_tap"}

func PickMinigame(rng *rand.Rand) string {
	return MinigameKinds[rng.Intn(len(MinigameKinds))]
}

// MinigameReward computes the coin reward for a completed minigame: the base
// reward plus bonuses for high scores and quick completion. timeElapsedMs is
// the client-reported play time in milliseconds.
func MinigameReward(baseReward, score, timeElapsedMs int) int {
	reward := baseReward
	if score > 100 {
		reward += 5
	}
	if score > 200 {
		reward += 10
	}
	if timeElapsedMs < 10000 {
		reward += 5
	}
	return reward
}

// BoardDistance is the shortest circular distance between two positions.
func BoardDistance(a, b, size int) int {
	forward := (b - a + size) % size
	backward := (a - b + size) % size
	return min(forward, backward)
}
