package board

import (
	"math/rand"
)

// SpaceType determines the effect of landing on a space.
type SpaceType string

const (
	Start    SpaceType = "start"
	Blue     SpaceType = "blue"
	Red      SpaceType = "red"
	Minigame SpaceType = "minigame"
	Event    SpaceType = "event"
	Star     SpaceType = "star"
	Shop     SpaceType = "shop"
	Warp     SpaceType = "warp"
)

type Space struct {
	ID   int       `json:"id"`
	Type SpaceType `json:"type"`
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
}

// Snapshot is the serializable view of the board sent to clients on join.
type Snapshot struct {
	Spaces        []Space `json:"spaces"`
	Size          int     `json:"size"`
	StarPositions []int   `json:"starPositions"`
}

// Board is the circular board topology. Space ids are dense 0..N-1 and all
// movement arithmetic is modulo N. Star spaces relocate at runtime; the rest
// of the layout is fixed.
type Board struct {
	spaces []Space
	stars  map[int]bool
	rng    *rand.Rand
}

const relocateAttempts = 100

// New builds the canonical 32-space demo board.
func New(rng *rand.Rand) *Board {
	b := &Board{
		spaces: generateSpaces(),
		stars:  make(map[int]bool),
		rng:    rng,
	}
	for _, s := range b.spaces {
		if s.Type == Star {
			b.stars[s.ID] = true
		}
	}
	return b
}

func generateSpaces() []Space {
	positions := [][2]float64{
		// Bottom row (left to right)
		{100, 500}, {175, 500}, {250, 500}, {325, 500},
		{400, 500}, {475, 500}, {550, 500}, {625, 500},
		// Right column (bottom to top)
		{700, 500}, {700, 425}, {700, 350}, {700, 275},
		{700, 200}, {700, 125}, {700, 50},
		// Top row (right to left)
		{625, 50}, {550, 50}, {475, 50}, {400, 50},
		{325, 50}, {250, 50}, {175, 50}, {100, 50},
		// Left column (top to bottom)
		{100, 125}, {100, 200}, {100, 275}, {100, 350},
		{100, 425},
		// Inner spaces
		{275, 275}, {400, 275}, {525, 275}, {400, 350},
	}

	types := []SpaceType{
		Start, Blue, Blue, Red, Minigame, Blue, Event, Blue,
		Blue, Red, Star, Blue, Minigame, Blue, Event, Blue,
		Red, Blue, Minigame, Blue, Blue, Event, Star, Blue,
		Red, Blue, Minigame, Blue, Shop, Blue, Event, Blue,
	}

	n := min(len(positions), len(types))
	spaces := make([]Space, 0, n)
	for i := 0; i < n; i++ {
		spaces = append(spaces, Space{
			ID:   i,
			Type: types[i],
			X:    positions[i][0],
			Y:    positions[i][1],
		})
	}
	return spaces
}

func (b *Board) Size() int {
	return len(b.spaces)
}

// Space returns the space at position, or nil outside [0,N).
func (b *Board) Space(position int) *Space {
	if position < 0 || position >= len(b.spaces) {
		return nil
	}
	return &b.spaces[position]
}

func (b *Board) IsValidPosition(position int) bool {
	return position >= 0 && position < len(b.spaces)
}

// NewPosition computes the landing position after moving delta spaces
// forward around the circular board.
func (b *Board) NewPosition(current, delta int) int {
	return (current + delta) % len(b.spaces)
}

// StartPosition returns the index of the START space.
func (b *Board) StartPosition() int {
	for i := range b.spaces {
		if b.spaces[i].Type == Start {
			return i
		}
	}
	return 0
}

func (b *Board) StarPositions() []int {
	positions := make([]int, 0, len(b.stars))
	for p := range b.stars {
		positions = append(positions, p)
	}
	return positions
}

// NearestStar returns the star position closest to position by circular
// distance, or -1 if no stars remain.
func (b *Board) NearestStar(position int) int {
	nearest := -1
	minDistance := len(b.spaces)
	for starPos := range b.stars {
		d := circularDistance(starPos, position, len(b.spaces))
		if d < minDistance {
			minDistance = d
			nearest = starPos
		}
	}
	return nearest
}

func circularDistance(a, b, size int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return min(d, size-d)
}

// RelocateStar moves the star at oldPosition to a random BLUE space after
// collection. The vacated space becomes BLUE. A star never lands on START or
// any non-BLUE space; after a bounded number of attempts the relocation is
// abandoned and (-1, false) is returned, leaving one fewer star this round.
func (b *Board) RelocateStar(oldPosition int) (int, bool) {
	if !b.stars[oldPosition] {
		return -1, false
	}
	delete(b.stars, oldPosition)
	b.spaces[oldPosition].Type = Blue

	start := b.StartPosition()
	for attempt := 0; attempt < relocateAttempts; attempt++ {
		candidate := b.rng.Intn(len(b.spaces))
		if candidate == start || candidate == oldPosition || b.spaces[candidate].Type != Blue {
			continue
		}
		b.spaces[candidate].Type = Star
		b.stars[candidate] = true
		return candidate, true
	}
	return -1, false
}

// Path lists the positions stepped through moving forward from from to to,
// excluding from and including to.
func (b *Board) Path(from, to int) []int {
	path := []int{}
	current := from
	for current != to {
		current = (current + 1) % len(b.spaces)
		path = append(path, current)
	}
	return path
}

// SpacesInRange returns the spaces reachable within r steps forward or
// backward of position, nearest first.
func (b *Board) SpacesInRange(position, r int) []Space {
	spaces := []Space{}
	size := len(b.spaces)
	for i := 1; i <= r; i++ {
		forward := (position + i) % size
		backward := (position - i + size) % size
		spaces = append(spaces, b.spaces[forward])
		if forward != backward {
			spaces = append(spaces, b.spaces[backward])
		}
	}
	return spaces
}

// Snapshot copies the current layout for outbound sync.
func (b *Board) Snapshot() Snapshot {
	spaces := make([]Space, len(b.spaces))
	copy(spaces, b.spaces)
	return Snapshot{
		Spaces:        spaces,
		Size:          len(b.spaces),
		StarPositions: b.StarPositions(),
	}
}
