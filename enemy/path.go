package enemy

import "github.com/milk9111/outlaw/level"

// stepOrder is the evaluation order of the greedy step: up, down, left, right.
var stepOrder = [4]level.Cell{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// NextStep picks the neighbouring cell of from that minimises
// 1 + manhattan(candidate, target). Candidates must be walkable and not
// occupied. Ties keep the earlier direction. It returns the unit step and
// false when from is not walkable or no neighbour qualifies.
func NextStep(tiles *level.TileMap, from, target level.Cell, occupied func(level.Cell) bool) (level.Cell, bool) {
	if !tiles.Walkable(from) {
		return level.Cell{}, false
	}
	best := level.Cell{}
	bestCost := -1
	for _, d := range stepOrder {
		c := level.Cell{X: from.X + d.X, Y: from.Y + d.Y}
		if !tiles.Walkable(c) {
			continue
		}
		if occupied != nil && occupied(c) {
			continue
		}
		cost := 1 + abs(c.X-target.X) + abs(c.Y-target.Y)
		if bestCost < 0 || cost < bestCost {
			bestCost = cost
			best = d
		}
	}
	return best, bestCost >= 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
