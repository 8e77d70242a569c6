package level

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/common"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// TileMap is a read-only grid of tile ids. Rows are stored top to bottom.
type TileMap struct {
	Name     string
	Width    int
	Height   int
	TileSize int
	// Legend maps tile ids to sprite names for renderers. May be nil.
	Legend map[int]string

	tiles [][]int
}

// IsWalkableTile is the fixed walkability predicate over tile ids.
func IsWalkableTile(id int) bool {
	switch id {
	case 1, 3, 4, 5:
		return true
	default:
		return false
	}
}

// New builds a map from rows of tile ids. Ragged rows are padded with 0
// (blocked). tileSize <= 0 falls back to common.TileSize.
func New(rows [][]int, tileSize int) *TileMap {
	if tileSize <= 0 {
		tileSize = common.TileSize
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	tiles := make([][]int, len(rows))
	for y, row := range rows {
		tiles[y] = make([]int, width)
		copy(tiles[y], row)
	}
	return &TileMap{
		Width:    width,
		Height:   len(rows),
		TileSize: tileSize,
		tiles:    tiles,
	}
}

// Empty returns a zero-sized map, used when loading fails.
func Empty() *TileMap {
	return New(nil, common.TileSize)
}

// IsEmpty reports whether the map has no cells.
func (m *TileMap) IsEmpty() bool {
	return m == nil || m.Width == 0 || m.Height == 0
}

// InBounds reports whether c lies inside the grid.
func (m *TileMap) InBounds(c Cell) bool {
	if m == nil {
		return false
	}
	return c.X >= 0 && c.Y >= 0 && c.X < m.Width && c.Y < m.Height
}

// TileAt returns the tile id at c.
func (m *TileMap) TileAt(c Cell) (int, bool) {
	if !m.InBounds(c) {
		return 0, false
	}
	return m.tiles[c.Y][c.X], true
}

// Walkable reports whether c is inside the map and holds a walkable tile.
func (m *TileMap) Walkable(c Cell) bool {
	id, ok := m.TileAt(c)
	return ok && IsWalkableTile(id)
}

// CellAt returns the cell containing the pixel position p.
func (m *TileMap) CellAt(p cp.Vector) Cell {
	ts := float64(m.tileSize())
	return Cell{
		X: int(math.Floor(p.X / ts)),
		Y: int(math.Floor(p.Y / ts)),
	}
}

// WalkableAt reports whether the pixel position p is over a walkable tile.
func (m *TileMap) WalkableAt(p cp.Vector) bool {
	return m.Walkable(m.CellAt(p))
}

// CellCenter returns the pixel centre of c.
func (m *TileMap) CellCenter(c Cell) cp.Vector {
	ts := float64(m.tileSize())
	return cp.Vector{X: (float64(c.X) + 0.5) * ts, Y: (float64(c.Y) + 0.5) * ts}
}

// CellBB returns the pixel rectangle of c.
func (m *TileMap) CellBB(c Cell) cp.BB {
	ts := float64(m.tileSize())
	x0 := float64(c.X) * ts
	y0 := float64(c.Y) * ts
	return cp.BB{L: x0, B: y0, R: x0 + ts, T: y0 + ts}
}

func (m *TileMap) PixelWidth() float64 {
	if m == nil {
		return 0
	}
	return float64(m.Width * m.tileSize())
}

func (m *TileMap) PixelHeight() float64 {
	if m == nil {
		return 0
	}
	return float64(m.Height * m.tileSize())
}

// Bounds returns the map rectangle in pixels. B is the top edge (y grows down).
func (m *TileMap) Bounds() cp.BB {
	return cp.BB{L: 0, B: 0, R: m.PixelWidth(), T: m.PixelHeight()}
}

// Center returns the pixel centre of the map.
func (m *TileMap) Center() cp.Vector {
	return cp.Vector{X: m.PixelWidth() / 2, Y: m.PixelHeight() / 2}
}

// Rows returns a copy of the tile grid.
func (m *TileMap) Rows() [][]int {
	if m == nil {
		return nil
	}
	out := make([][]int, len(m.tiles))
	for y, row := range m.tiles {
		out[y] = append([]int(nil), row...)
	}
	return out
}

func (m *TileMap) tileSize() int {
	if m == nil || m.TileSize <= 0 {
		return common.TileSize
	}
	return m.TileSize
}
