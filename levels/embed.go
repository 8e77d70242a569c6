package levels

import (
	"embed"

	"github.com/milk9111/outlaw/level"
)

// DefaultMap is the map the driver loads when no -map flag is given.
const DefaultMap = "arena.json"

//go:embed *.json
var LevelsFS embed.FS

// Load builds a layout of an embedded map.
func Load(name, layout string) (*level.TileMap, error) {
	return level.LoadFromFS(LevelsFS, name, layout)
}
