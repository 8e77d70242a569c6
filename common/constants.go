package common

const (
	// TileSize is the default edge length of a map cell in pixels.
	TileSize = 32

	BaseWidth  = 512
	BaseHeight = 512
)
