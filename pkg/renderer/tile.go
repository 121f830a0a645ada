package renderer

import (
	"image"
	"math/rand"
)

// Tile is a rectangular region of the output image assigned to one
// worker. Each tile owns a seeded generator so renders are
// deterministic and reproducible regardless of worker-thread timing.
type Tile struct {
	ID     int
	Bounds image.Rectangle
	Random *rand.Rand
}

// NewTile creates a tile with a generator seeded deterministically
// from seed and the tile's id, so the same seed always produces the
// same image regardless of how work is scheduled across workers.
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(seed + int64(id))),
	}
}

// GenerateTiles partitions a width x height image into tileSize
// square tiles (the last row/column may be smaller), in row-major
// order.
func GenerateTiles(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	id := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			bounds := image.Rect(x, y, min(x+tileSize, width), min(y+tileSize, height))
			tiles = append(tiles, NewTile(id, bounds, seed))
			id++
		}
	}
	return tiles
}
