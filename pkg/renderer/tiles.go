package renderer

import (
	"image"
	"sync"
)

// Tile is a rectangular block of pixels rendered by a single worker
type Tile struct {
	ID     int
	Bounds image.Rectangle // clamped to the image
}

// NewTileGrid splits the image into row-major tiles. Edge tiles are
// smaller when the image size is not a multiple of tileSize.
func NewTileGrid(width, height, tileSize int) []Tile {
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)
			tiles = append(tiles, Tile{ID: len(tiles), Bounds: image.Rect(x0, y0, x1, y1)})
		}
	}
	return tiles
}

// Slice hands out the tiles of an image, each exactly once, to any number
// of workers
type Slice struct {
	tiles []Tile

	mu   sync.Mutex
	next int
}

// NewSlice creates the tile list of a width x height image
func NewSlice(width, height, tileSize int) *Slice {
	return &Slice{tiles: NewTileGrid(width, height, tileSize)}
}

// GetIndex claims the next unclaimed tile and returns its index, or -1
// when every tile has been claimed
func (s *Slice) GetIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.tiles) {
		return -1
	}
	i := s.next
	s.next++
	return i
}

// Tile returns the tile at index i
func (s *Slice) Tile(i int) Tile {
	return s.tiles[i]
}

// Len returns the number of tiles
func (s *Slice) Len() int {
	return len(s.tiles)
}
