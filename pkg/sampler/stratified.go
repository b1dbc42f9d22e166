// Package sampler provides precomputed per-pixel sample offsets.
package sampler

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidSize is returned for non-positive sampler dimensions
var ErrInvalidSize = errors.New("sampler: invalid size")

// Stratified2D holds jittered sample offsets for every pixel of an image.
// Each pixel gets Sets independent gridDim x gridDim jittered grids over
// [0,1)x[0,1), all generated up front.
//
// Next walks the pixels in row-major order through a mutex-guarded cursor.
// At returns the offsets of a given pixel and needs no lock since the
// arrays never change after construction.
type Stratified2D struct {
	width, height int
	gridDim       int
	sets          int
	samples       []core.Vec2

	mu     sync.Mutex
	cursor int
}

// NewStratified2D precomputes the sample offsets of a width x height image
func NewStratified2D(width, height, gridDim, sets int, random *rand.Rand) (*Stratified2D, error) {
	if width <= 0 || height <= 0 || gridDim <= 0 || sets <= 0 {
		return nil, fmt.Errorf("%w: %dx%d pixels, grid %d, %d sets", ErrInvalidSize, width, height, gridDim, sets)
	}

	perPixel := sets * gridDim * gridDim
	samples := make([]core.Vec2, 0, width*height*perPixel)
	inv := 1 / float64(gridDim)
	for p := 0; p < width*height; p++ {
		for s := 0; s < sets; s++ {
			for m := 0; m < gridDim; m++ {
				for k := 0; k < gridDim; k++ {
					samples = append(samples, core.Vec2{
						X: (float64(k) + random.Float64()) * inv,
						Y: (float64(m) + random.Float64()) * inv,
					})
				}
			}
		}
	}

	return &Stratified2D{
		width:   width,
		height:  height,
		gridDim: gridDim,
		sets:    sets,
		samples: samples,
	}, nil
}

// PerPixel returns the number of offsets per pixel
func (s *Stratified2D) PerPixel() int {
	return s.sets * s.gridDim * s.gridDim
}

// GridDim returns the number of strata along each axis
func (s *Stratified2D) GridDim() int {
	return s.gridDim
}

// Next returns the offsets of the next pixel in row-major order, or nil
// once every pixel has been handed out. It is safe for concurrent use;
// iteration is forward only.
func (s *Stratified2D) Next() []core.Vec2 {
	s.mu.Lock()
	p := s.cursor
	if p < s.width*s.height {
		s.cursor++
	}
	s.mu.Unlock()

	if p >= s.width*s.height {
		return nil
	}
	return s.pixel(p)
}

// At returns the offsets of pixel (x, y), or nil outside the image. The
// result does not depend on call order, so workers may render pixels in
// any order and still see the same pattern.
func (s *Stratified2D) At(x, y int) []core.Vec2 {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return nil
	}
	return s.pixel(y*s.width + x)
}

func (s *Stratified2D) pixel(p int) []core.Vec2 {
	n := s.PerPixel()
	return s.samples[p*n : (p+1)*n : (p+1)*n]
}
