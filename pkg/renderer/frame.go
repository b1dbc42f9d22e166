package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// Frame is a row-major buffer of linear colors
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pixels: make([]core.Vec3, width*height)}
}

// At returns the color of pixel (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// add accumulates c into pixel (x, y). Concurrent callers must write
// disjoint pixels.
func (f *Frame) add(x, y int, c core.Vec3) {
	i := y*f.Width + x
	f.Pixels[i] = f.Pixels[i].Add(c)
}

// Save writes the frame to path as PNG or PPM depending on the extension
func (f *Frame) Save(path string) error {
	return loaders.SaveImage(path, f.Width, f.Height, f.Pixels)
}
