package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image placed on a surface through
// a texture mapping
type ImageTexture struct {
	Width   int
	Height  int
	Pixels  []core.Vec3 // Row-major: Pixels[y*Width + x]
	Mapping TextureMapping
	Wrap    Wrap
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3, mapping TextureMapping, wrap Wrap) (*ImageTexture, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		return nil, fmt.Errorf("image texture is %dx%d but has %d pixels", width, height, len(pixels))
	}
	return &ImageTexture{
		Width:   width,
		Height:  height,
		Pixels:  pixels,
		Mapping: mapping,
		Wrap:    wrap,
	}, nil
}

// Texel implements Texture with nearest-neighbor filtering. v=0 is the
// bottom row of the image.
func (t *ImageTexture) Texel(si *SurfaceInteraction) core.Vec3 {
	uv := t.Mapping.UV(si)
	if t.Wrap == WrapBlack && (uv.X < 0 || uv.Y < 0 || uv.X > 1 || uv.Y > 1) {
		return core.Vec3{}
	}
	uv = t.Wrap.apply(uv)

	x := min(int(uv.X*float64(t.Width)), t.Width-1)
	y := min(int((1-uv.Y)*float64(t.Height)), t.Height-1)
	return t.Pixels[max(y, 0)*t.Width+max(x, 0)]
}
