package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer renders pixels of a frame with an integrator. It holds no
// mutable state of its own and is shared by all workers.
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	frame      *Frame
	fovScale   float64
}

// NewTileRenderer creates a tile renderer writing into frame
func NewTileRenderer(s *scene.Scene, integ integrator.Integrator, frame *Frame, fovScale float64) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integ,
		frame:      frame,
		fovScale:   fovScale,
	}
}

// RenderTileBounds renders every pixel within bounds, taking the sample
// offsets of each pixel from offsets
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, offsets func(x, y int) []core.Vec2) TileStats {
	start := time.Now()
	stats := TileStats{}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			stats.Samples += tr.RenderPixel(x, y, offsets(x, y))
			stats.Pixels++
		}
	}
	stats.Duration = time.Since(start)
	return stats
}

// RenderPixel traces one camera ray per offset, clamps each result to
// [0, 1] and adds their mean to the frame. It returns the number of rays
// traced.
func (tr *TileRenderer) RenderPixel(x, y int, offsets []core.Vec2) int {
	if len(offsets) == 0 {
		return 0
	}

	camera := tr.scene.Camera
	w, h := float64(tr.frame.Width), float64(tr.frame.Height)

	var sum core.Vec3
	for _, o := range offsets {
		u := (2*(float64(x)+o.X) - w) / h * tr.fovScale
		v := (-2*(float64(y)+o.Y) + h) / h * tr.fovScale
		ray := camera.PrimaryRay(u, v, 1)
		sum = sum.Add(tr.integrator.Li(ray, tr.scene, 0).Clamp(0, 1))
	}
	tr.frame.add(x, y, sum.Multiply(1/float64(len(offsets))))
	return len(offsets)
}
