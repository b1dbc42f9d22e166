package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/sampler"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var logger = log.New("renderer")

// Renderer turns a scene into a frame
type Renderer struct {
	scene      *scene.Scene
	config     Config
	integrator integrator.Integrator

	// Progress, when set, is called after each finished tile or scanline
	// from the goroutine that called Render
	Progress func(done, total int)
}

// New creates a renderer. A nil integrator selects the Whitted integrator
// configured from config. The scene and config are validated here so
// that rendering itself cannot fail on bad input.
func New(s *scene.Scene, config Config, integ integrator.Integrator) (*Renderer, error) {
	if s == nil {
		return nil, ErrNoScene
	}
	if s.Camera == nil {
		return nil, ErrNoCamera
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if integ == nil {
		integ = integrator.NewWhitted(config.Integrator)
	}
	return &Renderer{scene: s, config: config, integrator: integ}, nil
}

// Config returns the render configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Render produces the frame and blocks until every pixel is done. When
// ctx is cancelled, workers stop claiming tiles and the partial frame is
// returned together with ctx.Err().
func (r *Renderer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	start := time.Now()
	frame := NewFrame(r.config.Width, r.config.Height)
	stats := RenderStats{
		Mode:       r.config.Mode,
		Width:      r.config.Width,
		Height:     r.config.Height,
		Primitives: r.scene.PrimitiveCount(),
	}

	logger.Noticef("rendering %q: %dx%d, mode %s, %d primitives, %d lights",
		r.scene.Name, r.config.Width, r.config.Height, r.config.Mode, stats.Primitives, len(r.scene.Lights))

	var err error
	switch r.config.Mode {
	case ModeGradient:
		r.renderGradient(frame, &stats)
	case ModeSingle:
		err = r.renderScanlines(ctx, frame, &stats)
	default:
		err = r.renderTiles(ctx, frame, &stats)
	}
	stats.Elapsed = time.Since(start)
	if err != nil {
		return frame, stats, err
	}

	logger.Noticef("finished %q in %v (%d samples)", r.scene.Name, stats.Elapsed.Round(time.Millisecond), stats.TotalSamples())
	return frame, stats, nil
}

func (r *Renderer) newSampler() (*sampler.Stratified2D, error) {
	random := rand.New(rand.NewSource(r.config.Seed))
	s, err := sampler.NewStratified2D(r.config.Width, r.config.Height, r.config.GridDim, r.config.SamplesPerPixel, random)
	if err != nil {
		return nil, fmt.Errorf("creating sampler: %w", err)
	}
	return s, nil
}

// renderTiles renders tiles on a pool of workers. Each pixel's offsets are
// looked up by position so the image does not depend on which worker
// renders which tile.
func (r *Renderer) renderTiles(ctx context.Context, frame *Frame, stats *RenderStats) error {
	samples, err := r.newSampler()
	if err != nil {
		return err
	}

	slice := NewSlice(r.config.Width, r.config.Height, r.config.TileSize)
	tr := NewTileRenderer(r.scene, r.integrator, frame, r.config.fovScale())
	pool := NewWorkerPool(slice, tr, samples.At, r.config.workers())
	stats.Tiles = slice.Len()
	stats.Workers = make([]WorkerStats, pool.GetNumWorkers())
	for i := range stats.Workers {
		stats.Workers[i].WorkerID = i
	}

	logger.Infof("%d tiles of %dpx on %d workers", slice.Len(), r.config.TileSize, pool.GetNumWorkers())
	pool.Start(ctx)

	progress := newProgressReporter(slice.Len(), r.Progress)
	for result := range pool.Results() {
		stats.Workers[result.WorkerID].add(result.Stats)
		logger.Debugf("tile %d done by worker %d in %v", result.TileID, result.WorkerID, result.Stats.Duration)
		progress.step()
	}
	return ctx.Err()
}

// renderScanlines renders row by row on the calling goroutine, consuming
// the sampler through its forward cursor
func (r *Renderer) renderScanlines(ctx context.Context, frame *Frame, stats *RenderStats) error {
	samples, err := r.newSampler()
	if err != nil {
		return err
	}

	tr := NewTileRenderer(r.scene, r.integrator, frame, r.config.fovScale())
	stats.Workers = []WorkerStats{{WorkerID: 0}}
	progress := newProgressReporter(r.config.Height, r.Progress)
	for y := 0; y < r.config.Height; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		row := TileStats{}
		for x := 0; x < r.config.Width; x++ {
			row.Samples += tr.RenderPixel(x, y, samples.Next())
			row.Pixels++
		}
		row.Duration = time.Since(start)
		stats.Workers[0].add(row)
		progress.step()
	}
	return nil
}

// gradientStripes is the number of grey levels in the test pattern
const gradientStripes = 256

// renderGradient fills the frame with vertical grey stripes of increasing
// linear intensity from black on the left to white on the right
func (r *Renderer) renderGradient(frame *Frame, stats *RenderStats) {
	stats.Workers = []WorkerStats{{WorkerID: 0}}
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			stripe := x * gradientStripes / frame.Width
			frame.add(x, y, core.Splat(float64(stripe)/(gradientStripes-1)))
		}
	}
	stats.Workers[0].Pixels = frame.Width * frame.Height
}

// progressReporter logs progress every 10% and forwards each step to an
// optional callback
type progressReporter struct {
	total    int
	done     int
	nextLog  int
	callback func(done, total int)
}

func newProgressReporter(total int, callback func(done, total int)) *progressReporter {
	return &progressReporter{total: total, nextLog: 1, callback: callback}
}

func (p *progressReporter) step() {
	p.done++
	if p.callback != nil {
		p.callback(p.done, p.total)
	}
	if p.done*10 >= p.nextLog*p.total {
		logger.Infof("progress: %d%% (%d/%d)", p.done*100/p.total, p.done, p.total)
		for p.done*10 >= p.nextLog*p.total {
			p.nextLog++
		}
	}
}
