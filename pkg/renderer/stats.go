package renderer

import "time"

// TileStats contains statistics about rendering one tile
type TileStats struct {
	Pixels   int           // pixels written
	Samples  int           // camera rays traced
	Duration time.Duration // wall time spent on the tile
}

// WorkerStats accumulates the tiles rendered by one worker
type WorkerStats struct {
	WorkerID int
	Tiles    int
	Pixels   int
	Samples  int
	Busy     time.Duration // total time spent rendering tiles
}

// add folds a finished tile into the worker totals
func (ws *WorkerStats) add(ts TileStats) {
	ws.Tiles++
	ws.Pixels += ts.Pixels
	ws.Samples += ts.Samples
	ws.Busy += ts.Duration
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Mode       Mode
	Width      int
	Height     int
	Tiles      int
	Primitives int
	Workers    []WorkerStats // one entry per worker; a single entry in scanline mode
	Elapsed    time.Duration
}

// TotalPixels returns the number of pixels written by all workers
func (rs RenderStats) TotalPixels() int {
	total := 0
	for _, w := range rs.Workers {
		total += w.Pixels
	}
	return total
}

// TotalSamples returns the number of camera rays traced by all workers
func (rs RenderStats) TotalSamples() int {
	total := 0
	for _, w := range rs.Workers {
		total += w.Samples
	}
	return total
}

// SamplesPerSecond returns the camera ray throughput of the render
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Elapsed <= 0 {
		return 0
	}
	return float64(rs.TotalSamples()) / rs.Elapsed.Seconds()
}
