package renderer

import (
	"context"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID   int
	WorkerID int
	Stats    TileStats
}

// WorkerPool renders the tiles of a Slice in parallel. Workers claim
// tiles through the slice cursor until it is exhausted, so each tile is
// rendered exactly once.
type WorkerPool struct {
	slice       *Slice
	renderer    *TileRenderer
	offsets     func(x, y int) []core.Vec2
	numWorkers  int
	resultQueue chan TileResult
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(slice *Slice, tr *TileRenderer, offsets func(x, y int) []core.Vec2, numWorkers int) *WorkerPool {
	return &WorkerPool{
		slice:       slice,
		renderer:    tr,
		offsets:     offsets,
		numWorkers:  numWorkers,
		resultQueue: make(chan TileResult, slice.Len()), // Buffer for all possible results
	}
}

// Start launches the workers. The result channel is closed once every
// worker has exited.
func (wp *WorkerPool) Start(ctx context.Context) {
	for id := 0; id < wp.numWorkers; id++ {
		wp.wg.Add(1)
		go wp.run(ctx, id)
	}
	go func() {
		wp.wg.Wait()
		close(wp.resultQueue)
	}()
}

// Results returns the channel of finished tiles
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context, id int) {
	defer wp.wg.Done()

	for ctx.Err() == nil {
		i := wp.slice.GetIndex()
		if i < 0 {
			return
		}
		tile := wp.slice.Tile(i)

		// Tiles are disjoint, so frame writes need no lock
		stats := wp.renderer.RenderTileBounds(tile.Bounds, wp.offsets)
		wp.resultQueue <- TileResult{TileID: tile.ID, WorkerID: id, Stats: stats}
	}
}
