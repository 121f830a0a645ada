package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/integrator"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// TileTask assigns one tile of the output image to a worker.
type TileTask struct {
	Tile       *Tile
	TaskID     int
	PixelStats [][]PixelStats // shared across tasks; each tile's bounds are disjoint
}

// TileResult reports the outcome of a rendered tile.
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool renders tiles of a single frame in parallel. The scene
// and BVH are read-only for the pool's lifetime: all workers share one
// Renderer and only write into their own tile's disjoint region of the
// shared pixel-stats grid.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	renderer    *Renderer
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool of numWorkers goroutines rendering
// against scn with integ. numWorkers <= 0 defaults to the host's CPU
// count.
func NewWorkerPool(scn *scene.Scene, integ integrator.Integrator, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan TileTask, 256),
		resultQueue: make(chan TileResult, 256),
		renderer:    NewRenderer(scn, integ),
		numWorkers:  numWorkers,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.runWorker()
	}
}

// Stop closes the task queue, waits for every worker to drain it, and
// closes the result queue.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask enqueues a tile for rendering.
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult blocks for the next completed tile result; ok is false
// once the result queue is drained and closed.
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

func (wp *WorkerPool) runWorker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		stats := wp.renderer.RenderBounds(task.Tile.Bounds, task.PixelStats, task.Tile.Random)
		wp.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}

// RenderParallel tiles scn's frame, renders every tile across a
// worker pool, and returns the assembled HDR buffer plus aggregate
// statistics. seed makes the render reproducible across runs and
// worker counts: a tile's own RNG stream never depends on scheduling
// order.
func RenderParallel(scn *scene.Scene, integ integrator.Integrator, tileSize int, numWorkers int, seed int64) ([][]core.Vec3, RenderStats) {
	width, height := scn.Camera.Width(), scn.Camera.Height()

	pixelStats := make([][]PixelStats, height)
	for j := range pixelStats {
		pixelStats[j] = make([]PixelStats, width)
	}

	tiles := GenerateTiles(width, height, tileSize, seed)

	pool := NewWorkerPool(scn, integ, numWorkers)
	pool.Start()

	go func() {
		for i, tile := range tiles {
			pool.SubmitTask(TileTask{Tile: tile, TaskID: i, PixelStats: pixelStats})
		}
		pool.Stop()
	}()

	var aggregate RenderStats
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		aggregate.TotalPixels += result.Stats.TotalPixels
		aggregate.TotalSamples += result.Stats.TotalSamples
		aggregate.MaxSamples = max(aggregate.MaxSamples, result.Stats.MaxSamples)
		aggregate.MaxSamplesUsed = max(aggregate.MaxSamplesUsed, result.Stats.MaxSamplesUsed)
		if aggregate.MinSamples == 0 || result.Stats.MinSamples < aggregate.MinSamples {
			aggregate.MinSamples = result.Stats.MinSamples
		}
	}
	if aggregate.TotalPixels > 0 {
		aggregate.AverageSamples = float64(aggregate.TotalSamples) / float64(aggregate.TotalPixels)
	}

	buffer := make([][]core.Vec3, height)
	for j := 0; j < height; j++ {
		buffer[j] = make([]core.Vec3, width)
		for i := 0; i < width; i++ {
			buffer[j][i] = pixelStats[j][i].GetColor()
		}
	}

	return buffer, aggregate
}
