package renderer

import (
	"image"
	"math"
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/integrator"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// Renderer drives the integrator over a scene's pixel grid, with
// adaptive per-pixel sampling and tile-bounded parallelism.
type Renderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
	logger     core.Logger
}

// NewRenderer creates a renderer for scn using integ, sized to the
// scene's camera resolution, logging pass-level diagnostics nowhere
// (core.NopLogger) unless SetLogger is called.
func NewRenderer(scn *scene.Scene, integ integrator.Integrator) *Renderer {
	return &Renderer{
		scene:      scn,
		integrator: integ,
		width:      scn.Camera.Width(),
		height:     scn.Camera.Height(),
		logger:     core.NopLogger{},
	}
}

// SetLogger installs the logger used for render-summary diagnostics.
func (r *Renderer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	r.logger = logger
}

// RenderBounds renders pixels within bounds into pixelStats using the
// adaptive sampling rule, returning summary statistics for the region.
// bounds must not overlap other concurrent calls sharing pixelStats.
func (r *Renderer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand) RenderStats {
	config := r.scene.SamplingConfig
	maxSamples := config.SamplesPerPixel
	if maxSamples < 1 {
		maxSamples = 1
	}

	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  maxSamples,
		MinSamples:  maxSamples,
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			used := r.adaptiveSamplePixel(i, j, &pixelStats[j][i], random, maxSamples, config)
			stats.TotalSamples += used
			stats.MinSamples = min(stats.MinSamples, used)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, used)
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}

// adaptiveSamplePixel samples pixel (i, j) until the configured
// relative-error threshold is met or maxSamples is reached, returning
// the number of samples taken.
func (r *Renderer) adaptiveSamplePixel(i, j int, ps *PixelStats, random *rand.Rand, maxSamples int, config scene.SamplingConfig) int {
	initial := ps.SampleCount
	minSamples := int(float64(maxSamples) * config.AdaptiveMinSamples)
	if minSamples < 1 {
		minSamples = 1
	}

	for ps.SampleCount < maxSamples && !shouldStopSampling(ps, minSamples, config.AdaptiveThreshold) {
		ray := r.scene.Camera.SampleRay(i, j, random)
		color := r.integrator.RayColor(ray, r.scene, random)
		ps.AddSample(color)
	}

	return ps.SampleCount - initial
}

// shouldStopSampling reports whether the coefficient of variation of
// a pixel's accumulated luminance has fallen below threshold.
func shouldStopSampling(ps *PixelStats, minSamples int, threshold float64) bool {
	if ps.SampleCount < minSamples {
		return false
	}
	if threshold <= 0 {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := math.Max(0, meanSq-mean*mean)

	if mean <= 1e-8 {
		return variance < 1e-6
	}

	relativeError := math.Sqrt(variance) / mean
	return relativeError < threshold
}

// Render synchronously renders the full frame single-threaded and
// returns the HxW color buffer, undecoded (no tone-map or gamma).
func (r *Renderer) Render() ([][]core.Vec3, RenderStats) {
	pixelStats := make([][]PixelStats, r.height)
	for j := range pixelStats {
		pixelStats[j] = make([]PixelStats, r.width)
	}

	random := rand.New(rand.NewSource(42))
	bounds := image.Rect(0, 0, r.width, r.height)
	stats := r.RenderBounds(bounds, pixelStats, random)

	r.logger.Printf("render complete: %dx%d pixels, %d samples (avg %.2f/pixel)",
		r.width, r.height, stats.TotalSamples, stats.AverageSamples)

	buffer := make([][]core.Vec3, r.height)
	for j := 0; j < r.height; j++ {
		buffer[j] = make([]core.Vec3, r.width)
		for i := 0; i < r.width; i++ {
			buffer[j][i] = pixelStats[j][i].GetColor()
		}
	}

	return buffer, stats
}
