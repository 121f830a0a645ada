// Package integrator implements the Monte Carlo light transport
// algorithm: direct lighting by light sampling plus indirect lighting
// by BRDF importance sampling, with Russian Roulette termination.
package integrator

import (
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// Integrator computes the radiance arriving along a camera ray.
type Integrator interface {
	RayColor(ray core.Ray, scn *scene.Scene, rng *rand.Rand) core.Vec3
}

// Config parameterizes the path tracer.
type Config struct {
	RayDepth                  int // recursion bound for indirect bounces, default 1
	DirectSamples             int // N_d, samples per light for direct lighting
	IndirectSamples           int // N_i, BRDF samples for the top-level indirect estimate
	Shadows                   bool
	DirectSampling            bool
	IndirectSampling          bool
	Translucency              bool
	RussianRouletteMinBounces int

	// Logger receives per-bounce Russian-Roulette tracing at debug level.
	// Defaults to core.NopLogger when left nil.
	Logger core.Logger
}

// DefaultConfig returns reasonable defaults matching the sampling
// model's recommended starting point.
func DefaultConfig() Config {
	return Config{
		RayDepth:                  1,
		DirectSamples:             1,
		IndirectSamples:           1,
		Shadows:                   true,
		DirectSampling:            true,
		IndirectSampling:          true,
		Translucency:              false,
		RussianRouletteMinBounces: 3,
		Logger:                    core.NopLogger{},
	}
}

// logger returns cfg.Logger, falling back to a no-op when unset so
// callers that build a Config by hand don't need to wire one.
func (cfg Config) logger() core.Logger {
	if cfg.Logger == nil {
		return core.NopLogger{}
	}
	return cfg.Logger
}
