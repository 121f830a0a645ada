package lights

import (
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
)

// Light is a scene primitive that also emits radiance and can be
// importance-sampled from an arbitrary shading point for direct lighting.
type Light interface {
	geometry.Shape

	// SampleDirection returns a unit direction from point toward the
	// light, drawn from the solid angle the light subtends as seen from
	// point, given two uniform [0,1) samples.
	SampleDirection(point core.Vec3, u1, u2 float64) core.Vec3

	// Area returns the light's emitting (or, for cone-sampled lights,
	// projected) area, used by the direct-lighting radiance weight.
	Area() float64

	// Color returns the light's emitted radiance.
	Color() core.Vec3

	// Center returns a representative point on the light, used by the
	// deterministic (non-stochastic) direct-lighting fallback.
	Center() core.Vec3
}
