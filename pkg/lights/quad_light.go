package lights

import (
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// QuadLight is a rectangular area light: a quad primitive tagged with an
// emissive material, sampled uniformly over its surface area.
type QuadLight struct {
	*geometry.Quad
}

// NewQuadLight creates a new quad light spanning corner, corner+u,
// corner+v, corner+u+v, with the given emitted color.
func NewQuadLight(corner, u, v core.Vec3, emission core.Vec3) *QuadLight {
	return &QuadLight{Quad: geometry.NewQuad(corner, u, v, material.NewLight(emission))}
}

// SampleDirection draws a point uniformly over the quad's area and
// returns the unit direction from point toward it.
func (ql *QuadLight) SampleDirection(point core.Vec3, u1, u2 float64) core.Vec3 {
	samplePoint := ql.Corner.Add(ql.U.Multiply(u1)).Add(ql.V.Multiply(u2))
	return samplePoint.Subtract(point).Normalize()
}

// Area returns the quad's surface area, |U x V|.
func (ql *QuadLight) Area() float64 {
	return ql.Quad.Area()
}

// Color returns the light's emitted radiance.
func (ql *QuadLight) Color() core.Vec3 {
	return ql.Material.Emit()
}

// Center returns the quad's centroid.
func (ql *QuadLight) Center() core.Vec3 {
	return ql.Corner.Add(ql.U.Multiply(0.5)).Add(ql.V.Multiply(0.5))
}
