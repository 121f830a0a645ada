package lights

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// SphereLight is a spherical area light: a sphere primitive tagged with
// an emissive material, sampled by the cone it subtends from the query
// point rather than uniformly over its surface.
type SphereLight struct {
	*geometry.Sphere
}

// NewSphereLight creates a spherical light of the given radius and
// emitted color.
func NewSphereLight(center core.Vec3, radius float64, emission core.Vec3) *SphereLight {
	return &SphereLight{Sphere: geometry.NewSphere(center, radius, material.NewLight(emission))}
}

// SampleDirection draws a direction uniformly distributed (by solid
// angle) within the cone subtended by the sphere as seen from point.
func (sl *SphereLight) SampleDirection(point core.Vec3, u1, u2 float64) core.Vec3 {
	toCenter := sl.Sphere.Transform.Position().Subtract(point)
	distance := toCenter.Length()
	if distance <= sl.Radius {
		return core.SampleUniformSphere(u1, u2)
	}

	cosThetaMax := math.Sqrt(math.Max(0, 1-(sl.Radius*sl.Radius)/(distance*distance)))
	return core.SampleUniformCone(toCenter.Normalize(), cosThetaMax, u1, u2)
}

// Area returns the sphere's projected (disk) area as seen from a distant
// point: πR².
func (sl *SphereLight) Area() float64 {
	return math.Pi * sl.Radius * sl.Radius
}

// Color returns the light's emitted radiance.
func (sl *SphereLight) Color() core.Vec3 {
	return sl.Material.Emit()
}

// Center returns the sphere's center.
func (sl *SphereLight) Center() core.Vec3 {
	return sl.Sphere.Transform.Position()
}
