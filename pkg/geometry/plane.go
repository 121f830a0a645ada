package geometry

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Plane represents an infinite plane through Transform's position, with a
// fixed world-space Normal (the original's OPlane likewise only ever uses
// its transform's position, leaving Normal untouched by rotation).
type Plane struct {
	Transform core.Transform
	Normal    core.Vec3
	Material  *material.Material
}

// NewPlane creates a new plane through point with the given normal.
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	return &Plane{
		Transform: core.NewTransform(point, core.Vec3{}, core.NewVec3(1, 1, 1)),
		Normal:    normal.Normalize(),
		Material:  mat,
	}
}

// Hit tests if a ray intersects with the plane.
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < 1e-10 {
		return nil, false
	}

	point := p.Transform.Position()
	t := point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hit.SetFaceNormal(ray, p.Normal)

	return hit, true
}

// BoundingBox returns a bounding box for the plane. An infinite plane has
// no finite extent, so the box is thin along the normal and very large
// along the other two axes - enough for BVH construction to treat it as
// effectively unbounded without using actual infinities.
func (p *Plane) BoundingBox() core.AABB {
	const large = 1e6
	const thin = 1e-4

	extent := core.NewVec3(large, large, large)
	switch {
	case math.Abs(p.Normal.X) > 0.9999:
		extent.X = thin
	case math.Abs(p.Normal.Y) > 0.9999:
		extent.Y = thin
	case math.Abs(p.Normal.Z) > 0.9999:
		extent.Z = thin
	}

	point := p.Transform.Position()
	return core.NewAABB(point.Subtract(extent), point.Add(extent))
}
