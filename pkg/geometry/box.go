package geometry

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Box represents an axis-aligned (in local space) rectangular volume,
// optionally translated, rotated, and scaled into world space by its
// Transform. HalfExtent is the half-size along each local axis.
type Box struct {
	Transform  core.Transform
	HalfExtent core.Vec3
	Material   *material.Material
}

// NewBox creates a box at the given center with the given half-extents,
// rotated by the given Euler angles (radians) and uniformly unscaled.
func NewBox(center, halfExtent, eulerRotation core.Vec3, mat *material.Material) *Box {
	return &Box{
		Transform:  core.NewTransform(center, eulerRotation, core.NewVec3(1, 1, 1)),
		HalfExtent: halfExtent,
		Material:   mat,
	}
}

// NewAxisAlignedBox creates a box with no rotation.
func NewAxisAlignedBox(center, halfExtent core.Vec3, mat *material.Material) *Box {
	return NewBox(center, halfExtent, core.Vec3{}, mat)
}

// Hit performs a slab test in the box's local space, so the ray is first
// inverse-transformed. When the computed near distance is negative the
// ray origin is inside the box: the far distance is used instead, and
// SetFaceNormal flips the outward normal to face the ray.
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	localOrigin := b.Transform.InverseTransformPoint(ray.Origin)
	localDir := b.Transform.InverseTransformDirection(ray.Direction)

	tNear, tFar := math.Inf(-1), math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		var origin, direction, extent float64
		switch axis {
		case 0:
			origin, direction, extent = localOrigin.X, localDir.X, b.HalfExtent.X
		case 1:
			origin, direction, extent = localOrigin.Y, localDir.Y, b.HalfExtent.Y
		case 2:
			origin, direction, extent = localOrigin.Z, localDir.Z, b.HalfExtent.Z
		}

		if math.Abs(direction) < 1e-10 {
			if origin < -extent || origin > extent {
				return nil, false
			}
			continue
		}

		invDir := 1.0 / direction
		t1 := (-extent - origin) * invDir
		t2 := (extent - origin) * invDir
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return nil, false
		}
	}

	inside := tNear < 0
	t := tNear
	if inside {
		t = tFar
	}
	if t < tMin || t > tMax {
		return nil, false
	}

	localHit := localOrigin.Add(localDir.Multiply(t))
	outwardLocalNormal := localNormalFromBoxPoint(localHit, b.HalfExtent)

	worldPoint := b.Transform.TransformPoint(localHit)
	worldNormal := b.Transform.TransformDirection(outwardLocalNormal).Normalize()

	hit := &material.HitRecord{
		T:        t,
		Point:    worldPoint,
		Material: b.Material,
	}
	hit.SetFaceNormal(ray, worldNormal)

	return hit, true
}

// localNormalFromBoxPoint recovers the outward normal in local space by
// dividing the local hit position by the box extent (with a small bias so
// near-edge hits don't pick the wrong axis) and isolating the dominant,
// near-unit component.
func localNormalFromBoxPoint(localPoint, halfExtent core.Vec3) core.Vec3 {
	const bias = 1.0001

	scaled := core.NewVec3(
		localPoint.X/halfExtent.X,
		localPoint.Y/halfExtent.Y,
		localPoint.Z/halfExtent.Z,
	)

	ax, ay, az := math.Abs(scaled.X), math.Abs(scaled.Y), math.Abs(scaled.Z)
	switch {
	case ax >= ay*bias && ax >= az*bias:
		return core.NewVec3(math.Copysign(1, scaled.X), 0, 0)
	case ay >= az*bias:
		return core.NewVec3(0, math.Copysign(1, scaled.Y), 0)
	default:
		return core.NewVec3(0, 0, math.Copysign(1, scaled.Z))
	}
}

// BoundingBox returns the world-space axis-aligned bounding box for this
// box, computed from its 8 transformed corners.
func (b *Box) BoundingBox() core.AABB {
	e := b.HalfExtent
	corners := [8]core.Vec3{
		{X: -e.X, Y: -e.Y, Z: -e.Z},
		{X: e.X, Y: -e.Y, Z: -e.Z},
		{X: -e.X, Y: e.Y, Z: -e.Z},
		{X: e.X, Y: e.Y, Z: -e.Z},
		{X: -e.X, Y: -e.Y, Z: e.Z},
		{X: e.X, Y: -e.Y, Z: e.Z},
		{X: -e.X, Y: e.Y, Z: e.Z},
		{X: e.X, Y: e.Y, Z: e.Z},
	}
	world := make([]core.Vec3, 8)
	for i, c := range corners {
		world[i] = b.Transform.TransformPoint(c)
	}
	return core.NewAABBFromPoints(world...)
}
