package geometry

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// AxisAlignment represents which axis a normal vector is aligned with.
type AxisAlignment int

const (
	NotAxisAligned AxisAlignment = iota
	XAxisAligned
	YAxisAligned
	ZAxisAligned
)

func getAxisAlignment(normal core.Vec3) AxisAlignment {
	const threshold = 0.9999
	const tolerance = 0.0001

	if math.Abs(normal.X) > threshold && math.Abs(normal.Y) < tolerance && math.Abs(normal.Z) < tolerance {
		return XAxisAligned
	}
	if math.Abs(normal.Y) > threshold && math.Abs(normal.X) < tolerance && math.Abs(normal.Z) < tolerance {
		return YAxisAligned
	}
	if math.Abs(normal.Z) > threshold && math.Abs(normal.X) < tolerance && math.Abs(normal.Y) < tolerance {
		return ZAxisAligned
	}
	return NotAxisAligned
}

func createAxisAlignedAABB(corners []core.Vec3, alignment AxisAlignment, fixedCoord float64) core.AABB {
	const epsilon = 0.001

	switch alignment {
	case XAxisAligned:
		minY, maxY := findMinMax(corners, func(v core.Vec3) float64 { return v.Y })
		minZ, maxZ := findMinMax(corners, func(v core.Vec3) float64 { return v.Z })
		return core.NewAABB(
			core.NewVec3(fixedCoord-epsilon, minY, minZ),
			core.NewVec3(fixedCoord+epsilon, maxY, maxZ),
		)
	case YAxisAligned:
		minX, maxX := findMinMax(corners, func(v core.Vec3) float64 { return v.X })
		minZ, maxZ := findMinMax(corners, func(v core.Vec3) float64 { return v.Z })
		return core.NewAABB(
			core.NewVec3(minX, fixedCoord-epsilon, minZ),
			core.NewVec3(maxX, fixedCoord+epsilon, maxZ),
		)
	case ZAxisAligned:
		minX, maxX := findMinMax(corners, func(v core.Vec3) float64 { return v.X })
		minY, maxY := findMinMax(corners, func(v core.Vec3) float64 { return v.Y })
		return core.NewAABB(
			core.NewVec3(minX, minY, fixedCoord-epsilon),
			core.NewVec3(maxX, maxY, fixedCoord+epsilon),
		)
	default:
		return core.NewAABBFromPoints(corners[0], corners[1], corners[2], corners[3])
	}
}

func findMinMax(corners []core.Vec3, accessor func(core.Vec3) float64) (float64, float64) {
	min := accessor(corners[0])
	max := min
	for i := 1; i < len(corners); i++ {
		val := accessor(corners[i])
		if val < min {
			min = val
		}
		if val > max {
			max = val
		}
	}
	return min, max
}

// Quad represents a planar parallelogram defined by a corner and two edge
// vectors, used for quad-shaped area lights.
type Quad struct {
	Corner   core.Vec3
	U        core.Vec3
	V        core.Vec3
	Normal   core.Vec3
	Material *material.Material
	D        float64
	W        core.Vec3
}

// NewQuad creates a new quad from a corner point and two edge vectors.
func NewQuad(corner, u, v core.Vec3, mat *material.Material) *Quad {
	normal := u.Cross(v).Normalize()
	d := normal.Dot(corner)

	cross := u.Cross(v)
	w := normal.Multiply(1.0 / normal.Dot(cross))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		D:        d,
		W:        w,
	}
}

// Hit tests if a ray intersects with the quad.
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)

	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		Material: q.Material,
		UV:       core.NewVec2(alpha, beta),
	}
	hit.SetFaceNormal(ray, q.Normal)

	return hit, true
}

// Area returns the quad's surface area, used by area-light sampling.
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}

// BoundingBox returns the axis-aligned bounding box for this quad.
func (q *Quad) BoundingBox() core.AABB {
	corners := []core.Vec3{
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	}

	alignment := getAxisAlignment(q.Normal)
	if alignment != NotAxisAligned {
		var fixedCoord float64
		switch alignment {
		case XAxisAligned:
			fixedCoord = corners[0].X
		case YAxisAligned:
			fixedCoord = corners[0].Y
		case ZAxisAligned:
			fixedCoord = corners[0].Z
		}
		return createAxisAlignedAABB(corners, alignment, fixedCoord)
	}

	return core.NewAABBFromPoints(corners[0], corners[1], corners[2], corners[3])
}
