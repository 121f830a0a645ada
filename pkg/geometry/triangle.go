package geometry

import (
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices in its
// own local space, placed into the scene by Transform, with optional
// per-vertex normals (smooth shading) and UVs.
type Triangle struct {
	Transform     core.Transform
	V0, V1, V2    core.Vec3 // local-space vertices
	N0, N1, N2    core.Vec3 // local-space per-vertex normals, used when smooth is true
	UV0, UV1, UV2 core.Vec2
	hasUVs        bool
	smooth        bool
	Material      *material.Material
	normal        core.Vec3 // local flat face normal, always computed
	bbox          core.AABB // world-space bounding box
}

// NewTriangle creates a flat-shaded triangle from three world-space
// vertices, with an identity transform.
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	return newTriangle(core.Identity(), v0, v1, v2, core.Vec3{}, core.Vec3{}, core.Vec3{}, false, core.Vec2{}, core.Vec2{}, core.Vec2{}, false, mat)
}

// NewTriangleWithUVs creates a flat-shaded triangle with per-vertex UVs,
// world-space vertices, and an identity transform.
func NewTriangleWithUVs(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2, mat *material.Material) *Triangle {
	return newTriangle(core.Identity(), v0, v1, v2, core.Vec3{}, core.Vec3{}, core.Vec3{}, false, uv0, uv1, uv2, true, mat)
}

// NewTriangleSmooth creates a smooth-shaded triangle with per-vertex
// normals interpolated by barycentric coordinates across the face,
// world-space vertices, and an identity transform.
func NewTriangleSmooth(v0, v1, v2, n0, n1, n2 core.Vec3, mat *material.Material) *Triangle {
	return newTriangle(core.Identity(), v0, v1, v2, n0, n1, n2, true, core.Vec2{}, core.Vec2{}, core.Vec2{}, false, mat)
}

// newTriangleTransformed creates a triangle from vertices expressed in the
// given transform's local space, combining smooth normals and UVs freely
// (unlike the teacher's original mesh path, which silently dropped UVs
// whenever smooth normals were also present). Used by TriangleMesh so every
// triangle sharing a mesh can share one Transform.
func newTriangleTransformed(transform core.Transform, v0, v1, v2, n0, n1, n2 core.Vec3, hasNormals bool, uv0, uv1, uv2 core.Vec2, hasUVs bool, mat *material.Material) *Triangle {
	return newTriangle(transform, v0, v1, v2, n0, n1, n2, hasNormals, uv0, uv1, uv2, hasUVs, mat)
}

func newTriangle(transform core.Transform, v0, v1, v2, n0, n1, n2 core.Vec3, smooth bool, uv0, uv1, uv2 core.Vec2, hasUVs bool, mat *material.Material) *Triangle {
	t := &Triangle{
		Transform: transform,
		V0:        v0, V1: v1, V2: v2,
		UV0: uv0, UV1: uv1, UV2: uv2, hasUVs: hasUVs,
		Material: mat,
	}
	if smooth {
		t.N0, t.N1, t.N2 = n0.Normalize(), n1.Normalize(), n2.Normalize()
		t.smooth = true
	}
	t.computeNormal()
	t.computeBoundingBox()
	return t
}

func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

func (t *Triangle) computeBoundingBox() {
	world0 := t.Transform.TransformPoint(t.V0)
	world1 := t.Transform.TransformPoint(t.V1)
	world2 := t.Transform.TransformPoint(t.V2)
	t.bbox = core.NewAABBFromPoints(world0, world1, world2)
}

// Hit tests if a ray intersects with the triangle using Moller-Trumbore,
// in the triangle's local space: the ray is first inverse-transformed,
// and the resulting hit point/normal are transformed back to world space.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	const epsilon = 1e-7

	localOrigin := t.Transform.InverseTransformPoint(ray.Origin)
	localDir := t.Transform.InverseTransformDirection(ray.Direction)

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := localDir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := localOrigin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * localDir.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return nil, false
	}

	localHit := localOrigin.Add(localDir.Multiply(tHit))
	w := 1.0 - u - v

	var uv core.Vec2
	if t.hasUVs {
		uv = t.UV0.Multiply(w).Add(t.UV1.Multiply(u)).Add(t.UV2.Multiply(v))
	} else {
		uv = core.NewVec2(u, v)
	}

	localNormal := t.normal
	if t.smooth {
		localNormal = t.N0.Multiply(w).Add(t.N1.Multiply(u)).Add(t.N2.Multiply(v)).Normalize()
	}

	hit := &material.HitRecord{
		T:        tHit,
		Point:    t.Transform.TransformPoint(localHit),
		Material: t.Material,
		UV:       uv,
	}
	hit.SetFaceNormal(ray, t.Transform.TransformDirection(localNormal).Normalize())

	return hit, true
}

// BoundingBox returns the world-space axis-aligned bounding box for this
// triangle.
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// GetNormal returns the triangle's world-space flat face normal.
func (t *Triangle) GetNormal() core.Vec3 {
	return t.Transform.TransformDirection(t.normal).Normalize()
}
