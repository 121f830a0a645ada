package geometry

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Sphere represents a sphere primitive: a unit-centered sphere of Radius
// in local space, placed into the scene by Transform.
type Sphere struct {
	Transform core.Transform
	Radius    float64
	Material  *material.Material
}

// NewSphere creates a new sphere centered at center with the given radius.
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{
		Transform: core.NewTransform(center, core.Vec3{}, core.NewVec3(1, 1, 1)),
		Radius:    radius,
		Material:  mat,
	}
}

// Hit tests if a ray intersects with the sphere, in the sphere's local
// space: the ray is first inverse-transformed, and the resulting hit
// point/normal are transformed back to world space.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	localOrigin := s.Transform.InverseTransformPoint(ray.Origin)
	localDir := s.Transform.InverseTransformDirection(ray.Direction)

	a := localDir.Dot(localDir)
	halfB := localOrigin.Dot(localDir)
	c := localOrigin.Dot(localOrigin) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	localPoint := localOrigin.Add(localDir.Multiply(root))
	outwardLocalNormal := localPoint.Multiply(1.0 / s.Radius)

	theta := math.Acos(-outwardLocalNormal.Y)
	phi := math.Atan2(-outwardLocalNormal.Z, outwardLocalNormal.X) + math.Pi
	uv := core.NewVec2(phi/(2.0*math.Pi), theta/math.Pi)

	hit := &material.HitRecord{
		T:        root,
		Point:    s.Transform.TransformPoint(localPoint),
		Material: s.Material,
		UV:       uv,
	}
	hit.SetFaceNormal(ray, s.Transform.TransformDirection(outwardLocalNormal).Normalize())

	return hit, true
}

// BoundingBox returns the world-space axis-aligned bounding box for this
// sphere. Rotation leaves a sphere's silhouette unchanged, so only the
// transform's position and largest scale axis matter.
func (s *Sphere) BoundingBox() core.AABB {
	scale := s.Transform.Scale()
	r := s.Radius * math.Max(scale.X, math.Max(scale.Y, scale.Z))
	extent := core.NewVec3(r, r, r)
	center := s.Transform.Position()
	return core.NewAABB(center.Subtract(extent), center.Add(extent))
}
