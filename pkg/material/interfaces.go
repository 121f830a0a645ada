package material

import "github.com/df07/go-progressive-raytracer/pkg/core"

// HitRecord carries everything the integrator needs about a ray-primitive
// intersection: world-space position, unit normal oriented against the ray
// (see SetFaceNormal), the material of the hit primitive, and distance
// along the ray.
type HitRecord struct {
	Point     core.Vec3
	Normal    core.Vec3
	UV        core.Vec2
	T         float64
	FrontFace bool
	Material  *Material
}

// SetFaceNormal orients Normal against the ray direction and records
// whether the ray hit the front or back face, flipping outwardNormal when
// the ray originates inside the volume.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
