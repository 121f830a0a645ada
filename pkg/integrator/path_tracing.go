package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/brdf"
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/lights"
	"github.com/df07/go-progressive-raytracer/pkg/material"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// epsilon offsets ray origins off the surface they left, along the
// geometric normal, to avoid immediate self-intersection.
const epsilon = 1e-6

// PathTracer is a unidirectional Monte Carlo path tracer: direct
// lighting by explicit light sampling, indirect lighting by BRDF
// importance sampling, combined without multiple-importance-sampling
// weighting (each light is visited once per path, so there is no
// competing direct/indirect estimator to weight between).
type PathTracer struct {
	Config Config
}

// NewPathTracer creates a path tracer with the given configuration.
func NewPathTracer(config Config) *PathTracer {
	return &PathTracer{Config: config}
}

// RayColor is the integrator's entry point, `light(ray)`.
func (pt *PathTracer) RayColor(ray core.Ray, scn *scene.Scene, rng *rand.Rand) core.Vec3 {
	hit, ok := scn.BVH.Hit(ray, epsilon, math.Inf(1))
	if !ok {
		return pt.missColor(ray, scn)
	}

	if hit.Material.Tag == material.Light {
		return hit.Material.Emit()
	}

	direct := pt.directLighting(ray, hit, scn, rng)
	indirect := pt.indirectLighting(ray, hit, scn, rng)
	return direct.Add(indirect)
}

// missColor returns the environment sample for a ray that hits no
// geometry, or the flat background color if no environment is set.
func (pt *PathTracer) missColor(ray core.Ray, scn *scene.Scene) core.Vec3 {
	if scn.Environment != nil {
		return scn.Environment.Sample(ray.Direction)
	}
	return scn.BackgroundColor(ray)
}

// directLighting sums the direct contribution of every light in the
// scene, each sampled independently.
func (pt *PathTracer) directLighting(ray core.Ray, hit *material.HitRecord, scn *scene.Scene, rng *rand.Rand) core.Vec3 {
	view := ray.Direction.Negate().Normalize()
	total := core.Vec3{}

	for _, light := range scn.Lights {
		total = total.Add(pt.sampleLight(light, view, hit, scn, rng))
	}

	return total
}

func (pt *PathTracer) sampleLight(light lights.Light, view core.Vec3, hit *material.HitRecord, scn *scene.Scene, rng *rand.Rand) core.Vec3 {
	if !pt.Config.DirectSampling {
		return pt.pointLightFallback(light, view, hit)
	}

	n := pt.Config.DirectSamples
	if n < 1 {
		n = 1
	}

	sum := core.Vec3{}
	for i := 0; i < n; i++ {
		dir := light.SampleDirection(hit.Point, rng.Float64(), rng.Float64())

		shadowRay := core.NewRay(hit.Point, dir)
		lightHit, hitLight := light.Hit(shadowRay, epsilon, math.Inf(1))
		if !hitLight {
			continue
		}

		attenuation := 1.0
		if pt.Config.Shadows {
			origin := hit.Point.Add(hit.Normal.Multiply(epsilon))
			occRay := core.NewRay(origin, dir)
			if occluder, blocked := scn.BVH.Hit(occRay, epsilon, lightHit.T-epsilon); blocked {
				if !pt.Config.Translucency {
					continue
				}
				transmission := occluder.Material.GetScalar(material.Transmission, 0)
				attenuation = 1 - transmission
				if attenuation <= 0 {
					continue
				}
			}
		}

		cosSurface := dir.Dot(hit.Normal)
		if cosSurface <= 0 {
			continue
		}

		cosLight := math.Max(-dir.Dot(lightHit.Normal), 0)
		if cosLight <= 0 {
			continue
		}

		radiance := light.Color().Multiply(light.Area() * cosLight / (lightHit.T * lightHit.T) * attenuation)

		res := brdf.Evaluate(hit.Normal, view, dir, hit.UV, hit.Point, hit.Material)
		sum = sum.Add(res.Diffuse.MultiplyVec(radiance).Multiply(cosSurface))
	}

	return sum.Multiply(1.0 / float64(n))
}

// pointLightFallback evaluates a light as a point source at its
// center, with simple inverse-square attenuation and the surface's
// BRDF response to that direction, used when direct sampling is
// disabled.
func (pt *PathTracer) pointLightFallback(light lights.Light, view core.Vec3, hit *material.HitRecord) core.Vec3 {
	toLight := light.Center().Subtract(hit.Point)
	distance := toLight.Length()
	if distance <= 0 {
		return core.Vec3{}
	}
	dir := toLight.Normalize()

	cosSurface := math.Max(dir.Dot(hit.Normal), 0)
	if cosSurface <= 0 {
		return core.Vec3{}
	}

	radiance := light.Color().Multiply(light.Area() / (distance * distance))
	res := brdf.Evaluate(hit.Normal, view, dir, hit.UV, hit.Point, hit.Material)
	return res.Color.MultiplyVec(radiance).Multiply(cosSurface)
}

// indirectLighting draws N_i micronormal samples from the BRDF and
// recurses along each reflected direction.
func (pt *PathTracer) indirectLighting(ray core.Ray, hit *material.HitRecord, scn *scene.Scene, rng *rand.Rand) core.Vec3 {
	if !pt.Config.IndirectSampling {
		return core.Vec3{}
	}

	n := pt.Config.IndirectSamples
	if n < 1 {
		n = 1
	}

	view := ray.Direction.Negate().Normalize()
	sum := core.Vec3{}

	for i := 0; i < n; i++ {
		h := brdf.SampleMicrofacet(hit.Normal, hit.Material, rng.Float64(), rng.Float64())
		newDir := ray.Direction.Reflect(h)

		pdf := brdf.PDF(hit.Normal, view, h, hit.Material)
		if pdf <= 0 {
			continue
		}

		weight := h.Dot(newDir)
		if weight <= 0 {
			continue
		}

		origin := hit.Point.Add(hit.Normal.Multiply(epsilon))
		newRay := core.NewRay(origin, newDir)
		incoming := pt.rayRecurse(newRay, scn, rng, 0)

		res := brdf.Evaluate(hit.Normal, view, newDir, hit.UV, hit.Point, hit.Material)
		sum = sum.Add(res.Color.MultiplyVec(incoming).Multiply(weight / pdf))
	}

	return sum.Multiply(1.0 / float64(n))
}

// rayRecurse walks the indirect path beyond the primary hit, applying
// Russian Roulette and folding in each subsequent hit's own direct
// lighting.
func (pt *PathTracer) rayRecurse(ray core.Ray, scn *scene.Scene, rng *rand.Rand, depth int) core.Vec3 {
	if depth >= pt.Config.RayDepth {
		return scn.BackgroundColor(ray)
	}

	hit, ok := scn.BVH.Hit(ray, epsilon, math.Inf(1))
	if !ok {
		return pt.missColor(ray, scn)
	}

	if hit.Material.Tag == material.Light {
		return core.Vec3{}
	}

	terminate, compensation := pt.russianRoulette(depth, rng.Float64())
	if terminate {
		pt.Config.logger().Debugf("rr[depth=%d]: terminated", depth)
		return core.Vec3{}
	}
	if compensation != 1.0 {
		pt.Config.logger().Debugf("rr[depth=%d]: survived, compensation=%.3f", depth, compensation)
	}

	return pt.shade(ray, hit, scn, rng, depth).Multiply(compensation)
}

// shade evaluates direct lighting at hit plus one importance-sampled
// continuation bounce, weighted by the cosine/pdf estimator.
func (pt *PathTracer) shade(ray core.Ray, hit *material.HitRecord, scn *scene.Scene, rng *rand.Rand, depth int) core.Vec3 {
	direct := pt.directLighting(ray, hit, scn, rng)

	view := ray.Direction.Negate().Normalize()
	h := brdf.SampleMicrofacet(hit.Normal, hit.Material, rng.Float64(), rng.Float64())
	newDir := ray.Direction.Reflect(h)

	pdf := brdf.PDF(hit.Normal, view, h, hit.Material)
	cos := newDir.Dot(hit.Normal)
	if pdf <= 0 || cos <= 0 {
		return direct
	}

	origin := hit.Point.Add(hit.Normal.Multiply(epsilon))
	newRay := core.NewRay(origin, newDir)
	incoming := pt.rayRecurse(newRay, scn, rng, depth+1)

	res := brdf.Evaluate(hit.Normal, view, newDir, hit.UV, hit.Point, hit.Material)
	bounce := res.Color.MultiplyVec(incoming).Multiply(cos / pdf)

	return bounce.Add(direct)
}

// russianRoulette decides whether to terminate a recursive path past
// RussianRouletteMinBounces, returning an energy-conserving
// compensation factor for surviving paths.
func (pt *PathTracer) russianRoulette(depth int, sample float64) (bool, float64) {
	if depth < pt.Config.RussianRouletteMinBounces {
		return false, 1.0
	}

	const survivalProb = 0.8
	if sample > survivalProb {
		return true, 0
	}
	return false, 1.0 / survivalProb
}
