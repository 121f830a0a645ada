// Package brdf evaluates, samples, and scores the Cook-Torrance microfacet
// BRDF used by the integrator for both direct and indirect lighting.
package brdf

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Result packages the evaluated BRDF lobe and its constituent terms: the
// combined reflectance, the Fresnel term alone (needed by callers that
// demote diffuse contribution for partially-specular surfaces), and the
// separate diffuse/specular components.
type Result struct {
	Color    core.Vec3
	Fresnel  core.Vec3
	Diffuse  core.Vec3
	Specular core.Vec3
}

func alpha2FromRoughness(roughness float64) float64 {
	roughness = math.Max(0.001, math.Min(1.0, roughness))
	return roughness * roughness * roughness * roughness
}

// g1 is the Smith masking/shadowing term for a single direction.
func g1(dot, alpha2 float64) float64 {
	return 2 * dot / (dot + math.Sqrt(alpha2+(1-alpha2)*dot*dot))
}

// smithG is the combined geometry term over both view and light.
func smithG(nDotL, nDotV, alpha2 float64) float64 {
	return g1(nDotL, alpha2) * g1(nDotV, alpha2)
}

// ggxD is the GGX (Trowbridge-Reitz) normal distribution term.
func ggxD(alpha2, hDotN float64) float64 {
	denom := math.Pi * math.Pow(hDotN*hDotN*(alpha2-1)+1, 2)
	return alpha2 / denom
}

// schlickFresnel evaluates the Schlick Fresnel approximation given the
// normal-incidence reflectance F0.
func schlickFresnel(hDotV float64, f0 core.Vec3) core.Vec3 {
	t := math.Pow(1-hDotV, 5)
	return f0.Add(core.NewVec3(1, 1, 1).Subtract(f0).Multiply(t))
}

// Evaluate computes the Cook-Torrance BRDF for the given unit normal,
// view, and light directions and material properties.
func Evaluate(normal, view, light core.Vec3, uv core.Vec2, point core.Vec3, mat *material.Material) Result {
	roughness := mat.GetScalar(material.Roughness, 0.5)
	ior := mat.GetScalar(material.RefractionIndex, 1.0)
	metallic := mat.GetScalar(material.Metallic, 0.0)
	color := mat.SurfaceColor(uv, point)

	h := light.Add(view).Normalize()
	alpha2 := alpha2FromRoughness(roughness)

	hDotN := math.Max(h.Dot(normal), 0)
	vDotN := math.Max(view.Dot(normal), 0)
	lDotN := math.Max(light.Dot(normal), 0)
	hDotV := math.Max(view.Dot(h), 0)

	f0Scalar := math.Abs((1 - ior) / (1 + ior))
	f0Scalar *= f0Scalar
	f0 := core.NewVec3(f0Scalar, f0Scalar, f0Scalar)
	f0 = lerp(f0, color, metallic)

	fresnel := schlickFresnel(hDotV, f0)

	specularTerm := fresnel.Multiply(smithG(lDotN, vDotN, alpha2) * ggxD(alpha2, hDotN) / math.Max(vDotN*lDotN*4, 1e-6))
	kd := core.NewVec3(1, 1, 1).Subtract(fresnel).Multiply(1 - metallic)
	diffuse := color.MultiplyVec(kd).Multiply(1 / math.Pi)

	return Result{
		Color:    diffuse.Add(specularTerm),
		Fresnel:  fresnel,
		Diffuse:  diffuse,
		Specular: specularTerm,
	}
}

// SampleMicrofacet importance-samples a GGX micronormal around normal from
// two uniform [0,1) samples and the material's roughness.
func SampleMicrofacet(normal core.Vec3, mat *material.Material, u, v float64) core.Vec3 {
	roughness := mat.GetScalar(material.Roughness, 0.5)
	alpha2 := alpha2FromRoughness(roughness)

	theta := math.Acos(math.Sqrt((1 - u) / ((alpha2-1)*u + 1)))
	phi := 2 * math.Pi * v

	local := core.SphericalToCartesian(theta, phi)
	return core.AlignToNormal(local, normal).Normalize()
}

// PDF returns the probability density of SampleMicrofacet producing
// micronormal h, given view direction view.
func PDF(normal, view, h core.Vec3, mat *material.Material) float64 {
	roughness := math.Max(0.001, math.Min(1.0, mat.GetScalar(material.Roughness, 0.5)))
	alpha := roughness * roughness
	alpha2 := alpha * alpha

	noH := normal.Dot(h)
	voH := view.Dot(h)
	if voH <= 0 {
		return 0
	}
	return ggxD(alpha2, noH) * noH / (4 * voH)
}

func lerp(a, b core.Vec3, t float64) core.Vec3 {
	return a.Multiply(1 - t).Add(b.Multiply(t))
}
