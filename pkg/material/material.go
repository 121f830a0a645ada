package material

import "github.com/df07/go-progressive-raytracer/pkg/core"

// Type discriminates how a Material's properties should be interpreted.
type Type int

const (
	None Type = iota
	BlinnPhong
	PBR
	Light
)

// Recognised property keys. Unknown keys are accepted and ignored by the
// BRDF evaluator; missing keys fall back to a caller-supplied default.
const (
	Color            = "Color"
	Emissive         = "Emissive"
	Roughness        = "Roughness"
	Metallic         = "Metallic"
	RefractionIndex  = "RefractionIndex"
	Transmission     = "Transmission"
	SpecularExponent = "SpecularExponent"
)

// Material is a discriminant-tagged property bag: a vector-valued map and
// a scalar-valued map keyed by name. This replaces a per-material-kind
// struct/interface hierarchy with one shape that every shading path reads
// uniformly, with caller-supplied defaults standing in for absent keys.
type Material struct {
	Tag      Type
	vectors  map[string]core.Vec3
	scalars  map[string]float64
	ColorMap ColorSource // optional spatially-varying override for Color
}

// newMaterial returns an empty bag with the given tag.
func newMaterial(tag Type) *Material {
	return &Material{
		Tag:     tag,
		vectors: make(map[string]core.Vec3),
		scalars: make(map[string]float64),
	}
}

// GetVector returns the vector stored at key, or def if key is absent.
func (m *Material) GetVector(key string, def core.Vec3) core.Vec3 {
	if v, ok := m.vectors[key]; ok {
		return v
	}
	return def
}

// GetScalar returns the scalar stored at key, or def if key is absent.
func (m *Material) GetScalar(key string, def float64) float64 {
	if v, ok := m.scalars[key]; ok {
		return v
	}
	return def
}

// SetVector stores a vector-valued property.
func (m *Material) SetVector(key string, v core.Vec3) {
	m.vectors[key] = v
}

// SetScalar stores a scalar-valued property.
func (m *Material) SetScalar(key string, v float64) {
	m.scalars[key] = v
}

// SurfaceColor resolves the Color property at a UV/point, preferring the
// spatially-varying ColorMap when one is set.
func (m *Material) SurfaceColor(uv core.Vec2, point core.Vec3) core.Vec3 {
	if m.ColorMap != nil {
		return m.ColorMap.Evaluate(uv, point)
	}
	return m.GetVector(Color, core.NewVec3(1, 1, 1))
}

// IsEmissive reports whether this material's tag marks it as a light.
func (m *Material) IsEmissive() bool {
	return m.Tag == Light
}

// Emit returns the material's emitted radiance, zero for non-light
// materials.
func (m *Material) Emit() core.Vec3 {
	if !m.IsEmissive() {
		return core.Vec3{}
	}
	return m.GetVector(Emissive, core.Vec3{})
}

// NewPBR builds a physically-based material with the given base color,
// emission, roughness, metallic, refractive index, and transmission.
func NewPBR(color, emissive core.Vec3, roughness, metallic, refractionIndex, transmission float64) *Material {
	m := newMaterial(PBR)
	m.SetVector(Color, color)
	m.SetVector(Emissive, emissive)
	m.SetScalar(Roughness, roughness)
	m.SetScalar(Metallic, metallic)
	m.SetScalar(RefractionIndex, refractionIndex)
	m.SetScalar(Transmission, transmission)
	return m
}

// NewLight builds an emissive material carrying only an Emissive color.
func NewLight(emissive core.Vec3) *Material {
	m := newMaterial(Light)
	m.SetVector(Emissive, emissive)
	return m
}

// Metal returns a fully metallic, opaque white material at the given
// roughness.
func Metal(roughness float64) *Material {
	return NewPBR(core.NewVec3(1, 1, 1), core.Vec3{}, roughness, 1, 1, 0)
}

// Glass returns a smooth, fully transmissive dielectric at IoR 1.5.
func Glass() *Material {
	return NewPBR(core.Vec3{}, core.Vec3{}, 0, 0, 1.5, 1)
}

// Mirror returns a perfectly smooth metallic white material.
func Mirror() *Material {
	return NewPBR(core.NewVec3(1, 1, 1), core.Vec3{}, 0, 1, 1, 0)
}

// Dielectric returns an opaque, non-metallic material of the given color
// and roughness. Generalizes the original's WhiteDielectric/RedDielectric
// factories into one parameterised constructor.
func Dielectric(color core.Vec3, roughness float64) *Material {
	return NewPBR(color, core.Vec3{}, roughness, 0, 1, 0)
}
