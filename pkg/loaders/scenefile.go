package loaders

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/material"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// sceneFile is the on-disk YAML shape for a declarative scene
// description: a camera, a sampling configuration, a material palette
// keyed by name, and a flat list of shapes/lights referencing those
// materials by name.
type sceneFile struct {
	Camera struct {
		Center      [3]float64 `yaml:"center"`
		LookAt      [3]float64 `yaml:"look_at"`
		Up          [3]float64 `yaml:"up"`
		Width       int        `yaml:"width"`
		Height      int        `yaml:"height"`
		AspectRatio float64    `yaml:"aspect_ratio"`
		VFov        float64    `yaml:"vfov"`
	} `yaml:"camera"`

	Sampling struct {
		SamplesPerPixel           int     `yaml:"samples_per_pixel"`
		MaxDepth                  int     `yaml:"max_depth"`
		RussianRouletteMinBounces int     `yaml:"russian_roulette_min_bounces"`
		AdaptiveMinSamples        float64 `yaml:"adaptive_min_samples"`
		AdaptiveThreshold         float64 `yaml:"adaptive_threshold"`
	} `yaml:"sampling"`

	Background       *[3]float64 `yaml:"background"`
	BackgroundTop    *[3]float64 `yaml:"background_top"`    // with background_bottom, selects a vertical gradient instead
	BackgroundBottom *[3]float64 `yaml:"background_bottom"`
	Enviroment       string      `yaml:"environment"` // path to an equirectangular HDR/LDR image

	Materials map[string]struct {
		Color           [3]float64 `yaml:"color"`
		Emissive        [3]float64 `yaml:"emissive"`
		Roughness       float64    `yaml:"roughness"`
		Metallic        float64    `yaml:"metallic"`
		RefractionIndex float64    `yaml:"refraction_index"`
		Transmission    float64    `yaml:"transmission"`
	} `yaml:"materials"`

	Shapes []struct {
		Type     string     `yaml:"type"` // sphere, quad, mesh
		Material string     `yaml:"material"`
		Center   [3]float64 `yaml:"center"`
		Radius   float64    `yaml:"radius"`
		Corner   [3]float64 `yaml:"corner"`
		U        [3]float64 `yaml:"u"`
		V        [3]float64 `yaml:"v"`
		Mesh     string     `yaml:"mesh"` // path to an OBJ file
	} `yaml:"shapes"`

	Lights []struct {
		Type     string     `yaml:"type"` // sphere, quad
		Center   [3]float64 `yaml:"center"`
		Radius   float64    `yaml:"radius"`
		Corner   [3]float64 `yaml:"corner"`
		U        [3]float64 `yaml:"u"`
		V        [3]float64 `yaml:"v"`
		Emission [3]float64 `yaml:"emission"`
	} `yaml:"lights"`
}

func toVec3(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

// LoadScene reads a YAML scene description and builds a scene.Scene from
// it, resolving material references and loading any referenced OBJ
// meshes and environment image relative to the working directory. This
// is additive to the programmatic scene.Scene builder API: it is one
// more caller exercising the same Scene/Camera/SamplingConfig contracts.
func LoadScene(filename string) (*scene.Scene, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var sf sceneFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}

	cameraConfig := scene.CameraConfig{
		Center:      toVec3(sf.Camera.Center),
		LookAt:      toVec3(sf.Camera.LookAt),
		Up:          toVec3(sf.Camera.Up),
		Width:       sf.Camera.Width,
		Height:      sf.Camera.Height,
		AspectRatio: sf.Camera.AspectRatio,
		VFov:        sf.Camera.VFov,
	}
	samplingConfig := scene.SamplingConfig{
		Width:                     sf.Camera.Width,
		Height:                    sf.Camera.Height,
		SamplesPerPixel:           sf.Sampling.SamplesPerPixel,
		MaxDepth:                  sf.Sampling.MaxDepth,
		RussianRouletteMinBounces: sf.Sampling.RussianRouletteMinBounces,
		AdaptiveMinSamples:        sf.Sampling.AdaptiveMinSamples,
		AdaptiveThreshold:         sf.Sampling.AdaptiveThreshold,
	}

	s := scene.NewScene(cameraConfig, samplingConfig)
	if sf.BackgroundTop != nil && sf.BackgroundBottom != nil {
		s.SetBackgroundGradient(toVec3(*sf.BackgroundTop), toVec3(*sf.BackgroundBottom))
	} else if sf.Background != nil {
		s.SetBackground(toVec3(*sf.Background))
	}
	if sf.Enviroment != "" {
		img, err := LoadImage(sf.Enviroment)
		if err != nil {
			return nil, fmt.Errorf("failed to load environment map: %w", err)
		}
		s.SetEnvironment(scene.NewEnvironment(img))
	}

	materials := make(map[string]*material.Material, len(sf.Materials))
	for name, m := range sf.Materials {
		materials[name] = material.NewPBR(toVec3(m.Color), toVec3(m.Emissive), m.Roughness, m.Metallic, m.RefractionIndex, m.Transmission)
	}

	for i, sh := range sf.Shapes {
		switch sh.Type {
		case "sphere":
			mat, err := resolveMaterial(materials, sh.Material, i)
			if err != nil {
				return nil, err
			}
			s.AddShape(geometry.NewSphere(toVec3(sh.Center), sh.Radius, mat))

		case "quad":
			mat, err := resolveMaterial(materials, sh.Material, i)
			if err != nil {
				return nil, err
			}
			s.AddShape(geometry.NewQuad(toVec3(sh.Corner), toVec3(sh.U), toVec3(sh.V), mat))

		case "mesh":
			mat, err := resolveMaterial(materials, sh.Material, i)
			if err != nil {
				return nil, err
			}
			mesh, err := LoadMesh(sh.Mesh, mat)
			if err != nil {
				return nil, fmt.Errorf("shape %d: %w", i, err)
			}
			s.AddShape(mesh)

		default:
			return nil, fmt.Errorf("shape %d: unsupported shape type %q", i, sh.Type)
		}
	}

	for i, l := range sf.Lights {
		switch l.Type {
		case "sphere":
			s.AddSphereLight(toVec3(l.Center), l.Radius, toVec3(l.Emission))
		case "quad":
			s.AddQuadLight(toVec3(l.Corner), toVec3(l.U), toVec3(l.V), toVec3(l.Emission))
		default:
			return nil, fmt.Errorf("light %d: unsupported light type %q", i, l.Type)
		}
	}

	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("failed to preprocess scene: %w", err)
	}

	return s, nil
}

func resolveMaterial(materials map[string]*material.Material, name string, shapeIndex int) (*material.Material, error) {
	mat, ok := materials[name]
	if !ok {
		return nil, fmt.Errorf("shape %d: undefined material %q", shapeIndex, name)
	}
	return mat, nil
}
