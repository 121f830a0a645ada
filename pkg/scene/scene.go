package scene

import (
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/lights"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Scene holds everything needed to render a frame: the camera, the
// primitives and lights that populate it, the acceleration structure
// built over them, and the sampling configuration. Shapes, lights, and
// the BVH are treated as read-only once Preprocess has run.
type Scene struct {
	Camera         *Camera
	CameraConfig   CameraConfig
	Shapes         []geometry.Shape
	Lights         []lights.Light
	SamplingConfig SamplingConfig
	BVH            *geometry.BVH
	Environment    *Environment
	Background     core.Vec3

	backgroundTop    *core.Vec3 // non-nil when a vertical gradient is active
	backgroundBottom core.Vec3
}

// SamplingConfig controls the integrator's per-pixel sampling behavior.
type SamplingConfig struct {
	Width                     int     // Image width
	Height                    int     // Image height
	SamplesPerPixel           int     // Number of rays per pixel
	MaxDepth                  int     // Maximum ray bounce depth
	RussianRouletteMinBounces int     // Minimum bounces before Russian Roulette can activate
	AdaptiveMinSamples        float64 // Minimum samples as fraction of max samples (0.0-1.0)
	AdaptiveThreshold         float64 // Relative error threshold for adaptive convergence (0.01 = 1%)
}

// NewScene builds an empty scene with its camera constructed from
// cameraConfig.
func NewScene(cameraConfig CameraConfig, samplingConfig SamplingConfig) *Scene {
	return &Scene{
		Camera:         NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		Background:     core.NewVec3(0, 0, 0),
	}
}

// NewGroundQuad creates a large horizontal quad centered at the given
// point, normal pointing up (0,1,0), to stand in for an infinite ground
// plane.
func NewGroundQuad(center core.Vec3, size float64, mat *material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}

// Preprocess builds the BVH over all shapes. It must be called once,
// after every Add* call and before rendering.
func (s *Scene) Preprocess() error {
	s.BVH = geometry.NewBVH(s.Shapes)
	return nil
}

// SetEnvironment installs an equirectangular environment map sampled by
// rays that miss all geometry, in place of Background.
func (s *Scene) SetEnvironment(env *Environment) {
	s.Environment = env
}

// SetBackground sets the flat color returned by missed rays when no
// environment map is set. It also clears any gradient set by
// SetBackgroundGradient.
func (s *Scene) SetBackground(color core.Vec3) {
	s.Background = color
	s.backgroundTop = nil
}

// SetBackgroundGradient replaces the flat background with a vertical
// gradient between bottom (ray direction Y = -1) and top (Y = +1),
// matching the teacher's backgroundGradient blend.
func (s *Scene) SetBackgroundGradient(top, bottom core.Vec3) {
	s.backgroundTop = &top
	s.backgroundBottom = bottom
}

// BackgroundColor returns the color a ray that hits no geometry and no
// environment map should return: the vertical gradient between
// backgroundTop/backgroundBottom by ray.Direction.Y when a gradient is
// set, otherwise the flat Background color.
func (s *Scene) BackgroundColor(ray core.Ray) core.Vec3 {
	if s.backgroundTop == nil {
		return s.Background
	}
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return s.backgroundBottom.Multiply(1.0 - t).Add(s.backgroundTop.Multiply(t))
}

// AddShape appends a primitive to the scene. A *geometry.TriangleMesh is
// exploded into its individually-owned triangles rather than kept as one
// opaque shape, so the scene's BVH leaves are the actual primitive set.
func (s *Scene) AddShape(shape geometry.Shape) {
	if mesh, ok := shape.(*geometry.TriangleMesh); ok {
		s.Shapes = append(s.Shapes, mesh.Triangles()...)
		return
	}
	s.Shapes = append(s.Shapes, shape)
}

// AddSphereLight adds a spherical area light to the scene.
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) {
	sphereLight := lights.NewSphereLight(center, radius, emission)
	s.Lights = append(s.Lights, sphereLight)
	s.Shapes = append(s.Shapes, sphereLight.Sphere)
}

// AddQuadLight adds a rectangular area light to the scene.
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	quadLight := lights.NewQuadLight(corner, u, v, emission)
	s.Lights = append(s.Lights, quadLight)
	s.Shapes = append(s.Shapes, quadLight.Quad)
}

// GetPrimitiveCount returns the total number of individually
// intersectable primitives in the scene. AddShape already explodes
// triangle meshes at insertion time, so s.Shapes holds exactly the
// scene's primitive set.
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
