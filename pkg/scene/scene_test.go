package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/loaders"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  64, Height: 64, VFov: 40,
	}
}

func TestNewSceneStartsEmpty(t *testing.T) {
	s := NewScene(testCameraConfig(), SamplingConfig{SamplesPerPixel: 4})

	assert.Empty(t, s.Shapes)
	assert.Empty(t, s.Lights)
	assert.Equal(t, core.Vec3{}, s.Background)
	assert.Nil(t, s.Environment)
}

func TestAddShapeAppendsToShapes(t *testing.T) {
	s := NewScene(testCameraConfig(), SamplingConfig{})
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -2), 1, material.Dielectric(core.NewVec3(1, 0, 0), 0.5))

	s.AddShape(sphere)

	assert.Len(t, s.Shapes, 1)
	assert.Equal(t, 1, s.GetPrimitiveCount())
}

func TestAddSphereLightAddsLightAndShape(t *testing.T) {
	s := NewScene(testCameraConfig(), SamplingConfig{})

	s.AddSphereLight(core.NewVec3(0, 4, 0), 0.5, core.NewVec3(10, 10, 10))

	assert.Len(t, s.Lights, 1)
	assert.Len(t, s.Shapes, 1)
	assert.Equal(t, core.NewVec3(0, 4, 0), s.Lights[0].Center())
}

func TestAddQuadLightAddsLightAndShape(t *testing.T) {
	s := NewScene(testCameraConfig(), SamplingConfig{})

	s.AddQuadLight(core.NewVec3(-1, 5, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), core.NewVec3(15, 15, 15))

	assert.Len(t, s.Lights, 1)
	assert.Len(t, s.Shapes, 1)
	assert.Equal(t, core.NewVec3(0, 5, 0), s.Lights[0].Center())
}

func TestPreprocessBuildsBVH(t *testing.T) {
	s := NewScene(testCameraConfig(), SamplingConfig{})
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -2), 1, material.Dielectric(core.NewVec3(1, 1, 1), 0.5)))

	err := s.Preprocess()

	assert.NoError(t, err)
	assert.NotNil(t, s.BVH)
}

func TestAddShapeExplodesTriangleMeshesIntoScenePrimitives(t *testing.T) {
	s := NewScene(testCameraConfig(), SamplingConfig{})
	mat := material.Dielectric(core.NewVec3(1, 1, 1), 0.5)

	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 0),
	}
	faces := []int{0, 1, 2, 1, 3, 2}
	mesh := geometry.NewTriangleMesh(vertices, faces, mat, nil)
	s.AddShape(mesh)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -2), 1, mat))

	// AddShape explodes the mesh into its two individually-owned
	// triangles at insertion time, so s.Shapes (and the BVH built over
	// it) never holds the mesh wrapper itself.
	assert.Equal(t, 3, s.GetPrimitiveCount())
	assert.Equal(t, 3, len(s.Shapes))
	for _, shape := range s.Shapes {
		_, isMesh := shape.(*geometry.TriangleMesh)
		assert.False(t, isMesh)
	}
}

func TestNewGroundQuadCentersOnPoint(t *testing.T) {
	mat := material.Dielectric(core.NewVec3(0.5, 0.5, 0.5), 1.0)
	quad := NewGroundQuad(core.NewVec3(0, -1, 0), 10, mat)

	center := quad.Corner.Add(quad.U.Multiply(0.5)).Add(quad.V.Multiply(0.5))
	assert.InDelta(t, 0, center.X, 1e-9)
	assert.InDelta(t, -1, center.Y, 1e-9)
	assert.InDelta(t, 0, center.Z, 1e-9)
	assert.Equal(t, core.NewVec3(0, 1, 0), quad.Normal)
}

func TestSetBackgroundAndEnvironment(t *testing.T) {
	s := NewScene(testCameraConfig(), SamplingConfig{})
	s.SetBackground(core.NewVec3(0.1, 0.2, 0.3))
	assert.Equal(t, core.NewVec3(0.1, 0.2, 0.3), s.Background)

	env := NewEnvironment(&loaders.ImageData{Width: 1, Height: 1, Pixels: []core.Vec3{core.NewVec3(1, 1, 1)}})
	s.SetEnvironment(env)
	assert.Same(t, env, s.Environment)
}

func TestBackgroundColorFlatWithoutGradient(t *testing.T) {
	s := NewScene(testCameraConfig(), SamplingConfig{})
	s.SetBackground(core.NewVec3(0.1, 0.2, 0.3))

	up := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	down := core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0))
	assert.Equal(t, core.NewVec3(0.1, 0.2, 0.3), s.BackgroundColor(up))
	assert.Equal(t, core.NewVec3(0.1, 0.2, 0.3), s.BackgroundColor(down))
}

func TestBackgroundColorBlendsVerticalGradient(t *testing.T) {
	s := NewScene(testCameraConfig(), SamplingConfig{})
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1.0, 1.0, 1.0)
	s.SetBackgroundGradient(top, bottom)

	up := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	down := core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0))
	assert.Equal(t, top, s.BackgroundColor(up))
	assert.Equal(t, bottom, s.BackgroundColor(down))

	horizon := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))
	mid := s.BackgroundColor(horizon)
	assert.InDelta(t, 0.75, mid.X, 1e-9)

	// SetBackground clears a previously-set gradient.
	s.SetBackground(core.NewVec3(0, 0, 0))
	assert.Equal(t, core.Vec3{}, s.BackgroundColor(up))
}
