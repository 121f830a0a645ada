package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

func quadMesh(mat *material.Material) *TriangleMesh {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	faces := []int{0, 1, 2, 0, 2, 3}
	return NewTriangleMesh(vertices, faces, mat, nil)
}

func TestTriangleMeshCreation(t *testing.T) {
	mesh := quadMesh(material.Dielectric(core.NewVec3(1, 1, 1), 1))
	assert.Equal(t, 2, mesh.TriangleCount())
}

func TestTriangleMeshHit(t *testing.T) {
	mesh := quadMesh(material.Dielectric(core.NewVec3(1, 1, 1), 1))
	ray := core.NewRay(core.NewVec3(0.5, 0.5, 5), core.NewVec3(0, 0, -1))

	hit, isHit := mesh.Hit(ray, 0.001, 1000.0)
	assert.True(t, isHit)
	assert.InDelta(t, 5.0, hit.T, 1e-9)
}

func TestTriangleMeshMiss(t *testing.T) {
	mesh := quadMesh(material.Dielectric(core.NewVec3(1, 1, 1), 1))
	ray := core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(0, 0, -1))

	_, isHit := mesh.Hit(ray, 0.001, 1000.0)
	assert.False(t, isHit)
}

func TestTriangleMeshBoundingBox(t *testing.T) {
	mesh := quadMesh(material.Dielectric(core.NewVec3(1, 1, 1), 1))
	box := mesh.BoundingBox()

	assert.InDelta(t, 0.0, box.Min.X, 1e-9)
	assert.InDelta(t, 1.0, box.Max.X, 1e-9)
}

func TestTriangleMeshInvalidFaceIndexPanics(t *testing.T) {
	vertices := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}
	faces := []int{0, 1, 5}

	assert.Panics(t, func() {
		NewTriangleMesh(vertices, faces, material.Dielectric(core.NewVec3(1, 1, 1), 1), nil)
	})
}

func TestTriangleMeshTrianglesShareTransformAndAreIndividuallyOwned(t *testing.T) {
	mat := material.Dielectric(core.NewVec3(1, 1, 1), 1)
	transform := core.NewTransform(core.NewVec3(10, 0, 0), core.Vec3{}, core.NewVec3(1, 1, 1))

	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 0),
	}
	faces := []int{0, 1, 2, 0, 2, 3}
	mesh := NewTriangleMesh(vertices, faces, mat, &TriangleMeshOptions{Transform: &transform})

	triangles := mesh.Triangles()
	assert.Equal(t, 2, len(triangles))

	// A local-space ray that would hit the untransformed mesh instead
	// hits it after the +10 on X shift is accounted for.
	ray := core.NewRay(core.NewVec3(10.5, 0.5, 5), core.NewVec3(0, 0, -1))
	hit, isHit := triangles[0].Hit(ray, 0.001, 1000.0)
	if !isHit {
		hit, isHit = triangles[1].Hit(ray, 0.001, 1000.0)
	}
	assert.True(t, isHit)
	assert.InDelta(t, 5.0, hit.T, 1e-9)
}
