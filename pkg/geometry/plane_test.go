package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

func TestPlaneHitBasicIntersection(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.Dielectric(core.NewVec3(1, 1, 1), 1))
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	assert.True(t, isHit)
	assert.InDelta(t, 5.0, hit.T, 1e-9)
	assert.InDelta(t, 1.0, hit.Normal.Y, 1e-9)
}

func TestPlaneHitParallelMiss(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.Dielectric(core.NewVec3(1, 1, 1), 1))
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(1, 0, 0))

	_, isHit := plane.Hit(ray, 0.001, 1000.0)
	assert.False(t, isHit)
}

func TestPlaneHitBehindRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.Dielectric(core.NewVec3(1, 1, 1), 1))
	ray := core.NewRay(core.NewVec3(0, -5, 0), core.NewVec3(0, -1, 0))

	_, isHit := plane.Hit(ray, 0.001, 1000.0)
	assert.False(t, isHit)
}

func TestPlaneFaceNormalFlipsFromBelow(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.Dielectric(core.NewVec3(1, 1, 1), 1))
	ray := core.NewRay(core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0))

	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	assert.True(t, isHit)
	assert.False(t, hit.FrontFace)
	assert.InDelta(t, -1.0, hit.Normal.Y, 1e-9)
}

func TestPlaneFollowsTransformPositionButNotRotation(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.Dielectric(core.NewVec3(1, 1, 1), 1))
	plane.Transform = core.NewTransform(core.NewVec3(0, 2, 0), core.NewVec3(0, 0, math.Pi/2), core.NewVec3(1, 1, 1))

	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	assert.True(t, isHit)
	assert.InDelta(t, 3.0, hit.T, 1e-9)

	// Normal is a raw world-space field, unaffected by the transform's
	// rotation (matches the original's OPlane behavior).
	assert.InDelta(t, 1.0, plane.Normal.Y, 1e-9)
}
