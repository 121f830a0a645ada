package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformIdentityRoundTrip(t *testing.T) {
	tr := Identity()
	p := NewVec3(1, 2, 3)
	assert.Equal(t, p, tr.TransformPoint(p))
	assert.Equal(t, p, tr.InverseTransformPoint(p))
}

func TestTransformTranslation(t *testing.T) {
	tr := NewTransform(NewVec3(10, 0, 0), Vec3{}, NewVec3(1, 1, 1))
	p := NewVec3(0, 0, 0)
	assert.Equal(t, NewVec3(10, 0, 0), tr.TransformPoint(p))
	assert.Equal(t, NewVec3(-10, 0, 0), tr.InverseTransformPoint(p))
}

func TestTransformRotationPreservesLength(t *testing.T) {
	tr := NewTransform(Vec3{}, NewVec3(0, math.Pi/2, 0), NewVec3(1, 1, 1))
	d := NewVec3(1, 0, 0)
	rotated := tr.TransformDirection(d)
	assert.InDelta(t, 1.0, rotated.Length(), 1e-9)
	assert.InDelta(t, 0, rotated.X, 1e-6)
	assert.InDelta(t, -1, rotated.Z, 1e-6)
}

func TestTransformScaleRoundTrip(t *testing.T) {
	tr := NewTransform(NewVec3(1, 2, 3), NewVec3(0.3, -0.2, 1.1), NewVec3(2, 0.5, 3))
	p := NewVec3(5, -1, 2)

	world := tr.TransformPoint(p)
	back := tr.InverseTransformPoint(world)

	assert.InDelta(t, p.X, back.X, 1e-6)
	assert.InDelta(t, p.Y, back.Y, 1e-6)
	assert.InDelta(t, p.Z, back.Z, 1e-6)
}
