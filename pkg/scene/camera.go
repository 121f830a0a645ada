package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// CameraConfig configures a pinhole camera: a position, orientation, and
// vertical field of view.
type CameraConfig struct {
	Center      core.Vec3
	LookAt      core.Vec3
	Up          core.Vec3
	Width       int
	Height      int     // if zero, derived from AspectRatio
	AspectRatio float64 // used only when Height is zero
	VFov        float64 // vertical field of view, in degrees
}

// Camera is a pinhole camera: every ray originates at Center and samples a
// single point on an infinitesimal aperture, so there is no depth of field.
type Camera struct {
	origin     core.Vec3
	u, v, w    core.Vec3 // right, up, and -forward (camera basis)
	halfHeight float64
	aspect     float64
	width      int
	height     int
}

// NewCamera builds a camera from a CameraConfig.
func NewCamera(config CameraConfig) *Camera {
	height := config.Height
	aspect := config.AspectRatio
	if height == 0 {
		height = int(float64(config.Width) / aspect)
	} else {
		aspect = float64(config.Width) / float64(height)
	}

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)

	return &Camera{
		origin:     config.Center,
		u:          u,
		v:          v,
		w:          w,
		halfHeight: halfHeight,
		aspect:     aspect,
		width:      config.Width,
		height:     height,
	}
}

// Width returns the render width in pixels.
func (c *Camera) Width() int { return c.width }

// Height returns the render height in pixels.
func (c *Camera) Height() int { return c.height }

// GetCameraForward returns the unit direction the camera looks along.
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// GetRay returns the camera ray through pixel (j, i) with sub-pixel offset
// (jitterX, jitterY) in [0,1); (0.5, 0.5) samples the pixel centre.
func (c *Camera) GetRay(j, i int, jitterX, jitterY float64) core.Ray {
	ssx := (2*(float64(j)+jitterX)/float64(c.width) - 1) * c.aspect
	ssy := 2*(float64(i)+jitterY)/float64(c.height) - 1

	dir := c.u.Multiply(ssx * c.halfHeight).
		Add(c.v.Multiply(ssy * c.halfHeight)).
		Subtract(c.w)

	return core.NewRay(c.origin, dir.Normalize())
}

// SampleRay returns a jittered ray through pixel (j, i) for supersampling.
func (c *Camera) SampleRay(j, i int, rng *rand.Rand) core.Ray {
	return c.GetRay(j, i, rng.Float64(), rng.Float64())
}
