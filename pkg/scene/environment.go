package scene

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/loaders"
)

// Environment is an equirectangular HDR background texture. A ray that
// misses all scene geometry is projected onto it instead of returning
// the flat background color.
type Environment struct {
	width, height int
	pixels        []core.Vec3
}

// NewEnvironment builds an Environment from decoded image data.
func NewEnvironment(img *loaders.ImageData) *Environment {
	return &Environment{width: img.Width, height: img.Height, pixels: img.Pixels}
}

// Sample projects a (not necessarily normalized) direction onto the
// equirectangular map and returns the bilinearly-interpolated color.
func (e *Environment) Sample(direction core.Vec3) core.Vec3 {
	d := direction.Normalize()

	u := (math.Atan2(d.Y, d.X)/math.Pi + 1) / 2
	v := (d.Z + 1) / 2

	return e.bilinear(u, v)
}

func (e *Environment) bilinear(u, v float64) core.Vec3 {
	// u wraps around the sphere; v is clamped to the pole rows.
	fx := u*float64(e.width) - 0.5
	fy := (1 - v) * float64(e.height)

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	wrap := func(x int) int {
		x %= e.width
		if x < 0 {
			x += e.width
		}
		return x
	}
	clamp := func(y int) int {
		if y < 0 {
			return 0
		}
		if y >= e.height {
			return e.height - 1
		}
		return y
	}

	c00 := e.at(wrap(x0), clamp(y0))
	c10 := e.at(wrap(x0+1), clamp(y0))
	c01 := e.at(wrap(x0), clamp(y0+1))
	c11 := e.at(wrap(x0+1), clamp(y0+1))

	top := c00.Multiply(1 - tx).Add(c10.Multiply(tx))
	bottom := c01.Multiply(1 - tx).Add(c11.Multiply(tx))
	return top.Multiply(1 - ty).Add(bottom.Multiply(ty))
}

func (e *Environment) at(x, y int) core.Vec3 {
	return e.pixels[y*e.width+x]
}
