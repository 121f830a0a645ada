package loaders

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg" // decodes JPEG and registers the format with image.Decode
	"image/png"  // decodes PNG and registers the format with image.Decode
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PNG or JPEG image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Log the detected format for debugging
	_ = format // PNG or JPEG

	// Convert to Vec3 array
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// SaveImage gamma-corrects and clamps an HDR vec3 texture to [0,255] and
// writes it to filename, encoding as PNG, JPEG, or BMP based on the file
// extension (case-insensitive). Any other extension is an error. HDR
// tone-mapping/gamma belongs here, at the I/O boundary, not in the renderer.
func SaveImage(buffer [][]core.Vec3, filename string) error {
	img := toRGBA(buffer)

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return png.Encode(file, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(file, img, &jpeg.Options{Quality: 95})
	case ".bmp":
		return bmp.Encode(file, img)
	default:
		return fmt.Errorf("unsupported image extension %q", filepath.Ext(filename))
	}
}

// toRGBA converts an HDR color buffer to a gamma-corrected,
// tone-mapped-by-clamp 8-bit image.
func toRGBA(buffer [][]core.Vec3) *image.RGBA {
	height := len(buffer)
	if height == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	width := len(buffer[0])

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			img.SetRGBA(i, j, vec3ToColor(buffer[j][i]))
		}
	}
	return img
}

func vec3ToColor(v core.Vec3) color.RGBA {
	v = v.Clamp(0.0, 1.0).GammaCorrect(2.0)
	return color.RGBA{
		R: uint8(255 * v.X),
		G: uint8(255 * v.Y),
		B: uint8(255 * v.Z),
		A: 255,
	}
}
