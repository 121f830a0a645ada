package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	// Create a temporary directory for test files
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.png")

	// Create a simple 2x2 test image
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	// Set pixel colors (RGBA with max value 65535 when using RGBA())
	// Top-left: white
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	// Top-right: red
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	// Bottom-left: green
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	// Bottom-right: blue
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	// Save as PNG
	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	// Load the image
	imageData, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	// Verify dimensions
	if imageData.Width != 2 || imageData.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}

	// Verify pixel count
	if len(imageData.Pixels) != 4 {
		t.Errorf("Expected 4 pixels, got %d", len(imageData.Pixels))
	}

	// Helper function to check color with tolerance for precision
	checkColor := func(name string, got, expected core.Vec3) {
		const tolerance = 0.01
		if abs(got.X-expected.X) > tolerance ||
			abs(got.Y-expected.Y) > tolerance ||
			abs(got.Z-expected.Z) > tolerance {
			t.Errorf("%s: expected %v, got %v", name, expected, got)
		}
	}

	// Verify colors (row-major order)
	white := core.NewVec3(1.0, 1.0, 1.0)
	red := core.NewVec3(1.0, 0.0, 0.0)
	green := core.NewVec3(0.0, 1.0, 0.0)
	blue := core.NewVec3(0.0, 0.0, 1.0)

	checkColor("Top-left (white)", imageData.Pixels[0], white)
	checkColor("Top-right (red)", imageData.Pixels[1], red)
	checkColor("Bottom-left (green)", imageData.Pixels[2], green)
	checkColor("Bottom-right (blue)", imageData.Pixels[3], blue)
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func testBuffer2x2() [][]core.Vec3 {
	return [][]core.Vec3{
		{core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1)},
	}
}

// TestSaveImageRoundTripsPNGJPEGAndBMP verifies that SaveImage picks the
// encoder matching each supported extension and produces a file LoadImage
// can read back at the original size.
func TestSaveImageRoundTripsPNGJPEGAndBMP(t *testing.T) {
	tmpDir := t.TempDir()
	buffer := testBuffer2x2()

	for _, ext := range []string{".png", ".jpg", ".bmp"} {
		path := filepath.Join(tmpDir, "out"+ext)
		if err := SaveImage(buffer, path); err != nil {
			t.Fatalf("SaveImage(%s) failed: %v", ext, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("expected %s to be non-empty", path)
		}
		loaded, err := LoadImage(path)
		if err != nil {
			t.Errorf("LoadImage(%s) failed: %v", ext, err)
			continue
		}
		if loaded.Width != 2 || loaded.Height != 2 {
			t.Errorf("expected %s to read back as 2x2, got %dx%d", ext, loaded.Width, loaded.Height)
		}
	}
}

// TestSaveImageGammaCorrectsAndClamps verifies SaveImage tone-maps HDR
// values (including out-of-range ones) down to clamped 8-bit output.
func TestSaveImageGammaCorrectsAndClamps(t *testing.T) {
	buffer := [][]core.Vec3{{core.NewVec3(4.0, 0.0, -1.0)}}
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SaveImage(buffer, path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	got := loaded.Pixels[0]
	if got.X < 0.99 {
		t.Errorf("expected overbright red channel to clamp near 1.0, got %v", got.X)
	}
	if got.Y != 0 {
		t.Errorf("expected zero channel to stay zero, got %v", got.Y)
	}
	if got.Z != 0 {
		t.Errorf("expected negative channel to clamp to zero, got %v", got.Z)
	}
}

// TestSaveImageRejectsUnknownExtension verifies SaveImage errors instead
// of silently picking an encoder for an unrecognised file extension.
func TestSaveImageRejectsUnknownExtension(t *testing.T) {
	buffer := [][]core.Vec3{{core.NewVec3(0, 0, 0)}}
	err := SaveImage(buffer, filepath.Join(t.TempDir(), "out.tiff"))
	if err == nil {
		t.Error("expected error for unsupported extension, got nil")
	}
}

// TestSaveImageCreatesMissingDirectories verifies SaveImage creates any
// missing parent directories before writing the file.
func TestSaveImageCreatesMissingDirectories(t *testing.T) {
	buffer := [][]core.Vec3{{core.NewVec3(0, 0, 0)}}
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.png")
	if err := SaveImage(buffer, path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}
