package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalScene = `
camera:
  center: [0, 0, 0]
  look_at: [0, 0, -1]
  up: [0, 1, 0]
  width: 16
  height: 16
  vfov: 40

sampling:
  samples_per_pixel: 4
  max_depth: 2
  russian_roulette_min_bounces: 1
  adaptive_min_samples: 1.0
  adaptive_threshold: 0.0

background: [0.1, 0.2, 0.3]

materials:
  red:
    color: [0.8, 0.1, 0.1]
    roughness: 0.5

shapes:
  - type: sphere
    material: red
    center: [0, 0, -2]
    radius: 0.7

lights:
  - type: sphere
    center: [0, 4, 0]
    radius: 0.5
    emission: [20, 20, 20]
`

func writeTempScene(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadSceneBuildsSceneFromYAML(t *testing.T) {
	path := writeTempScene(t, minimalScene)

	s, err := LoadScene(path)
	require.NoError(t, err)

	assert.Equal(t, 16, s.Camera.Width())
	assert.Equal(t, 16, s.Camera.Height())
	assert.Len(t, s.Shapes, 2) // the sphere plus the light's own sphere shape
	assert.Len(t, s.Lights, 1)
	assert.NotNil(t, s.BVH)
}

func TestLoadSceneRejectsUndefinedMaterial(t *testing.T) {
	broken := `
camera:
  center: [0, 0, 0]
  look_at: [0, 0, -1]
  up: [0, 1, 0]
  width: 16
  height: 16
  vfov: 40
sampling:
  samples_per_pixel: 1
  max_depth: 1
shapes:
  - type: sphere
    material: missing
    center: [0, 0, -2]
    radius: 0.7
`
	path := writeTempScene(t, broken)

	_, err := LoadScene(path)
	assert.Error(t, err)
}

func TestLoadSceneRejectsUnknownShapeType(t *testing.T) {
	broken := `
camera:
  center: [0, 0, 0]
  look_at: [0, 0, -1]
  up: [0, 1, 0]
  width: 16
  height: 16
  vfov: 40
sampling:
  samples_per_pixel: 1
  max_depth: 1
materials:
  red:
    color: [1, 0, 0]
shapes:
  - type: cone
    material: red
`
	path := writeTempScene(t, broken)

	_, err := LoadScene(path)
	assert.Error(t, err)
}

func TestLoadSceneMissingFileReturnsError(t *testing.T) {
	_, err := LoadScene(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
