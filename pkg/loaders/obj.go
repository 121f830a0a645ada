package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// MeshData is the parsed result of an OBJ file: an indexed vertex list,
// flattened triangle face indices, and optional per-vertex UVs, ready to
// hand to geometry.NewTriangleMesh.
type MeshData struct {
	Vertices []core.Vec3
	Faces    []int // triples of vertex indices, 0-based
	UVs      []core.Vec2
	HasUVs   bool
}

// LoadOBJ parses the v/vt/vn/f subset of the Wavefront OBJ format: vertex
// positions, texture coordinates, normals (read but discarded; normals
// are recomputed below), and triangular faces. Faces may reference
// vertices alone (`f 1 2 3`) or vertex/uv/normal triples (`f 1/1/1 2/2/1
// 3/3/1`); indices are 1-based per the format and converted to 0-based
// here. Only triangular faces are supported.
func LoadOBJ(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh file: %w", err)
	}
	defer file.Close()

	var vertices []core.Vec3
	var uvs []core.Vec2
	var faces []int
	var faceUVs []int
	hasUVs := false

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			vertices = append(vertices, v)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("obj line %d: malformed vt line", lineNo)
			}
			u, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			vv, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			uvs = append(uvs, core.Vec2{X: u, Y: vv})
			hasUVs = true

		case "vn":
			// Read but discarded: smooth normals are recomputed below
			// as the normalised sum of incident face normals.

		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("obj line %d: only triangular faces are supported", lineNo)
			}
			for _, tok := range fields[1:] {
				vi, uvi, err := parseFaceVertex(tok)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				faces = append(faces, vi)
				faceUVs = append(faceUVs, uvi)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mesh file: %w", err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("obj file %q contains no faces", filename)
	}
	for _, vi := range faces {
		if vi < 0 || vi >= len(vertices) {
			return nil, fmt.Errorf("obj file %q: face references vertex %d, but only %d vertices are defined", filename, vi+1, len(vertices))
		}
	}

	data := &MeshData{Vertices: vertices, Faces: faces, HasUVs: hasUVs}
	if hasUVs {
		data.UVs = resolveVertexUVs(vertices, faces, faceUVs, uvs)
	}
	return data, nil
}

// resolveVertexUVs maps OBJ's per-face-corner UV indices onto the
// per-vertex UV slice geometry.NewTriangleMesh expects, duplicating a
// vertex position's first-seen UV for every corner that references it.
// OBJ allows one vertex position to carry different UVs per face; this
// adapter keeps the simpler per-vertex model and takes the first.
func resolveVertexUVs(vertices []core.Vec3, faces, faceUVs []int, uvs []core.Vec2) []core.Vec2 {
	result := make([]core.Vec2, len(vertices))
	seen := make([]bool, len(vertices))
	for i, vi := range faces {
		if seen[vi] {
			continue
		}
		uvi := faceUVs[i]
		if uvi >= 0 && uvi < len(uvs) {
			result[vi] = uvs[uvi]
		}
		seen[vi] = true
	}
	return result
}

// parseFaceVertex parses one `f` line token (`v`, `v/vt`, `v/vt/vn`, or
// `v//vn`) and returns 0-based vertex and UV indices; uvIndex is -1 when
// the token carries no UV reference.
func parseFaceVertex(tok string) (vIndex, uvIndex int, err error) {
	parts := strings.Split(tok, "/")
	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad face index %q: %w", tok, err)
	}
	uvIndex = -1
	if len(parts) >= 2 && parts[1] != "" {
		uv, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("bad face uv index %q: %w", tok, err)
		}
		uvIndex = uv - 1
	}
	return v - 1, uvIndex, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(x, y, z), nil
}

// smoothNormals computes one normal per vertex as the normalised sum of
// the face normals of every triangle incident to it.
func smoothNormals(vertices []core.Vec3, faces []int) []core.Vec3 {
	normals := make([]core.Vec3, len(vertices))
	for i := 0; i+2 < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]
		faceNormal := v1.Subtract(v0).Cross(v2.Subtract(v0))
		normals[i0] = normals[i0].Add(faceNormal)
		normals[i1] = normals[i1].Add(faceNormal)
		normals[i2] = normals[i2].Add(faceNormal)
	}
	for i, n := range normals {
		if n.LengthSquared() > 0 {
			normals[i] = n.Normalize()
		}
	}
	return normals
}

// BuildMesh converts parsed OBJ data into a renderable TriangleMesh,
// always smooth-shaded per the mesh file adapter's normal post-pass.
func BuildMesh(data *MeshData, mat *material.Material) *geometry.TriangleMesh {
	options := &geometry.TriangleMeshOptions{
		Normals: smoothNormals(data.Vertices, data.Faces),
	}
	if data.HasUVs {
		options.VertexUVs = data.UVs
	}
	return geometry.NewTriangleMesh(data.Vertices, data.Faces, mat, options)
}

// LoadMesh loads an OBJ file and builds a smooth-shaded TriangleMesh
// directly, combining LoadOBJ and BuildMesh for the common case.
func LoadMesh(filename string, mat *material.Material) (*geometry.TriangleMesh, error) {
	data, err := LoadOBJ(filename)
	if err != nil {
		return nil, err
	}
	return BuildMesh(data, mat), nil
}
