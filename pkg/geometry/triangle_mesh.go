package geometry

import (
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// TriangleMesh is a collection of triangles sharing one transform and
// default material, indexed by an internal BVH for fast intersection when
// used as a standalone shape. Scene construction instead explodes a mesh
// into its individually-owned Triangles so the scene-level BVH's leaf set
// is the actual primitive set, not one opaque mesh wrapper.
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
	bbox      core.AABB
	material  *material.Material
}

// TriangleMeshOptions holds optional per-face/per-vertex mesh data.
type TriangleMeshOptions struct {
	Normals   []core.Vec3 // one per vertex; triggers smooth shading when set
	Materials []*material.Material
	VertexUVs []core.Vec2

	// Transform places every triangle in the mesh into world space. A nil
	// Transform defaults to identity (vertices are already world-space).
	Transform *core.Transform
}

// NewTriangleMesh builds a mesh from an indexed vertex/face list. vertices
// gives point positions, in the space defined by options.Transform (world
// space if options is nil or leaves Transform unset); faces groups vertex
// indices in triples.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat *material.Material, options *TriangleMeshOptions) *TriangleMesh {
	if len(faces)%3 != 0 {
		panic("face indices must be a multiple of 3")
	}

	numTriangles := len(faces) / 3
	if options != nil {
		if options.Materials != nil && len(options.Materials) != numTriangles {
			panic("number of materials must match number of triangles")
		}
		if options.Normals != nil && len(options.Normals) != len(vertices) {
			panic("number of normals must match number of vertices")
		}
		if options.VertexUVs != nil && len(options.VertexUVs) != len(vertices) {
			panic("number of vertex UVs must match number of vertices")
		}
	}

	transform := core.Identity()
	hasNormals := options != nil && options.Normals != nil
	hasUVs := options != nil && options.VertexUVs != nil
	if options != nil && options.Transform != nil {
		transform = *options.Transform
	}

	triangles := make([]Shape, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(vertices) || i1 >= len(vertices) || i2 >= len(vertices) {
			panic("face index out of bounds")
		}

		triMat := mat
		if options != nil && options.Materials != nil {
			triMat = options.Materials[i]
		}

		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]

		var n0, n1, n2 core.Vec3
		if hasNormals {
			n0, n1, n2 = options.Normals[i0], options.Normals[i1], options.Normals[i2]
		}
		var uv0, uv1, uv2 core.Vec2
		if hasUVs {
			uv0, uv1, uv2 = options.VertexUVs[i0], options.VertexUVs[i1], options.VertexUVs[i2]
		}

		triangles[i] = newTriangleTransformed(transform, v0, v1, v2, n0, n1, n2, hasNormals, uv0, uv1, uv2, hasUVs, triMat)
	}

	bvh := NewBVH(triangles)

	var bbox core.AABB
	if len(triangles) > 0 {
		bbox = triangles[0].BoundingBox()
		for _, t := range triangles[1:] {
			bbox = bbox.Union(t.BoundingBox())
		}
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       bvh,
		bbox:      bbox,
		material:  mat,
	}
}

// Hit tests if a ray intersects any triangle in the mesh, via the mesh's BVH.
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh.
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// TriangleCount returns the number of triangles in this mesh.
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Triangles returns the mesh's individually-owned triangles, each sharing
// the mesh's Transform and default material (or its own, when
// TriangleMeshOptions.Materials assigned one per face).
func (tm *TriangleMesh) Triangles() []Shape {
	return tm.triangles
}
