package geometry

import (
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// BVHNode is a node in the Bounding Volume Hierarchy: either an interior
// node with two children, or a leaf holding its shapes directly.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape
}

// BVH is a Bounding Volume Hierarchy for fast ray-primitive intersection,
// built top-down using a surface-area-heuristic cost estimate.
type BVH struct {
	Root   *BVHNode
	Center core.Vec3
	Radius float64
}

// sahLeafThreshold is the primitive count below which a node always
// becomes a leaf, skipping the SAH search entirely.
const sahLeafThreshold = 4

// sahGridBase bounds the number of candidate split positions sampled per
// axis; the actual count shrinks with depth.
const sahGridBase = 1024

type bvhPrimitive struct {
	shape  Shape
	box    core.AABB
	center core.Vec3
}

// NewBVH constructs a BVH from a slice of shapes.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Radius: 100.0}
	}

	prims := make([]bvhPrimitive, len(shapes))
	for i, s := range shapes {
		box := s.BoundingBox()
		prims[i] = bvhPrimitive{shape: s, box: box, center: box.Center()}
	}

	root := buildBVH(prims, 0)

	worldCenter := root.BoundingBox.Center()
	worldRadius := root.BoundingBox.Max.Subtract(worldCenter).Length()

	return &BVH{Root: root, Center: worldCenter, Radius: worldRadius}
}

func boundsOf(prims []bvhPrimitive) core.AABB {
	box := prims[0].box
	for _, p := range prims[1:] {
		box = box.Union(p.box)
	}
	return box
}

func axisValue(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func leafNode(bounds core.AABB, prims []bvhPrimitive) *BVHNode {
	shapes := make([]Shape, len(prims))
	for i, p := range prims {
		shapes[i] = p.shape
	}
	return &BVHNode{BoundingBox: bounds, Shapes: shapes}
}

// buildBVH recursively partitions prims using a surface-area-heuristic
// cost estimate, sampled over a uniform grid of candidate splits per axis
// rather than an exact sweep.
func buildBVH(prims []bvhPrimitive, depth int) *BVHNode {
	bounds := boundsOf(prims)

	if len(prims) < sahLeafThreshold {
		return leafNode(bounds, prims)
	}

	noSplitCost := float64(len(prims)) * bounds.SurfaceArea()

	gridCount := sahGridBase / (depth + 1)
	if gridCount < 1 {
		gridCount = 1
	}

	bestCost := noSplitCost
	bestAxis := -1
	var bestSplit float64

	for axis := 0; axis < 3; axis++ {
		start := axisValue(bounds.Min, axis)
		stop := axisValue(bounds.Max, axis)
		span := stop - start
		if span < 1e-4 {
			continue
		}

		step := span / float64(gridCount)
		for i := 1; i < gridCount; i++ {
			split := start + step*float64(i)
			if split <= start || split >= stop {
				continue
			}

			var leftBox, rightBox core.AABB
			leftCount, rightCount := 0, 0
			for _, p := range prims {
				if axisValue(p.center, axis) < split {
					if leftCount == 0 {
						leftBox = p.box
					} else {
						leftBox = leftBox.Union(p.box)
					}
					leftCount++
				} else {
					if rightCount == 0 {
						rightBox = p.box
					} else {
						rightBox = rightBox.Union(p.box)
					}
					rightCount++
				}
			}

			if leftCount <= 1 || rightCount <= 1 {
				continue
			}

			cost := leftBox.SurfaceArea()*float64(leftCount) + rightBox.SurfaceArea()*float64(rightCount)
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestSplit = split
			}
		}
	}

	if bestAxis == -1 {
		return leafNode(bounds, prims)
	}

	var left, right []bvhPrimitive
	for _, p := range prims {
		if axisValue(p.center, bestAxis) < bestSplit {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}

	return &BVHNode{
		BoundingBox: bounds,
		Left:        buildBVH(left, depth+1),
		Right:       buildBVH(right, depth+1),
	}
}

// Hit traverses the BVH iteratively using an explicit stack, tracking the
// closest intersection found so far.
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}

	var closest *material.HitRecord
	closestT := tMax

	stack := make([]*BVHNode, 0, 64)
	stack = append(stack, bvh.Root)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !n.BoundingBox.Hit(ray, tMin, closestT) {
			continue
		}

		if n.Shapes != nil {
			for _, shape := range n.Shapes {
				if hit, ok := shape.Hit(ray, tMin, closestT); ok {
					closest = hit
					closestT = hit.T
				}
			}
			continue
		}

		// Push the farther child first so the nearer child is popped (and
		// tested) first, giving an earlier closestT bound to prune with.
		if n.Left != nil && n.Right != nil {
			leftDist := n.Left.BoundingBox.Center().Subtract(ray.Origin).Length()
			rightDist := n.Right.BoundingBox.Center().Subtract(ray.Origin).Length()
			if leftDist > rightDist {
				stack = append(stack, n.Left, n.Right)
			} else {
				stack = append(stack, n.Right, n.Left)
			}
		} else if n.Left != nil {
			stack = append(stack, n.Left)
		} else if n.Right != nil {
			stack = append(stack, n.Right)
		}
	}

	return closest, closest != nil
}

// BoundingBox implements Shape - returns the overall bounding box of the BVH.
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}
