package brush

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// onPlaneEpsilon is how far a vertex may sit from a plane and still count as lying on it.
const onPlaneEpsilon = float32(1e-3)

// EdgeSupportNormal returns the most upward facing normal among the faces sharing the edge v1-v2.
// The zero vector is returned when none of them faces up.
func (b *Brush) EdgeSupportNormal(v1, v2 int) mgl32.Vec3 {
	return b.supportNormal(func(f []int) bool {
		return containsVertex(f, v1) && containsVertex(f, v2)
	})
}

// VertexSupportNormal returns the most upward facing normal among the faces touching the vertex.
// The zero vector is returned when none of them faces up.
func (b *Brush) VertexSupportNormal(v int) mgl32.Vec3 {
	return b.supportNormal(func(f []int) bool {
		return containsVertex(f, v)
	})
}

func (b *Brush) supportNormal(match func(f []int) bool) mgl32.Vec3 {
	var (
		best mgl32.Vec3
		maxY float32
	)
	for i, f := range b.Faces {
		if i >= len(b.Planes) || !match(f) {
			continue
		}
		if n := b.Planes[i].Normal; n.Y() > maxY {
			maxY = n.Y()
			best = n
		}
	}
	return best
}

// SharedVertices returns the vertices lying on every one of the given planes.
func (b *Brush) SharedVertices(planes ...int) []int {
	var out []int
	for vi, v := range b.Vertices {
		on := true
		for _, pi := range planes {
			if math32.Abs(b.Planes[pi].Distance(v)) > onPlaneEpsilon {
				on = false
				break
			}
		}
		if on {
			out = append(out, vi)
		}
	}
	return out
}

// NearestVertex returns the index of the vertex closest to p, or -1 for brushes without vertices.
func (b *Brush) NearestVertex(p mgl32.Vec3, candidates []int) int {
	best, bestDist := -1, float32(math32.MaxFloat32)
	for _, vi := range candidates {
		if d := b.Vertices[vi].Sub(p).LenSqr(); d < bestDist {
			best, bestDist = vi, d
		}
	}
	return best
}

func containsVertex(f []int, v int) bool {
	for _, idx := range f {
		if idx == v {
			return true
		}
	}
	return false
}
