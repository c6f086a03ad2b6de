package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// BoxesOverlap reports whether two boxes overlap, counting touching faces as overlapping. cube.BBox's
// IntersectsWith is strict, which would drop brushes that only touch a node boundary.
func BoxesOverlap(a, b cube.BBox) bool {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	return amin[0] <= bmax[0] && amax[0] >= bmin[0] &&
		amin[1] <= bmax[1] && amax[1] >= bmin[1] &&
		amin[2] <= bmax[2] && amax[2] >= bmin[2]
}

// BoxContains reports whether inner lies entirely inside outer.
func BoxContains(outer, inner cube.BBox) bool {
	omin, omax := outer.Min(), outer.Max()
	imin, imax := inner.Min(), inner.Max()
	return imin[0] >= omin[0] && imin[1] >= omin[1] && imin[2] >= omin[2] &&
		imax[0] <= omax[0] && imax[1] <= omax[1] && imax[2] <= omax[2]
}

// PointInBox reports whether the point lies inside the box grown by offset on every side.
func PointInBox(b cube.BBox, p mgl32.Vec3, offset float32) bool {
	min, max := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if p[i] < min[i]-offset || p[i] > max[i]+offset {
			return false
		}
	}
	return true
}

// BoxFromPoints returns the smallest box enclosing every point.
func BoxFromPoints(points ...mgl32.Vec3) cube.BBox {
	if len(points) == 0 {
		return cube.BBox{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min, max = MinVec3(min, p), MaxVec3(max, p)
	}
	return cube.Box(min[0], min[1], min[2], max[0], max[1], max[2])
}

// UnionBox returns the smallest box enclosing both boxes.
func UnionBox(a, b cube.BBox) cube.BBox {
	min, max := MinVec3(a.Min(), b.Min()), MaxVec3(a.Max(), b.Max())
	return cube.Box(min[0], min[1], min[2], max[0], max[1], max[2])
}

// BoxCenter returns the center of the box.
func BoxCenter(b cube.BBox) mgl32.Vec3 {
	return b.Min().Add(b.Max()).Mul(0.5)
}

// BoxExtents returns the half size of the box on every axis.
func BoxExtents(b cube.BBox) mgl32.Vec3 {
	return b.Max().Sub(b.Min()).Mul(0.5)
}

// BoxMaxSide returns the longest side of the box.
func BoxMaxSide(b cube.BBox) float32 {
	size := b.Max().Sub(b.Min())
	return math32.Max(size[0], math32.Max(size[1], size[2]))
}

// BoxFromCenter returns a box from its center and half size.
func BoxFromCenter(center, ext mgl32.Vec3) cube.BBox {
	min, max := center.Sub(ext), center.Add(ext)
	return cube.Box(min[0], min[1], min[2], max[0], max[1], max[2])
}

// AABBVectorDistance calculates the distance between an AABB and a vector.
func AABBVectorDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))
	return math32.Sqrt(x*x + y*y + z*z)
}
