package sweep

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/game"
)

// Capsule is a vertical capsule: a segment of half length HalfLen along the up axis around Center,
// swept by a sphere of Radius. A capsule with zero half length is a sphere, and one with zero
// radius as well is a point.
type Capsule struct {
	Center  mgl32.Vec3
	HalfLen float32
	Radius  float32
}

// Top returns the upper end of the capsule's segment.
func (c Capsule) Top() mgl32.Vec3 {
	return c.Center.Add(mgl32.Vec3{0, c.HalfLen, 0})
}

// Bottom returns the lower end of the capsule's segment.
func (c Capsule) Bottom() mgl32.Vec3 {
	return c.Center.Sub(mgl32.Vec3{0, c.HalfLen, 0})
}

// Foot returns the lowest point of the capsule.
func (c Capsule) Foot() mgl32.Vec3 {
	return c.Center.Sub(mgl32.Vec3{0, c.HalfLen + c.Radius, 0})
}

// Translate returns the capsule moved by delta.
func (c Capsule) Translate(delta mgl32.Vec3) Capsule {
	c.Center = c.Center.Add(delta)
	return c
}

// BBox returns the box enclosing the capsule.
func (c Capsule) BBox() cube.BBox {
	return game.BoxFromCenter(c.Center, mgl32.Vec3{c.Radius, c.HalfLen + c.Radius, c.Radius})
}

// SweptBBox returns the box enclosing the capsule over the whole sweep, grown by a small epsilon.
func (c Capsule) SweptBBox(delta mgl32.Vec3) cube.BBox {
	end := c.Center.Add(delta)
	return game.BoxFromPoints(
		c.Top(), c.Bottom(),
		end.Add(mgl32.Vec3{0, c.HalfLen, 0}), end.Sub(mgl32.Vec3{0, c.HalfLen, 0}),
	).Grow(c.Radius + game.BoundEpsilon)
}

// support returns the end of the segment that is furthest along -n.
func (c Capsule) support(center, n mgl32.Vec3) mgl32.Vec3 {
	if n.Y() > 0 {
		return center.Sub(mgl32.Vec3{0, c.HalfLen, 0})
	}
	return center.Add(mgl32.Vec3{0, c.HalfLen, 0})
}
