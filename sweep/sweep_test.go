package sweep

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/brush"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(x, y, z float32) Capsule {
	return Capsule{Center: mgl32.Vec3{x, y, z}, HalfLen: 0.5, Radius: 0.5}
}

func floor() *brush.Brush {
	return brush.FromBBox(cube.Box(-10, -1, -10, 10, 0, 10), 0)
}

func TestTraceBrushLandsOnFloor(t *testing.T) {
	cl := DefaultClipper()
	hit, ok := cl.TraceBrush(player(0, 2, 0), mgl32.Vec3{0, -2, 0}, floor())
	require.True(t, ok)
	assert.False(t, hit.StartSolid)
	assert.InDelta(t, (1-cl.Epsilon)/2, hit.Fraction, 1e-6)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, hit.Normal)
	assert.Equal(t, ContactFace, hit.Contact.Size)
}

func TestTraceBrushMisses(t *testing.T) {
	cl := DefaultClipper()
	_, ok := cl.TraceBrush(player(0, 2, 0), mgl32.Vec3{5, 0, 0}, floor())
	assert.False(t, ok)

	// Resting on the surface and moving along it.
	_, ok = cl.TraceBrush(player(0, 1+cl.Epsilon, 0), mgl32.Vec3{1, 0, 1}, floor())
	assert.False(t, ok)

	// Moving away from the surface.
	_, ok = cl.TraceBrush(player(0, 1.5, 0), mgl32.Vec3{0, 1, 0}, floor())
	assert.False(t, ok)
}

func TestTraceBrushPenetration(t *testing.T) {
	cl := DefaultClipper()

	hit, ok := cl.TraceBrush(player(0, 0.99, 0), mgl32.Vec3{1, 0, 0}, floor())
	require.True(t, ok)
	assert.False(t, hit.StartSolid)
	assert.InDelta(t, -(0.01 + cl.Epsilon), hit.Fraction, 1e-5)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, hit.Normal)

	hit, ok = cl.TraceBrush(player(0, 0.5, 0), mgl32.Vec3{1, 0, 0}, floor())
	require.True(t, ok)
	assert.True(t, hit.StartSolid)
	assert.Zero(t, hit.Fraction)
}

func TestTraceBrushContactTopology(t *testing.T) {
	cl := DefaultClipper()
	b := brush.FromBBox(cube.Box(0, -1, 0, 1, 0, 1), 0)

	hit, ok := cl.TraceBrush(player(1.5, 2, 0.5), mgl32.Vec3{0, -2, 0}, b)
	require.True(t, ok)
	assert.Equal(t, ContactEdge, hit.Contact.Size)
	assert.ElementsMatch(t, []int{3, 7}, []int{hit.Contact.A, hit.Contact.B})

	hit, ok = cl.TraceBrush(player(1.5, 2, 1.5), mgl32.Vec3{0, -2, 0}, b)
	require.True(t, ok)
	assert.Equal(t, ContactVertex, hit.Contact.Size)
	assert.Equal(t, 7, hit.Contact.A)

	hit, ok = cl.TraceBrush(player(0.5, 2, 0.5), mgl32.Vec3{0, -2, 0}, b)
	require.True(t, ok)
	assert.Equal(t, ContactFace, hit.Contact.Size)
}

func TestTraceBrushRay(t *testing.T) {
	cl := DefaultClipper()
	ray := Capsule{Center: mgl32.Vec3{-5, 0.5, 0.5}}
	hit, ok := cl.TraceBrush(ray, mgl32.Vec3{10, 0, 0}, brush.FromBBox(cube.Box(0, 0, 0, 1, 1, 1), 0))
	require.True(t, ok)
	assert.InDelta(t, 0.5-cl.Epsilon/10, hit.Fraction, 1e-5)
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, hit.Normal)
}

func TestTraceCapsule(t *testing.T) {
	cl := DefaultClipper()

	hit, ok := cl.TraceCapsule(player(0, 0, 0), mgl32.Vec3{3, 0, 0}, player(2, 0, 0))
	require.True(t, ok)
	assert.True(t, hit.Dynamic)
	assert.InDelta(t, 1.0/3.0-cl.Epsilon/3, hit.Fraction, 1e-5)
	assert.InDelta(t, -1, hit.Normal.X(), 1e-5)

	// Landing on top of another capsule hits the cap.
	hit, ok = cl.TraceCapsule(player(0, 5, 0), mgl32.Vec3{0, -5, 0}, player(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 3.0/5.0-cl.Epsilon/5, hit.Fraction, 1e-5)
	assert.InDelta(t, 1, hit.Normal.Y(), 1e-5)

	_, ok = cl.TraceCapsule(player(0, 0, 0), mgl32.Vec3{3, 0, 0}, player(2, 3, 0))
	assert.False(t, ok)

	hit, ok = cl.TraceCapsule(player(0, 0, 0), mgl32.Vec3{3, 0, 0}, player(0.5, 0, 0))
	require.True(t, ok)
	assert.True(t, hit.StartSolid)
}

func TestRequestBoundAndBetter(t *testing.T) {
	req := NewRequest(player(0, 1, 0), mgl32.Vec3{2, 0, 0}, brush.FlagSkipMoveTrace)
	assert.Equal(t, float32(1), req.Fraction)
	assert.InDelta(t, -0.5, req.Bound.Min().X(), 1e-2)
	assert.InDelta(t, 2.5, req.Bound.Max().X(), 1e-2)
	assert.InDelta(t, 0, req.Bound.Min().Y(), 1e-2)
	assert.InDelta(t, 2, req.Bound.Max().Y(), 1e-2)

	a := brush.FromBBox(cube.Box(0, 0, 0, 1, 1, 1), 0)
	b := brush.FromBBox(cube.Box(0, 0, 0, 2, 1, 1), 0)
	lo, hi := a, b
	if b.ID < a.ID {
		lo, hi = b, a
	}
	assert.True(t, Hit{Fraction: 0.2, Brush: hi}.Better(Hit{Fraction: 0.3, Brush: lo}))
	assert.True(t, Hit{Fraction: 0.2, Brush: lo}.Better(Hit{Fraction: 0.2, Brush: hi}))
	assert.False(t, Hit{Fraction: 0.2, Brush: hi}.Better(Hit{Fraction: 0.2, Brush: lo}))
}
