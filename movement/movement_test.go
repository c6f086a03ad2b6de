package movement

import (
	"math"
	"sync"
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/brush"
	"github.com/oomph-ac/capsim/collision"
	"github.com/oomph-ac/capsim/game"
	"github.com/oomph-ac/capsim/sweep"
	"github.com/oomph-ac/capsim/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(0.016)

func floorBrush() *brush.Brush {
	return brush.FromBBox(cube.Box(-50, -1, -50, 50, 0, 50), 0)
}

func newWorld(brushes ...*brush.Brush) *collision.Manager {
	m := collision.NewManager(collision.DefaultConfig())
	m.Build(brushes)
	return m
}

func newSolver(w World) *Solver {
	return NewSolver(w, DefaultOptions())
}

// settle lets an idle actor fall onto whatever is below it.
func settle(t *testing.T, sv *Solver, s *State) {
	t.Helper()
	for i := 0; i < 30; i++ {
		sv.GroundMove(s, mgl32.Vec3{}, 0, frame, 0)
	}
	require.True(t, s.CanStay, "actor did not settle: %+v", s)
}

// supportWorld never blocks a move and always reports the same support plane under the actor.
type supportWorld struct {
	normal mgl32.Vec3
}

func (w supportWorld) CollideWithEnv(t *collision.EnvTrace, _ collision.EnvOptions) bool {
	t.Fraction = 1
	return false
}

func (w supportWorld) RetrieveSupportPlane(g *collision.GroundTrace) bool {
	g.Support, g.End, g.HitNormal = true, g.Start, w.normal
	return true
}

// tracingSolver returns a solver over w that records the format of every debug line.
func tracingSolver(w World) (*Solver, func(format string) bool) {
	var (
		mu    sync.Mutex
		lines = make(map[string]struct{})
	)
	opts := DefaultOptions()
	opts.Debugf = func(format string, _ ...any) {
		mu.Lock()
		lines[format] = struct{}{}
		mu.Unlock()
	}
	return NewSolver(w, opts), func(format string) bool {
		mu.Lock()
		defer mu.Unlock()
		_, ok := lines[format]
		return ok
	}
}

// upSolidWorld reports every straight upward trace as starting solid, as if the actor's head were
// jammed into a ceiling.
type upSolidWorld struct {
	*collision.Manager
}

func (w upSolidWorld) CollideWithEnv(t *collision.EnvTrace, opts collision.EnvOptions) bool {
	if t.Delta.X() == 0 && t.Delta.Z() == 0 && t.Delta.Y() > 0 {
		t.Fraction, t.StartSolid, t.HitNormal = 0, true, mgl32.Vec3{0, -1, 0}
		return true
	}
	return w.Manager.CollideWithEnv(t, opts)
}

func TestClipVelocity(t *testing.T) {
	wall := mgl32.Vec3{-1, 0, 0}

	out := clipVelocity(mgl32.Vec3{3, 0, 4}, wall, game.BounceClip)
	assert.InDelta(t, -0.03, out.X(), 1e-4)
	assert.InDelta(t, 0, out.Y(), 1e-6)
	assert.InDelta(t, 5, out.Z(), 1e-4)

	parallel := mgl32.Vec3{0, 0, 5}
	assert.Equal(t, parallel, clipVelocity(parallel, wall, game.BounceClip))

	// Falling straight onto a floor only keeps the minimum backoff.
	out = clipVelocity(mgl32.Vec3{0, -0.1, 0}, game.Up, game.BounceClip)
	assert.InDelta(t, game.MinClipBackoff, out.Y(), 1e-6)
	assert.InDelta(t, 0, game.Vec3HzDistSqr(out), 1e-9)
}

func TestAccelerate(t *testing.T) {
	x := mgl32.Vec3{1, 0, 0}

	// From rest the wish speed is scaled down to a fifth, acceleration still caps the gain.
	v := accelerate(mgl32.Vec3{}, x, 5, 6, 0.1)
	assert.InDelta(t, 0.6, v.X(), 1e-5)

	v = accelerate(mgl32.Vec3{4, 0, 0}, x, 5, 6, 0.1)
	assert.InDelta(t, 4.6, v.X(), 1e-5)

	v = accelerate(mgl32.Vec3{4.9, 0, 0}, x, 5, 6, 0.1)
	assert.InDelta(t, 5, v.X(), 1e-5)

	// Turning around drops straight to the reduced wish speed.
	v = accelerate(mgl32.Vec3{4, 0, 0}, x.Mul(-1), 5, 6, 0.1)
	assert.InDelta(t, -1, v.X(), 1e-5)
}

func TestJumpStartSpeed(t *testing.T) {
	assert.InDelta(t, 4.8522, JumpStartSpeed(game.Gravity, game.JumpHeight), 1e-3)
}

func TestStateDefaultsAndReset(t *testing.T) {
	s := NewState(mgl32.Vec3{1, 2, 3}, 0.5, 0.4)
	assert.Equal(t, game.Gravity, s.Gravity)
	assert.Equal(t, game.SlopeThreshold, s.SlopeThresh)
	assert.Equal(t, game.StepHeight, s.StepHeight)
	assert.Equal(t, int64(-1), s.ActorID)
	assert.Equal(t, mgl32.Vec3{}, s.TPNormal)
	assert.False(t, s.Grounded())

	s.TPNormal, s.Blocked, s.OnSurface, s.CanStay = game.Up, true, true, true
	s.ClipVel, s.ActualVel = mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}
	s.ResetInfo(false)
	assert.Equal(t, mgl32.Vec3{}, s.TPNormal)
	assert.False(t, s.Blocked || s.OnSurface || s.CanStay)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, s.ClipVel)

	s.ResetInfo(true)
	assert.Equal(t, mgl32.Vec3{}, s.ClipVel)
	assert.Equal(t, mgl32.Vec3{}, s.ActualVel)
}

func TestFreeFallWithoutGeometry(t *testing.T) {
	for name, w := range map[string]World{
		"nil world":   nil,
		"empty world": newWorld(),
	} {
		t.Run(name, func(t *testing.T) {
			s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
			newSolver(w).GroundMove(s, mgl32.Vec3{1, 0, 0}, 5, frame, 0)

			assert.False(t, s.OnSurface)
			assert.False(t, s.CanStay)
			assert.False(t, s.Blocked)
			assert.Less(t, s.Center.Y(), float32(1))
			assert.Less(t, s.ClipVel.Y(), float32(0))
		})
	}
}

func TestLandsOnFloor(t *testing.T) {
	sv := newSolver(newWorld(floorBrush()))
	s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
	for i := 0; i < 60; i++ {
		sv.GroundMove(s, mgl32.Vec3{}, 0, frame, 0)
	}

	assert.InDelta(t, 1.0, s.Center.Y(), 1e-2)
	assert.True(t, s.CanStay)
	assert.True(t, s.OnSurface)
	assert.InDelta(t, 1, s.TPNormal.Y(), 1e-5)
	assert.Equal(t, OutcomeNormal, s.Outcome)
}

func TestLandsAfterFalling(t *testing.T) {
	sv := newSolver(newWorld(floorBrush()))
	s := NewState(mgl32.Vec3{0, 3, 0}, 0.5, 0.5)
	for i := 0; i < 120; i++ {
		sv.GroundMove(s, mgl32.Vec3{}, 0, frame, 0)
	}

	assert.InDelta(t, 1.0, s.Center.Y(), 1e-2)
	assert.True(t, s.CanStay)
	assert.InDelta(t, 0, s.ClipVel.Len(), 1e-3)
}

func TestNoOpMoveIsIdempotent(t *testing.T) {
	sv := newSolver(newWorld(floorBrush()))
	s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
	settle(t, sv, s)

	for i := 0; i < 10; i++ {
		before, onSurface := s.Center, s.OnSurface
		sv.GroundMove(s, mgl32.Vec3{}, 0, frame, 0)
		assert.InDelta(t, before.X(), s.Center.X(), 1e-5)
		assert.InDelta(t, before.Y(), s.Center.Y(), 1e-5)
		assert.InDelta(t, before.Z(), s.Center.Z(), 1e-5)
		assert.False(t, s.Blocked)
		assert.Equal(t, onSurface, s.OnSurface)
	}
}

func TestWalkAcrossFloor(t *testing.T) {
	sv := newSolver(newWorld(floorBrush()))
	s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
	settle(t, sv, s)
	y := s.Center.Y()

	for i := 0; i < 60; i++ {
		sv.GroundMove(s, mgl32.Vec3{0, 0, 1}, 4, frame, 0)
	}
	assert.Greater(t, s.Center.Z(), float32(1))
	assert.InDelta(t, 0, s.Center.X(), 1e-4)
	assert.InDelta(t, y, s.Center.Y(), 1e-3)
	assert.True(t, s.CanStay)
	assert.False(t, s.Blocked)
	assert.InDelta(t, 0, s.ActualVel.Y(), 1e-6)
	assert.Greater(t, s.ActualVel.Z(), float32(0))

	// Walking backwards flips the direction.
	z := s.Center.Z()
	for i := 0; i < 60; i++ {
		sv.GroundMove(s, mgl32.Vec3{0, 0, 1}, -4, frame, 0)
	}
	assert.Less(t, s.Center.Z(), z)
}

func TestWallSlideKeepsTangentialVelocity(t *testing.T) {
	wall := brush.FromBBox(cube.Box(1, 0, -50, 2, 3, 50), 0)
	sv := newSolver(newWorld(floorBrush(), wall))
	n := mgl32.Vec3{-1, 0, 0}

	for _, deg := range []float32{15, 30, 45, 60, 75, -40} {
		rad := mgl32.DegToRad(deg)
		dir := mgl32.Vec3{math32.Cos(rad), 0, math32.Sin(rad)}

		s := NewState(mgl32.Vec3{0.49, 1, 0}, 0.5, 0.5)
		settle(t, sv, s)
		s.ClipVel = dir.Mul(4)
		sv.GroundMove(s, dir, 4, frame, 0)

		vn := s.ClipVel.Dot(n)
		assert.GreaterOrEqual(t, vn, float32(0), "angle %v moves into the wall", deg)
		assert.Less(t, vn, float32(0.05), "angle %v", deg)
		assert.Greater(t, math32.Abs(s.ClipVel.Z()), float32(1), "angle %v", deg)
		assert.Equal(t, dir.Z() > 0, s.ClipVel.Z() > 0, "angle %v", deg)
		assert.LessOrEqual(t, s.Center.X(), float32(0.5), "angle %v", deg)
		assert.False(t, s.Blocked, "angle %v", deg)
	}
}

func TestCornerConvergesToZero(t *testing.T) {
	wallX := brush.FromBBox(cube.Box(1, 0, -50, 2, 3, 2), 0)
	wallZ := brush.FromBBox(cube.Box(-50, 0, 1, 2, 3, 2), 0)
	sv := newSolver(newWorld(floorBrush(), wallX, wallZ))

	s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
	settle(t, sv, s)
	for i := 0; i < 200; i++ {
		sv.GroundMove(s, mgl32.Vec3{1, 0, 1}, 5, frame, 0)
		require.True(t, game.IsFiniteVec3(s.Center), "frame %d", i)
		require.True(t, game.IsFiniteVec3(s.ClipVel), "frame %d", i)
	}

	assert.Less(t, s.ClipVel.Len(), float32(0.01))
	assert.Greater(t, s.Center.X(), float32(0.4))
	assert.Greater(t, s.Center.Z(), float32(0.4))
	assert.LessOrEqual(t, s.Center.X(), float32(0.5))
	assert.LessOrEqual(t, s.Center.Z(), float32(0.5))
	assert.True(t, s.CanStay)
}

func TestStepUpOntoLowStep(t *testing.T) {
	step := brush.FromBBox(cube.Box(1, 0, -50, 10, 0.2, 50), 0)
	sv := newSolver(newWorld(floorBrush(), step))

	s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
	settle(t, sv, s)
	for i := 0; i < 60; i++ {
		sv.GroundMove(s, mgl32.Vec3{1, 0, 0}, 4, frame, 0)
	}

	assert.Greater(t, s.Center.X(), float32(1))
	assert.InDelta(t, 1.2, s.Center.Y(), 1e-2)
	assert.True(t, s.CanStay)
}

func TestHighStepBlocks(t *testing.T) {
	step := brush.FromBBox(cube.Box(1, 0, -50, 10, 0.6, 50), 0)
	sv := newSolver(newWorld(floorBrush(), step))

	s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
	settle(t, sv, s)
	for i := 0; i < 60; i++ {
		sv.GroundMove(s, mgl32.Vec3{1, 0, 0}, 4, frame, 0)
	}

	assert.LessOrEqual(t, s.Center.X(), float32(0.5))
	assert.InDelta(t, 1.0, s.Center.Y(), 1e-2)
	assert.True(t, s.Blocked)
	assert.Equal(t, mgl32.Vec3{}, s.ClipVel)
}

func TestSlopeClassificationBoundary(t *testing.T) {
	at := game.SlopeThreshold
	below := math.Nextafter32(at, 0)

	for _, tc := range []struct {
		y    float32
		stay bool
	}{
		{y: 1, stay: true},
		{y: at, stay: true},
		{y: below, stay: false},
		{y: 0.3, stay: false},
	} {
		n := mgl32.Vec3{math32.Sqrt(1 - tc.y*tc.y), tc.y, 0}
		s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
		s.TPNormal = game.Up
		newSolver(supportWorld{normal: n}).GroundMove(s, mgl32.Vec3{}, 0, frame, 0)

		assert.Equal(t, tc.stay, s.CanStay, "y=%v", tc.y)
		assert.True(t, s.OnSurface, "y=%v", tc.y)
		assert.Equal(t, n, s.TPNormal)
	}
}

func TestGentleSlopeHolds(t *testing.T) {
	// 30 degrees: rises 5.7735 over 10 along +x.
	ramp := brush.Sloped(cube.Box(0, 0, -10, 10, 5.7735, 10), 0)
	sv := newSolver(newWorld(ramp))

	s := NewState(mgl32.Vec3{5, 3.98, 0}, 0.5, 0.5)
	for i := 0; i < 30; i++ {
		sv.GroundMove(s, mgl32.Vec3{}, 0, frame, 0)
	}

	assert.True(t, s.CanStay)
	assert.True(t, s.OnSurface)
	assert.InDelta(t, 0.866, s.TPNormal.Y(), 1e-3)
	assert.InDelta(t, 5, s.Center.X(), 1e-3)
}

func TestSteepSlopeSlides(t *testing.T) {
	// 60 degrees: rises 8.66 over 5 along +x.
	ramp := brush.Sloped(cube.Box(0, 0, -10, 5, 8.660254, 10), 0)
	sv := newSolver(newWorld(ramp))

	s := NewState(mgl32.Vec3{2.5, 5.85, 0}, 0.5, 0.5)
	for i := 0; i < 10; i++ {
		sv.GroundMove(s, mgl32.Vec3{}, 0, frame, 0)
		require.True(t, game.IsFiniteVec3(s.Center))
	}

	assert.False(t, s.CanStay)
	assert.Less(t, s.Center.X(), float32(2.5-1e-3))
	assert.Less(t, s.Center.Y(), float32(5.85))
}

func TestStartSolidRollsBack(t *testing.T) {
	sv := newSolver(newWorld(brush.FromBBox(cube.Box(-5, -5, -5, 5, 5, 5), 0)))
	s := NewState(mgl32.Vec3{}, 0.5, 0.5)
	sv.GroundMove(s, mgl32.Vec3{1, 0, 0}, 3, frame, 0)

	assert.Equal(t, mgl32.Vec3{}, s.Center)
	assert.Equal(t, OutcomeRolledBack, s.Outcome)
	assert.Equal(t, game.Up, s.TPNormal)
	assert.True(t, s.Blocked)
	assert.Equal(t, mgl32.Vec3{}, s.ClipVel)
}

func TestSlideStartingSolidAborts(t *testing.T) {
	sv := newSolver(newWorld(brush.FromBBox(cube.Box(-5, -5, -5, 5, 5, 5), 0)))
	s := NewState(mgl32.Vec3{}, 0.5, 0.5)

	// The jump skips the ground probe, so the slide's own start solid abort is what ends the frame.
	sv.GroundMove(s, mgl32.Vec3{1, 0, 0}, 3, frame, 5)

	assert.Equal(t, OutcomeStartSolid, s.Outcome)
	assert.Equal(t, mgl32.Vec3{}, s.Center)
	assert.Equal(t, mgl32.Vec3{}, s.ClipVel)
	assert.True(t, s.Blocked)
	assert.False(t, s.OnSurface)
}

func TestThreePlaneCreaseStops(t *testing.T) {
	ctx := &moveContext{sv: newSolver(nil), slope: game.SlopeThreshold}
	// The walkable faces of a three sided funnel: clipping against any one of them runs into another.
	ctx.planes[0] = mgl32.Vec3{-0.6, 0.8, 0}
	ctx.planes[1] = mgl32.Vec3{0.3, 0.8, -0.5196152}
	ctx.planes[2] = mgl32.Vec3{0.3, 0.8, 0.5196152}
	down := mgl32.Vec3{0, -1, 0}
	l := &slideLoop{oriVel: down, curVel: down, numPlanes: 3}

	assert.False(t, ctx.clipPlanes(l, 2))
	assert.Equal(t, mgl32.Vec3{}, ctx.velocity)
	assert.Equal(t, OutcomeDegenerate, ctx.outcome)

	// Two of the faces still leave the crease between them.
	ctx.outcome = OutcomeNormal
	l.numPlanes = 2
	require.True(t, ctx.clipPlanes(l, 2))
	assert.Equal(t, OutcomeNormal, ctx.outcome)
	assert.Greater(t, ctx.velocity.Len(), float32(0))
	assert.InDelta(t, 0, ctx.velocity.Dot(ctx.planes[0]), 1e-4)
	assert.InDelta(t, 0, ctx.velocity.Dot(ctx.planes[1]), 1e-4)
}

func TestStepUpFallsBackOffSteepLanding(t *testing.T) {
	// A low wedge whose top rises too steeply to stand on.
	wedge := brush.Sloped(cube.Box(1, 0, -50, 1.1, 0.2, 50), 0)
	sv, traced := tracingSolver(newWorld(floorBrush(), wedge))

	s := NewState(mgl32.Vec3{0.45, 1, 0}, 0.5, 0.5)
	settle(t, sv, s)
	for i := 0; i < 60; i++ {
		sv.GroundMove(s, mgl32.Vec3{1, 0, 0}, 4, frame, 0)
		require.True(t, game.IsFiniteVec3(s.Center), "frame %d", i)
	}

	assert.True(t, traced("step up: landed on unwalkable plane %v"))
	assert.Less(t, s.Center.X(), float32(0.85))
	assert.InDelta(t, 1.0, s.Center.Y(), 1e-2)
	assert.True(t, s.CanStay)
}

func TestStepUpBlockedOverhead(t *testing.T) {
	step := brush.FromBBox(cube.Box(1, 0, -50, 10, 0.2, 50), 0)
	sv, traced := tracingSolver(upSolidWorld{newWorld(floorBrush(), step)})

	s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
	settle(t, sv, s)
	for i := 0; i < 60; i++ {
		sv.GroundMove(s, mgl32.Vec3{1, 0, 0}, 4, frame, 0)
	}

	assert.True(t, traced("step up: up trace start solid"))
	assert.LessOrEqual(t, s.Center.X(), float32(0.5))
	assert.InDelta(t, 1.0, s.Center.Y(), 1e-2)
	assert.True(t, s.CanStay)
}

func TestLowCeilingPreventsStepUp(t *testing.T) {
	step := brush.FromBBox(cube.Box(1, 0, -50, 10, 0.2, 50), 0)
	ceiling := brush.FromBBox(cube.Box(-50, 2.05, -50, 50, 3, 50), 0)
	sv := newSolver(newWorld(floorBrush(), step, ceiling))

	s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
	settle(t, sv, s)
	for i := 0; i < 60; i++ {
		sv.GroundMove(s, mgl32.Vec3{1, 0, 0}, 4, frame, 0)
	}

	assert.LessOrEqual(t, s.Center.X(), float32(0.5))
	assert.InDelta(t, 1.0, s.Center.Y(), 1e-2)
}

func TestLevelOnlyDropsVerticalSpeed(t *testing.T) {
	ctx := &moveContext{gravity: 10, timeSec: 0.1}

	ctx.velocity = mgl32.Vec3{3, -4, 0}
	ctx.level(false)
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, ctx.velocity)

	ctx.velocity = mgl32.Vec3{3, -4, 0}
	ctx.level(true)
	assert.InDelta(t, 3, ctx.velocity.X(), 1e-6)
	assert.InDelta(t, -4.5, ctx.velocity.Y(), 1e-6)
}

func TestJumpLeavesGround(t *testing.T) {
	sv := newSolver(newWorld(floorBrush()))
	s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
	settle(t, sv, s)
	y := s.Center.Y()

	sv.GroundMove(s, mgl32.Vec3{}, 0, frame, JumpStartSpeed(s.Gravity, game.JumpHeight))
	assert.Greater(t, s.Center.Y(), y)
	assert.False(t, s.OnSurface)
	assert.Equal(t, mgl32.Vec3{}, s.TPNormal)

	for i := 0; i < 120; i++ {
		sv.GroundMove(s, mgl32.Vec3{}, 0, frame, 0)
	}
	assert.InDelta(t, y, s.Center.Y(), 1e-2)
	assert.True(t, s.CanStay)
}

func TestOwnColliderIsIgnored(t *testing.T) {
	m := newWorld(floorBrush())
	sv := newSolver(m)
	s := NewState(mgl32.Vec3{0, 1, 0}, 0.5, 0.5)
	s.ActorID = 7
	settle(t, sv, s)

	m.SetCollider(7, sweep.Capsule{Center: s.Center, HalfLen: s.HalfLen, Radius: s.Radius})
	for i := 0; i < 30; i++ {
		sv.GroundMove(s, mgl32.Vec3{1, 0, 0}, 4, frame, 0)
	}
	assert.Greater(t, s.Center.X(), float32(0.2))
	assert.NotEqual(t, OutcomeRolledBack, s.Outcome)
}

func TestMoveBatchMatchesSequential(t *testing.T) {
	sv := newSolver(newWorld(floorBrush()))
	pool := worker.NewPool(4)
	defer pool.Close()

	var seq, par []*State
	for i := 0; i < 16; i++ {
		s := NewState(mgl32.Vec3{float32(i) * 3, 1.2, 0}, 0.5, 0.5)
		s.VelDirH = mgl32.Vec3{1, 0, float32(i%3) - 1}
		s.Speed = float32(i % 5)
		s.TimeSec = frame
		cp := *s
		seq = append(seq, s)
		par = append(par, &cp)
	}
	for f := 0; f < 20; f++ {
		for _, s := range seq {
			sv.Move(s)
		}
		sv.MoveBatch(par, pool)
	}
	for i := range seq {
		assert.Equal(t, *seq[i], *par[i], "actor %d", i)
	}
}

func TestObjectGroundMove(t *testing.T) {
	m := newWorld(floorBrush())

	o := ObjectMove{Pos: mgl32.Vec3{0, 0, 0}, Dir: mgl32.Vec3{1, 0, 0}, Velocity: 2, TimeSec: 0.5, TraceGround: true}
	ObjectGroundMove(m, &o)
	assert.InDelta(t, 1, o.Pos.X(), 1e-5)
	assert.InDelta(t, 0, o.Pos.Y(), 1e-2)
	assert.InDelta(t, 1, o.Normal.Y(), 1e-5)

	o = ObjectMove{Pos: mgl32.Vec3{0, 5, 0}, Dir: mgl32.Vec3{0, 0, 1}, Velocity: 1, TimeSec: 1}
	ObjectGroundMove(m, &o)
	assert.Equal(t, mgl32.Vec3{0, 5, 1}, o.Pos)
	assert.Equal(t, game.Up, o.Normal)

	assert.InDelta(t, 0, EnvHeight(m, mgl32.Vec3{3, 1, 3}), 1e-2)
	assert.Equal(t, float32(-200), EnvHeight(m, mgl32.Vec3{100, -200, 0}))
	assert.Equal(t, float32(2), EnvHeight(nil, mgl32.Vec3{0, 2, 0}))
}

func TestDebugfTracesFrames(t *testing.T) {
	var (
		mu    sync.Mutex
		lines []string
	)
	opts := DefaultOptions()
	opts.Debugf = func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, format)
	}
	sv := NewSolver(newWorld(floorBrush()), opts)
	sv.GroundMove(NewState(mgl32.Vec3{0, 1.2, 0}, 0.5, 0.5), mgl32.Vec3{1, 0, 0}, 3, frame, 0)

	assert.NotEmpty(t, lines)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "normal", OutcomeNormal.String())
	assert.Equal(t, "start-solid", OutcomeStartSolid.String())
	assert.Equal(t, "degenerate-crease", OutcomeDegenerate.String())
	assert.Equal(t, "rolled-back", OutcomeRolledBack.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
