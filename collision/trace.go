package collision

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/brush"
	"github.com/oomph-ac/capsim/game"
)

// maxVertTrace is the furthest a vertical probe looks for ground.
const maxVertTrace = float32(1000)

// AABBTrace sweeps an axis aligned box, approximated by the capsule fitting inside it, and returns
// where its center ends up. A box starting inside solid geometry does not move.
func (m *Manager) AABBTrace(center, ext, delta mgl32.Vec3) (mgl32.Vec3, float32, bool) {
	radius := math32.Max(ext.X(), ext.Z())
	env := EnvTrace{
		Start:      center,
		HalfLen:    math32.Max(ext.Y()-radius, 0),
		Radius:     radius,
		Delta:      delta,
		CheckFlags: brush.FlagSkipMoveTrace,
		ActorID:    -1,
	}
	collided := m.CollideWithEnv(&env, EnvOptions{})
	if env.StartSolid {
		return center, 0, true
	}
	return env.End(), env.Fraction, collided
}

// CameraTrace sweeps a small sphere for a camera moving from start by delta. When the camera closes
// in on terrain it is pulled back along the delta, more so the more grazing the approach, and kept
// above the terrain surface. Brush hits and misses end where the sweep stopped.
func (m *Manager) CameraTrace(start, delta mgl32.Vec3) (mgl32.Vec3, float32, bool) {
	if m == nil {
		return start.Add(delta), 1, false
	}
	m.RLock()
	defer m.RUnlock()

	env := EnvTrace{
		Start:      start,
		Radius:     m.cameraSize,
		Delta:      delta,
		CheckFlags: brush.FlagSkipCameraTrace,
		ActorID:    -1,
	}
	collided := m.collideWithEnv(&env, EnvOptions{})

	fraction := env.Fraction
	terrainHit := collided && !env.StartSolid && env.HitEnv == HitTerrain
	switch {
	case env.StartSolid:
		fraction = 0
	case terrainHit && env.HitNormal.Dot(delta) < 0:
		if dir, dist := game.Normalize(delta); dist > 0 {
			incidence := math32.Max(math32.Abs(env.HitNormal.Dot(dir)), m.cameraIncidence)
			fraction -= m.cameraSize / incidence / dist
		}
	}
	fraction = math32.Max(fraction, 0)

	end := start.Add(delta.Mul(fraction))
	if terrainHit {
		if y, _, ok := m.terrain.Height(end.X(), end.Z()); ok && end.Y() < y+m.cameraSize {
			end[1] = y + m.cameraSize
		}
	}
	return end, fraction, collided
}

// AnimCameraTrace moves a camera to start+delta by first dropping it from above start, so cameras
// animated through low ceilings settle below them.
func (m *Manager) AnimCameraTrace(start, delta mgl32.Vec3) (mgl32.Vec3, bool) {
	if m == nil {
		return start.Add(delta), false
	}
	m.RLock()
	defer m.RUnlock()

	probe := EnvTrace{
		Start:      start.Add(mgl32.Vec3{0, game.AnimCameraProbe, 0}),
		Radius:     m.cameraSize,
		Delta:      mgl32.Vec3{0, -game.AnimCameraProbe, 0},
		CheckFlags: brush.FlagSkipCameraTrace,
		ActorID:    -1,
	}
	m.collideWithEnv(&probe, EnvOptions{})
	from := probe.Start.Add(probe.Delta.Mul(math32.Max(probe.Fraction, 0)))

	env := probe
	env.Start = from
	env.Delta = start.Add(delta).Sub(from)
	collided := m.collideWithEnv(&env, EnvOptions{})
	return from.Add(env.Delta.Mul(math32.Max(env.Fraction, 0))), collided
}

// RayTrace casts a ray of length dist. It returns the hit position and normal.
func (m *Manager) RayTrace(start, dir mgl32.Vec3, dist float32) (mgl32.Vec3, mgl32.Vec3, bool) {
	if m == nil {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	m.RLock()
	defer m.RUnlock()
	return m.rayTrace(start, dir, dist)
}

func (m *Manager) rayTrace(start, dir mgl32.Vec3, dist float32) (mgl32.Vec3, mgl32.Vec3, bool) {
	delta := game.SafeNormalize(dir).Mul(dist)
	if m.terrain == nil && m.colliders.Len() == 0 {
		if m.tree.Empty() {
			return mgl32.Vec3{}, mgl32.Vec3{}, false
		}
		if box := m.tree.BBox(); !game.PointInBox(box, start, 0) {
			if _, ok := trace.BBoxIntercept(box, start, start.Add(delta)); !ok {
				return mgl32.Vec3{}, mgl32.Vec3{}, false
			}
		}
	}

	env := EnvTrace{Start: start, Delta: delta, CheckFlags: brush.FlagSkipMoveTrace, ActorID: -1}
	if !m.collideWithEnv(&env, EnvOptions{}) {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	return start.Add(delta.Mul(math32.Max(env.Fraction, 0))), env.HitNormal, true
}

// VertRayTrace casts a ray straight down from start.
func (m *Manager) VertRayTrace(start mgl32.Vec3, dist float32) (mgl32.Vec3, mgl32.Vec3, bool) {
	return m.RayTrace(start, mgl32.Vec3{0, -1, 0}, dist)
}

// VertAABBTrace drops a box onto whatever is below it. When nothing supports the box it is placed on
// the terrain, and false is returned.
func (m *Manager) VertAABBTrace(center, ext mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, bool) {
	if m == nil {
		return center, mgl32.Vec3{}, false
	}
	m.RLock()
	defer m.RUnlock()

	var (
		terrainY = center.Y() - ext.Y()
		normal   mgl32.Vec3
		deltaY   = maxVertTrace
	)
	if m.terrain != nil {
		if y, n, ok := m.terrain.Height(center.X(), center.Z()); ok {
			terrainY, normal = y, n
			deltaY = game.ClampFloat(center.Y()-ext.Y()-y+0.5, 0, maxVertTrace)
		}
	}

	radius := math32.Max(ext.X(), ext.Z())
	g := GroundTrace{
		Start:   center,
		HalfLen: math32.Max(ext.Y()-radius, 0),
		Radius:  radius,
		DeltaY:  deltaY,
		ActorID: -1,
	}
	if !m.retrieveSupportPlane(&g) || !g.Support {
		return mgl32.Vec3{center.X(), terrainY + ext.Y() + game.DistEpsilon, center.Z()}, normal, false
	}
	return g.End, g.HitNormal, true
}
