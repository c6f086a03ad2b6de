package collision

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/brush"
	"github.com/oomph-ac/capsim/game"
	"github.com/oomph-ac/capsim/sweep"
)

// HitEnv tells which part of the environment a trace hit.
type HitEnv uint8

const (
	HitNull HitEnv = iota
	HitTerrain
	HitBrush
	HitCollider
)

// EnvTrace is a capsule sweep against everything in the manager: terrain, brushes and the dynamic
// colliders of other actors.
type EnvTrace struct {
	Start   mgl32.Vec3
	HalfLen float32
	Radius  float32
	Delta   mgl32.Vec3
	// CheckFlags excludes brushes carrying any of the flags.
	CheckFlags brush.Flag
	// ActorID is the collider excluded from the trace, or -1.
	ActorID int64

	Fraction   float32
	HitNormal  mgl32.Vec3
	StartSolid bool
	HitFlags   brush.Flag
	HitEnv     HitEnv
	HitBrush   *brush.Brush
}

// EnvOptions modify how CollideWithEnv reports a hit.
type EnvOptions struct {
	// RequireSupportPlane replaces the raw hit normal by the support plane of the contact topology,
	// which is what ground classification needs on edges and vertices.
	RequireSupportPlane bool
}

// Capsule returns the swept capsule at its start position.
func (t *EnvTrace) Capsule() sweep.Capsule {
	return sweep.Capsule{Center: t.Start, HalfLen: t.HalfLen, Radius: t.Radius}
}

// End returns the capsule center after the trace. A negative fraction backs out along the normal.
func (t *EnvTrace) End() mgl32.Vec3 {
	if t.Fraction < 0 {
		return t.Start.Sub(t.HitNormal.Mul(t.Fraction))
	}
	return t.Start.Add(t.Delta.Mul(t.Fraction))
}

func (t *EnvTrace) reset() {
	t.Fraction = 100
	t.HitNormal = mgl32.Vec3{}
	t.StartSolid = false
	t.HitFlags = 0
	t.HitEnv = HitNull
	t.HitBrush = nil
}

// CollideWithEnv sweeps the trace's capsule through the environment and reports whether anything was
// hit. Fraction is at most 1 afterwards and may be negative for shallow starting overlaps. A nil
// manager never collides.
func (m *Manager) CollideWithEnv(t *EnvTrace, opts EnvOptions) bool {
	if m == nil {
		t.reset()
		t.Fraction = 1
		return false
	}
	m.RLock()
	defer m.RUnlock()
	return m.collideWithEnv(t, opts)
}

func (m *Manager) collideWithEnv(t *EnvTrace, opts EnvOptions) bool {
	t.reset()
	collided := false

	if m.terrain != nil {
		if hit, ok := m.terrain.Trace(t.Capsule().Foot(), t.Delta); ok {
			collided = true
			t.Fraction, t.HitNormal, t.StartSolid = hit.Fraction, hit.Normal, hit.StartSolid
			t.HitEnv, t.HitFlags = HitTerrain, brush.FlagTerrain
		}
	}

	if !t.StartSolid {
		req := sweep.NewRequest(t.Capsule(), t.Delta, t.CheckFlags)
		req.ActorID = t.ActorID
		if m.capsuleCollide(req) && (req.StartSolid || req.Fraction < t.Fraction) {
			collided = true
			t.Fraction, t.StartSolid = req.Fraction, req.StartSolid
			if req.Dynamic {
				t.HitEnv, t.HitFlags, t.HitBrush = HitCollider, 0, nil
			} else {
				t.HitEnv, t.HitFlags, t.HitBrush = HitBrush, req.Brush.Flags, req.Brush
			}
			if opts.RequireSupportPlane && !req.StartSolid {
				t.HitNormal = supportNormal(req.Hit)
			} else {
				t.HitNormal = req.Normal
			}
		}
	}

	if t.Fraction > 1 {
		t.Fraction = 1
	}
	return collided
}

// supportNormal returns the normal a capsule resting on the hit would stand on.
func supportNormal(hit sweep.Hit) mgl32.Vec3 {
	if hit.Brush == nil {
		return hit.Normal
	}
	switch hit.Contact.Size {
	case sweep.ContactEdge:
		return hit.Brush.EdgeSupportNormal(hit.Contact.A, hit.Contact.B)
	case sweep.ContactVertex:
		return hit.Brush.VertexSupportNormal(hit.Contact.A)
	default:
		return hit.Normal
	}
}

// CapsuleCollideWithBrush sweeps the request through the brush octree and the dynamic colliders,
// keeping the nearer hit of both.
func (m *Manager) CapsuleCollideWithBrush(req *sweep.Request) bool {
	if m == nil {
		return false
	}
	m.RLock()
	defer m.RUnlock()
	return m.capsuleCollide(req)
}

func (m *Manager) capsuleCollide(req *sweep.Request) bool {
	found := m.tree.CapsuleTrace(req)
	for el := m.colliders.Front(); el != nil; el = el.Next() {
		if el.Key == req.ActorID || !game.BoxesOverlap(el.Value.BBox(), req.Bound) {
			continue
		}
		hit, ok := m.narrow.TraceCapsule(req.Capsule, req.Delta, el.Value)
		if !ok {
			continue
		}
		hit.Collider = el.Key
		if !found || hit.Better(req.Hit) {
			req.Hit = hit
		}
		found = true
	}
	return found
}

// GroundTrace probes straight down from a capsule to find what it stands on.
type GroundTrace struct {
	Start   mgl32.Vec3
	HalfLen float32
	Radius  float32
	// DeltaY is how far down to probe.
	DeltaY  float32
	ActorID int64

	End       mgl32.Vec3
	HitNormal mgl32.Vec3
	Support   bool
}

// RetrieveSupportPlane runs the ground probe. It returns false when the capsule starts inside solid
// geometry; otherwise Support tells whether anything was found, with End and HitNormal describing
// the resting position and the plane it rests on.
func (m *Manager) RetrieveSupportPlane(g *GroundTrace) bool {
	if m == nil {
		g.End, g.HitNormal, g.Support = g.Start, mgl32.Vec3{}, false
		return true
	}
	m.RLock()
	defer m.RUnlock()
	return m.retrieveSupportPlane(g)
}

func (m *Manager) retrieveSupportPlane(g *GroundTrace) bool {
	env := EnvTrace{
		Start:      g.Start,
		HalfLen:    g.HalfLen,
		Radius:     g.Radius,
		Delta:      mgl32.Vec3{0, -g.DeltaY, 0},
		CheckFlags: brush.FlagSkipMoveTrace,
		ActorID:    g.ActorID,
	}
	g.Support = m.collideWithEnv(&env, EnvOptions{RequireSupportPlane: true})
	if env.StartSolid {
		return false
	}
	g.HitNormal = env.HitNormal
	g.End = env.End()
	return true
}
