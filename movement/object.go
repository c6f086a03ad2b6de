package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/game"
)

// groundTraceDist is how far below its lifted start an object looks for ground.
const groundTraceDist = float32(1000)

// RayTracer answers vertical ray queries. *collision.Manager implements it.
type RayTracer interface {
	VertRayTrace(start mgl32.Vec3, dist float32) (mgl32.Vec3, mgl32.Vec3, bool)
}

// ObjectMove is a non-capsule object moved without collision, such as a projectile or a pickup,
// optionally kept on the ground.
type ObjectMove struct {
	Pos      mgl32.Vec3
	Dir      mgl32.Vec3
	Velocity float32
	TimeSec  float32
	// TraceGround snaps the object onto whatever is below it after moving.
	TraceGround bool
	// Normal is the ground normal under the object. It is up unless TraceGround found ground.
	Normal mgl32.Vec3
}

// ObjectGroundMove moves the object along its direction. When ground tracing is on, the ground is
// searched from TraceStepHeight above the new position so the object climbs onto anything it moved
// into.
func ObjectGroundMove(rt RayTracer, o *ObjectMove) {
	o.Pos = o.Pos.Add(o.Dir.Mul(o.Velocity * o.TimeSec))
	o.Normal = game.Up
	if !o.TraceGround || rt == nil {
		return
	}

	start := o.Pos.Add(mgl32.Vec3{0, game.TraceStepHeight})
	if pos, normal, ok := rt.VertRayTrace(start, groundTraceDist); ok {
		o.Pos, o.Normal = pos, normal
	}
}

// EnvHeight returns the height of the ground below pos, searching from TraceStepHeight above it.
// Without ground the height of pos itself is returned.
func EnvHeight(rt RayTracer, pos mgl32.Vec3) float32 {
	if rt == nil {
		return pos.Y()
	}
	start := pos.Add(mgl32.Vec3{0, game.TraceStepHeight})
	if hit, _, ok := rt.VertRayTrace(start, groundTraceDist); ok {
		return hit.Y()
	}
	return pos.Y()
}
