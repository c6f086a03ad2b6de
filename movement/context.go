package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/brush"
	"github.com/oomph-ac/capsim/collision"
	"github.com/oomph-ac/capsim/game"
)

const maxPlanes = game.MaxTryMove

// moveContext holds the working values of a single Move call.
type moveContext struct {
	sv *Solver

	start, end  mgl32.Vec3
	velocity    mgl32.Vec3
	absVelocity mgl32.Vec3

	wishDir mgl32.Vec3
	wishSpd float32
	timeSec float32

	tpNormal mgl32.Vec3

	halfLen, radius float32
	slope           float32
	gravity         float32
	stepHeight      float32
	actorID         int64

	// airborne is fixed at the start of the frame: no walkable support, or a jump.
	airborne  bool
	attempted bool
	outcome   Outcome

	planes [maxPlanes]mgl32.Vec3
	env    collision.EnvTrace
}

// trace sweeps the actor's capsule from start along delta. The result is left in ctx.env.
func (ctx *moveContext) trace(start, delta mgl32.Vec3, opts collision.EnvOptions) bool {
	ctx.env = collision.EnvTrace{
		Start:      start,
		HalfLen:    ctx.halfLen,
		Radius:     ctx.radius,
		Delta:      delta,
		CheckFlags: brush.FlagSkipMoveTrace,
		ActorID:    ctx.actorID,
		Fraction:   1,
	}
	if ctx.sv.World == nil {
		return false
	}
	return ctx.sv.World.CollideWithEnv(&ctx.env, opts)
}

// groundTrace probes below end for a plane to stand on.
func (ctx *moveContext) groundTrace() (collision.GroundTrace, bool) {
	g := collision.GroundTrace{
		Start:   ctx.end,
		HalfLen: ctx.halfLen,
		Radius:  ctx.radius,
		DeltaY:  ctx.sv.Options.GroundProbe,
		ActorID: ctx.actorID,
		End:     ctx.end,
	}
	if ctx.sv.World == nil {
		return g, true
	}
	ok := ctx.sv.World.RetrieveSupportPlane(&g)
	return g, ok
}

func (ctx *moveContext) debugf(format string, args ...any) {
	if ctx.sv.Options.Debugf != nil {
		ctx.sv.Options.Debugf(format, args...)
	}
}

func (ctx *moveContext) logDebug(msg string, args ...any) {
	if ctx.sv.Options.Log != nil {
		ctx.sv.Options.Log.Debug(msg, append(args, "actor", ctx.actorID, "pos", ctx.start)...)
	}
}
