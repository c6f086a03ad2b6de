package movement

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/collision"
)

var ctxPool = sync.Pool{
	New: func() any {
		return &moveContext{}
	},
}

func newCtx(sv *Solver, s *State) *moveContext {
	ctx := ctxPool.Get().(*moveContext)
	ctx.sv = sv
	ctx.start = s.Center
	ctx.end = s.Center
	ctx.velocity = s.ClipVel
	ctx.wishDir = s.VelDirH
	ctx.wishSpd = s.Speed
	ctx.timeSec = s.TimeSec
	ctx.tpNormal = s.TPNormal
	ctx.halfLen = s.HalfLen
	ctx.radius = s.Radius
	ctx.slope = s.SlopeThresh
	ctx.gravity = s.Gravity
	ctx.stepHeight = s.StepHeight
	ctx.actorID = s.ActorID
	return ctx
}

func putCtx(ctx *moveContext) {
	ctx.reset()
	ctxPool.Put(ctx)
}

func (ctx *moveContext) reset() {
	ctx.sv = nil
	ctx.start, ctx.end = mgl32.Vec3{}, mgl32.Vec3{}
	ctx.velocity, ctx.absVelocity = mgl32.Vec3{}, mgl32.Vec3{}
	ctx.wishDir, ctx.wishSpd = mgl32.Vec3{}, 0
	ctx.timeSec = 0
	ctx.tpNormal = mgl32.Vec3{}
	ctx.halfLen, ctx.radius = 0, 0
	ctx.slope, ctx.gravity, ctx.stepHeight = 0, 0, 0
	ctx.actorID = 0
	ctx.airborne, ctx.attempted = false, false
	ctx.outcome = OutcomeNormal
	ctx.planes = [maxPlanes]mgl32.Vec3{}
	ctx.env = collision.EnvTrace{}
}
