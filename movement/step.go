package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/collision"
	"github.com/oomph-ac/capsim/game"
)

// stepUp lifts the actor by the step height, walks forward and settles it back down. If the
// raised walk is blocked as well, or the actor would land on something too steep to stand on, the
// attempt is thrown away and the general slide runs from where the step started.
func (ctx *moveContext) stepUp() {
	origin := ctx.start
	originVel := ctx.velocity
	originTime := ctx.timeSec

	ctx.trace(origin, game.Up.Mul(ctx.stepHeight), collision.EnvOptions{})
	if ctx.env.StartSolid {
		ctx.end = origin
		ctx.debugf("step up: up trace start solid")
		return
	}
	raised := ctx.env.End()
	stepDist := raised.Sub(origin).Len()
	ctx.debugf("step up: raised=%v by %v", raised, stepDist)

	ctx.start = raised
	if !ctx.preSlide() {
		ctx.debugf("step up: raised walk blocked")
		ctx.slideFrom(origin, originVel, originTime)
		return
	}

	forward := ctx.end.Sub(raised).Len()
	collided := ctx.trace(ctx.end, mgl32.Vec3{0, -(forward + stepDist), 0}, collision.EnvOptions{RequireSupportPlane: true})
	if ctx.env.StartSolid {
		ctx.end = origin
		ctx.debugf("step up: down trace start solid")
		return
	}
	ctx.end = ctx.env.End()
	ctx.debugf("step up: forward=%v landed=%v normal=%v", forward, ctx.end, ctx.env.HitNormal)

	if collided && ctx.env.HitNormal.Y() < ctx.slope {
		ctx.debugf("step up: landed on unwalkable plane %v", ctx.env.HitNormal)
		ctx.slideFrom(origin, originVel, originTime)
	}
}

// slideFrom restores the given state and runs the general slide move.
func (ctx *moveContext) slideFrom(origin, vel mgl32.Vec3, timeSec float32) {
	ctx.start = origin
	ctx.end = origin
	ctx.velocity = vel
	ctx.timeSec = timeSec
	ctx.trySlide()
}
