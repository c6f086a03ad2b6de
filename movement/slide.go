package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/collision"
	"github.com/oomph-ac/capsim/game"
)

// clipVelocity removes the part of in that runs into the plane with normal n, keeping the speed of
// in, and leaves a little outward velocity scaled by bounce so the next trace does not start on
// the plane again.
func clipVelocity(in, n mgl32.Vec3, bounce float32) mgl32.Vec3 {
	bounce = game.ClampFloat(bounce, 1, 1.5)
	dir, speed := game.Normalize(in)
	dtp := dir.Dot(n)
	if dtp > -game.ParallelDot && dtp < game.ParallelDot {
		return in
	}

	out := game.SafeNormalize(in.Sub(n.Mul(dtp * speed))).Mul(speed)
	backoff := math32.Abs(dtp) * (bounce - 1) * speed
	if backoff < game.MinClipBackoff {
		backoff = game.MinClipBackoff
	}
	return out.Add(n.Mul(backoff))
}

// slideLoop carries the bookkeeping shared by the slide variants.
type slideLoop struct {
	oriVel, curVel mgl32.Vec3
	oriPos         mgl32.Vec3
	timeLeft       float32
	allFraction    float32
	numPlanes      int
}

func (ctx *moveContext) newSlideLoop() *slideLoop {
	return &slideLoop{
		oriVel:   ctx.velocity,
		curVel:   ctx.velocity,
		oriPos:   ctx.start,
		timeLeft: ctx.timeSec,
	}
}

type stepResult uint8

const (
	// stepDone means the loop has nothing left to do: the delta was too small or fully covered.
	stepDone stepResult = iota
	// stepHit means a plane was hit and recorded.
	stepHit
	// stepSolid means the trace started solid and the move was abandoned.
	stepSolid
)

// step traces the remaining motion and advances the start point.
func (ctx *moveContext) step(l *slideLoop, try int) stepResult {
	ctx.end = ctx.start
	delta := ctx.velocity.Mul(l.timeLeft)
	if delta.LenSqr() < game.SqrDistEpsilon {
		ctx.debugf("try %d: small delta", try)
		return stepDone
	}

	collided := ctx.trace(ctx.start, delta, collision.EnvOptions{})
	env := &ctx.env
	if env.StartSolid {
		ctx.end = l.oriPos
		ctx.velocity = mgl32.Vec3{}
		ctx.outcome = OutcomeStartSolid
		ctx.debugf("try %d: start solid at %v", try, ctx.start)
		ctx.logDebug("slide started solid")
		return stepSolid
	}

	f := env.Fraction
	if f > 0 {
		l.allFraction += f
		l.timeLeft -= l.timeLeft * f
	}
	ctx.start = env.End()
	hitPlane := collided && f <= 1-game.FractionEpsilon
	if hitPlane {
		ctx.start = ctx.start.Add(env.HitNormal.Mul(game.DistEpsilon))
	}
	ctx.end = ctx.start
	ctx.debugf("try %d: start=%v delta=%v fraction=%v normal=%v end=%v", try, env.Start, delta, f, env.HitNormal, ctx.end)

	if f > game.FractionEpsilon {
		l.numPlanes = 0
	}
	if !hitPlane {
		return stepDone
	}
	ctx.planes[l.numPlanes] = env.HitNormal
	l.numPlanes++
	return stepHit
}

// clipPlanes makes the velocity parallel to every touched plane. Planes that are too steep to walk
// on but face upwards are treated as walls. It returns false when the planes leave no direction to
// move in.
func (ctx *moveContext) clipPlanes(l *slideLoop, try int) bool {
	i := 0
	for ; i < l.numPlanes; i++ {
		n := ctx.planes[i]
		if n.Y() >= 0 && n.Y() < ctx.slope {
			n[1] = 0
			n = game.SafeNormalize(n)
			ctx.planes[i] = n
		}
		ctx.velocity = clipVelocity(l.curVel, n, game.BounceClip)

		j := 0
		for ; j < l.numPlanes; j++ {
			if j != i && ctx.planes[j].Dot(ctx.velocity) < 0 {
				break
			}
		}
		if j == l.numPlanes {
			break
		}
	}

	if i != l.numPlanes {
		l.curVel = ctx.velocity
		return true
	}
	if l.numPlanes != 2 {
		// TODO: three or more planes stop the actor for the frame; a vertex-cone solve would let it
		// slide out of concave corners instead.
		ctx.velocity = mgl32.Vec3{}
		ctx.outcome = OutcomeDegenerate
		ctx.debugf("try %d: %d planes with no slide direction", try, l.numPlanes)
		ctx.logDebug("degenerate crease", "planes", l.numPlanes)
		return false
	}

	crease := game.SafeNormalize(ctx.planes[0].Cross(ctx.planes[1]))
	ctx.velocity = crease.Mul(crease.Dot(l.curVel))
	ctx.debugf("try %d: crease dir=%v vel=%v", try, crease, ctx.velocity)
	return true
}

// reversed stops the actor when the velocity turned too far from where it originally wanted to go,
// which would otherwise jitter in concave corners.
func (ctx *moveContext) reversed(l *slideLoop, try int) bool {
	if game.SafeNormalize(ctx.velocity).Dot(game.SafeNormalize(l.oriVel)) > game.ReverseDot {
		return false
	}
	ctx.velocity = mgl32.Vec3{}
	ctx.debugf("try %d: velocity reversed", try)
	return true
}

func (ctx *moveContext) finishSlide(l *slideLoop) {
	if l.allFraction <= game.FractionEpsilon {
		ctx.velocity = mgl32.Vec3{}
		ctx.debugf("no progress, velocity cleared")
	}
}

// trySlide is the general slide move used in the air and as the last resort on the ground.
func (ctx *moveContext) trySlide() {
	l := ctx.newSlideLoop()
	ctx.debugf("slide: vel=%v", l.oriVel)

	for try := 0; try < game.MaxTryMove; try++ {
		res := ctx.step(l, try)
		if res == stepSolid {
			return
		}
		if res == stepDone {
			break
		}

		if l.numPlanes == 1 && ctx.airborne {
			n := ctx.planes[0]
			in := l.curVel
			if n.Y() >= ctx.slope {
				in[0] *= ctx.sv.Options.ClimbSpeedRatio
				in[2] *= ctx.sv.Options.ClimbSpeedRatio
			}
			ctx.velocity = clipVelocity(in, n, game.BounceClip)
			l.curVel = ctx.velocity
		} else if !ctx.clipPlanes(l, try) {
			break
		}

		if ctx.reversed(l, try) {
			break
		}
	}
	ctx.finishSlide(l)
}

// preSlide is the walking slide. It gives up as soon as it touches a plane that cannot be walked
// on, restoring the velocity and leaving the remaining time in ctx.timeSec so the caller can try
// stepping over the obstacle. A start solid abort counts as handled.
func (ctx *moveContext) preSlide() bool {
	l := ctx.newSlideLoop()
	ctx.debugf("pre-slide: vel=%v", l.oriVel)

	for try := 0; try < game.MaxTryMove; try++ {
		res := ctx.step(l, try)
		if res == stepSolid {
			return true
		}
		if res == stepDone {
			break
		}

		for i := 0; i < l.numPlanes; i++ {
			if ctx.planes[i].Y() < ctx.slope {
				ctx.velocity = l.oriVel
				ctx.timeSec = l.timeLeft
				ctx.debugf("try %d: unwalkable plane %v", try, ctx.planes[i])
				return false
			}
		}
		if !ctx.clipPlanes(l, try) {
			break
		}
		if ctx.reversed(l, try) {
			break
		}
	}
	ctx.finishSlide(l)
	return true
}
