package movement

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/collision"
	"github.com/oomph-ac/capsim/game"
)

// World is the collision environment the solver moves actors through. *collision.Manager
// implements it.
type World interface {
	CollideWithEnv(t *collision.EnvTrace, opts collision.EnvOptions) bool
	RetrieveSupportPlane(g *collision.GroundTrace) bool
}

// Options define the solver's tuning that is shared by every actor.
type Options struct {
	Accel           float32
	MaxFallSpeed    float32
	ClimbSpeedRatio float32
	GroundProbe     float32
	JumpThreshold   float32

	// Debugf receives per-try slide traces for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
	// Log receives start-solid, degenerate crease and rollback events at debug level.
	Log *slog.Logger
}

// DefaultOptions returns the stock movement tuning.
func DefaultOptions() Options {
	return Options{
		Accel:           game.MoveAcceleration,
		MaxFallSpeed:    game.MaxFallSpeed,
		ClimbSpeedRatio: game.ClimbSpeedRatio,
		GroundProbe:     game.GroundProbe,
		JumpThreshold:   game.JumpThreshold,
	}
}

// Solver moves capsule actors through a World. A Solver holds no per-call state, so Move may be
// called from several goroutines at once as long as the World allows concurrent queries.
type Solver struct {
	World   World
	Options Options
}

// NewSolver returns a solver over the given world. A nil world never collides.
func NewSolver(w World, opts Options) *Solver {
	return &Solver{World: w, Options: opts}
}

// Move runs a single frame for the actor and writes the result back into s.
func (sv *Solver) Move(s *State) {
	ctx := newCtx(sv, s)
	defer putCtx(ctx)

	ctx.debugf("move in: pos=%v wish=%v spd=%v vel=%v dt=%v tpn=%v", s.Center, s.VelDirH, s.Speed, s.ClipVel, s.TimeSec, s.TPNormal)
	ctx.fullGroundMove()

	s.ClipVel = ctx.velocity
	s.MoveDist = ctx.end.Sub(s.Center).Len()
	s.Blocked = ctx.attempted && s.MoveDist < game.DistEpsilon
	s.Center = ctx.end
	s.TPNormal = ctx.tpNormal
	s.ActualVel = ctx.absVelocity
	s.CanStay = s.TPNormal.Y() >= s.SlopeThresh
	s.OnSurface = s.TPNormal.LenSqr() > game.DistEpsilon
	s.Outcome = ctx.outcome
	if s.Blocked {
		s.ClipVel = mgl32.Vec3{}
	}
	ctx.debugf("move out: pos=%v tpn=%v vel=%v dist=%v blocked=%v stay=%v surface=%v", s.Center, s.TPNormal, s.ClipVel, s.MoveDist, s.Blocked, s.CanStay, s.OnSurface)
}

// GroundMove is the per-frame entry point of an actor controller. It sets the frame input with
// SetInput, runs Move and returns the new center.
func (sv *Solver) GroundMove(s *State, dirH mgl32.Vec3, speedH, dt, speedV float32) mgl32.Vec3 {
	s.SetInput(dirH, speedH, dt, speedV)
	sv.Move(s)
	return s.Center
}

// JumpStartSpeed returns the vertical speed that reaches height under gravity g.
func JumpStartSpeed(g, height float32) float32 {
	return math32.Sqrt(2 * g * height)
}

func (ctx *moveContext) fullGroundMove() {
	origin := ctx.start
	originVel := ctx.velocity

	jumping := originVel.Y() > ctx.sv.Options.JumpThreshold
	ctx.airborne = jumping || ctx.tpNormal.Y() <= ctx.slope
	ctx.level(ctx.airborne)
	if ctx.velocity[1] < ctx.sv.Options.MaxFallSpeed {
		ctx.velocity[1] = ctx.sv.Options.MaxFallSpeed
	}
	ctx.attempted = ctx.velocity.LenSqr() >= game.VelocityEpsilon ||
		(ctx.wishSpd != 0 && game.Vec3HzDistSqr(ctx.wishDir) > game.SqrDistEpsilon)
	ctx.debugf("pre-integration: airborne=%v jumping=%v vel=%v", ctx.airborne, jumping, ctx.velocity)

	if ctx.airborne {
		ctx.jumpFallMove()
	} else {
		ctx.walkMove()
	}

	if jumping {
		ctx.tpNormal = mgl32.Vec3{}
	} else {
		g, ok := ctx.groundTrace()
		if !ok {
			ctx.end = origin
			ctx.velocity = originVel
			if ctx.tpNormal.Y() < ctx.slope {
				ctx.tpNormal = game.Up
			}
			ctx.outcome = OutcomeRolledBack
			ctx.debugf("ground probe start solid, rolled back to %v", origin)
			ctx.logDebug("ground probe started solid, frame rolled back")
			return
		}
		if g.Support {
			ctx.end = g.End
			ctx.tpNormal = g.HitNormal
		} else {
			ctx.tpNormal = mgl32.Vec3{}
		}
		ctx.debugf("ground probe: support=%v end=%v tpn=%v", g.Support, ctx.end, ctx.tpNormal)
	}

	ctx.level(ctx.tpNormal.Y() <= ctx.slope)
}

// level brings the velocity in line with the ground state: on walkable ground the vertical part is
// dropped, in the air half a step of gravity applies.
func (ctx *moveContext) level(airborne bool) {
	if airborne {
		ctx.velocity[1] -= ctx.gravity * ctx.timeSec * 0.5
		return
	}
	ctx.velocity[1] = 0
}

func (ctx *moveContext) walkMove() {
	wishDir := game.SafeNormalize(game.Horizontal(ctx.wishDir))

	ctx.velocity[1] = 0
	ctx.velocity = accelerate(ctx.velocity, wishDir, ctx.wishSpd, ctx.sv.Options.Accel, ctx.timeSec)
	ctx.velocity[1] = 0
	ctx.absVelocity = ctx.velocity
	if ctx.velocity.LenSqr() < game.VelocityEpsilon {
		ctx.velocity = mgl32.Vec3{}
		ctx.end = ctx.start
		ctx.debugf("walk: velocity too small")
		return
	}

	if !ctx.preSlide() {
		ctx.debugf("walk: pre-slide blocked at %v, trying step up", ctx.start)
		ctx.stepUp()
	}
}

func (ctx *moveContext) jumpFallMove() {
	ctx.absVelocity = ctx.velocity
	ctx.trySlide()
}
