package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/game"
	"github.com/oomph-ac/capsim/sweep"
)

// Outcome describes which path the solver took for the last frame.
type Outcome uint8

const (
	OutcomeNormal Outcome = iota
	// OutcomeStartSolid means a slide started inside solid geometry and the move was abandoned.
	OutcomeStartSolid
	// OutcomeDegenerate means three or more planes were touched with no usable slide direction, so
	// the actor stopped for the frame.
	OutcomeDegenerate
	// OutcomeRolledBack means the ground probe started solid and the frame was undone.
	OutcomeRolledBack
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNormal:
		return "normal"
	case OutcomeStartSolid:
		return "start-solid"
	case OutcomeDegenerate:
		return "degenerate-crease"
	case OutcomeRolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}

// State is the movement record of a single capsule actor. The solver reads the inputs, runs one
// frame and writes the outputs back into the same record.
type State struct {
	Center  mgl32.Vec3
	HalfLen float32
	Radius  float32

	// VelDirH and Speed are the wished horizontal direction and speed.
	VelDirH mgl32.Vec3
	Speed   float32
	TimeSec float32

	// ClipVel is the velocity carried into the next frame.
	ClipVel mgl32.Vec3
	// ActualVel is the velocity the actor attempted to move with this frame.
	ActualVel mgl32.Vec3
	// TPNormal is the normal of the plane the actor stands on, or zero when airborne.
	TPNormal mgl32.Vec3
	MoveDist float32

	Gravity     float32
	SlopeThresh float32
	StepHeight  float32

	// ActorID is the dynamic collider owned by this actor, or -1.
	ActorID int64

	Blocked   bool
	OnSurface bool
	CanStay   bool

	Outcome Outcome
}

// NewState returns an airborne state for a capsule at center with the default tuning.
func NewState(center mgl32.Vec3, halfLen, radius float32) *State {
	return &State{
		Center:      center,
		HalfLen:     halfLen,
		Radius:      radius,
		Gravity:     game.Gravity,
		SlopeThresh: game.SlopeThreshold,
		StepHeight:  game.StepHeight,
		ActorID:     -1,
	}
}

// ResetInfo clears the ground classification of the state, and its velocities when clearSpeed is set.
func (s *State) ResetInfo(clearSpeed bool) {
	s.TPNormal = mgl32.Vec3{}
	s.Blocked = false
	s.OnSurface = false
	s.CanStay = false
	s.Outcome = OutcomeNormal
	if clearSpeed {
		s.ClearSpeed()
	}
}

// SetInput prepares the next frame: dirH and speedH are the wished horizontal direction and speed,
// speedV is added to the vertical velocity (a jump impulse). A negative speed walks backwards.
func (s *State) SetInput(dirH mgl32.Vec3, speedH, dt, speedV float32) {
	dir := game.SafeNormalize(game.Horizontal(dirH))
	if speedH < 0 {
		dir, speedH = dir.Mul(-1), -speedH
	}
	s.VelDirH = dir
	s.Speed = speedH
	s.TimeSec = dt
	s.ClipVel[1] += speedV
}

// ClearSpeed zeroes every velocity held by the state.
func (s *State) ClearSpeed() {
	s.ClipVel = mgl32.Vec3{}
	s.ActualVel = mgl32.Vec3{}
}

// Capsule returns the actor's capsule at its current center.
func (s *State) Capsule() sweep.Capsule {
	return sweep.Capsule{Center: s.Center, HalfLen: s.HalfLen, Radius: s.Radius}
}

// Grounded reports whether the actor currently stands on a walkable plane.
func (s *State) Grounded() bool {
	return s.TPNormal.Y() > s.SlopeThresh
}
