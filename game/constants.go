package game

import "github.com/go-gl/mathgl/mgl32"

const (
	Gravity          = float32(9.81)
	SlopeThreshold   = float32(0.707)
	StepHeight       = float32(0.3)
	TraceStepHeight  = float32(3.0)
	MoveAcceleration = float32(6.0)
	AirMaxSpeed      = float32(4.0)
	MaxFallSpeed     = float32(-12.0)
	ClimbSpeedRatio  = 0.8 / AirMaxSpeed
	JumpHeight       = float32(1.2)
	JumpThreshold    = float32(1.0)
	GroundProbe      = float32(0.08)
	MaxTryMove       = 4
	BounceClip       = float32(1.01)
	MinClipBackoff   = float32(0.001)
	ParallelDot      = float32(0.001)
	// ReverseDot is cos(105 degrees).
	ReverseDot = float32(-0.25881904)
)

const (
	DistEpsilon     = float32(1e-4)
	SqrDistEpsilon  = float32(1e-8)
	VelocityEpsilon = float32(1e-4)
	FractionEpsilon = float32(1e-3)
	// SurfaceEpsilon is the gap the narrow phase keeps between a capsule and the planes it stops at.
	SurfaceEpsilon = float32(1e-3)
	// MaxPenetration is the deepest overlap reported as a negative fraction instead of start-solid.
	MaxPenetration = float32(0.05)
	BoundEpsilon   = float32(2e-3)
	BrushBoxGrow   = float32(1e-4)
)

const (
	CameraSize         = float32(0.2)
	CameraMinIncidence = float32(0.10)
	AnimCameraProbe    = float32(0.9)
)

const (
	OctreeMinBrushes  = 16
	OctreeMinNodeSize = float32(16)
	OctreeMaxDepth    = 8
)

// Up is the world up axis.
var Up = mgl32.Vec3{0, 1, 0}
