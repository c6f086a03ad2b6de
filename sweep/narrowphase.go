package sweep

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/brush"
	"github.com/oomph-ac/capsim/game"
)

// NarrowPhase sweeps a capsule against a single object. Implementations must report hits with a
// fraction below 1 only, and must not keep references to the arguments.
type NarrowPhase interface {
	// TraceBrush sweeps the capsule by delta against a convex brush.
	TraceBrush(c Capsule, delta mgl32.Vec3, b *brush.Brush) (Hit, bool)
	// TraceCapsule sweeps the capsule by delta against another, static, capsule.
	TraceCapsule(c Capsule, delta mgl32.Vec3, other Capsule) (Hit, bool)
}

// Clipper is the plane clipping narrow phase. Brushes are treated as the intersection of their
// planes pushed out by the capsule, so sharp edges behave like they were bevelled by the brush's
// own planes.
type Clipper struct {
	// Epsilon is the gap kept between the capsule and the surface it stops at.
	Epsilon float32
	// MaxPenetration is the deepest starting overlap reported as a negative fraction. Anything
	// deeper is start-solid.
	MaxPenetration float32
	// ContactEpsilon decides which planes are considered touched when classifying a contact.
	ContactEpsilon float32
}

// DefaultClipper returns a Clipper with the package defaults.
func DefaultClipper() Clipper {
	return Clipper{
		Epsilon:        game.SurfaceEpsilon,
		MaxPenetration: game.MaxPenetration,
		ContactEpsilon: game.SurfaceEpsilon * 2,
	}
}
