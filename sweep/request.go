package sweep

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/brush"
)

// ContactSize is the number of contact points a hit resolves to.
type ContactSize uint8

const (
	ContactNone ContactSize = iota
	// ContactVertex means the capsule rests on a single vertex.
	ContactVertex
	// ContactEdge means the capsule rests on an edge.
	ContactEdge
	// ContactFace means the capsule rests on a face.
	ContactFace
)

// Contact describes the topology of a brush hit. A and B are vertex indices into the hit brush:
// A for a vertex contact, A and B for an edge contact.
type Contact struct {
	Size ContactSize
	A, B int
}

// Hit is the result of a sweep. A negative fraction means the capsule started overlapping the
// object by -Fraction and should back out along Normal.
type Hit struct {
	Fraction   float32
	Normal     mgl32.Vec3
	StartSolid bool
	AllSolid   bool

	// Brush is set for brush hits. Dynamic hits set Collider instead.
	Brush    *brush.Brush
	Dynamic  bool
	Collider int64

	Contact Contact
}

// Better reports whether h should replace o as the nearest hit. Start-solid hits win over everything
// else. Ties on the fraction are broken by a stable key so the result does not depend on the order
// objects were visited in.
func (h Hit) Better(o Hit) bool {
	if h.StartSolid != o.StartSolid {
		return h.StartSolid
	}
	if h.Fraction != o.Fraction {
		return h.Fraction < o.Fraction
	}
	return h.key() < o.key()
}

func (h Hit) key() uint64 {
	if h.Brush != nil {
		return h.Brush.ID
	}
	return uint64(h.Collider)
}

// Request is a single swept capsule query. Results are written back into the embedded Hit.
type Request struct {
	Capsule    Capsule
	Delta      mgl32.Vec3
	CheckFlags brush.Flag
	// ActorID is the collider the query belongs to. It is never hit by its own query.
	ActorID int64

	Bound cube.BBox

	Hit
}

// NewRequest returns a request with its query bound computed and no hit recorded.
func NewRequest(c Capsule, delta mgl32.Vec3, flags brush.Flag) *Request {
	return &Request{
		Capsule:    c,
		Delta:      delta,
		CheckFlags: flags,
		ActorID:    -1,
		Bound:      c.SweptBBox(delta),
		Hit:        Hit{Fraction: 1},
	}
}

// End returns the capsule center at the recorded fraction.
func (r *Request) End() mgl32.Vec3 {
	if r.Fraction < 0 {
		return r.Capsule.Center.Sub(r.Normal.Mul(r.Fraction))
	}
	return r.Capsule.Center.Add(r.Delta.Mul(r.Fraction))
}
