package sweep

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/brush"
)

// TraceBrush sweeps the capsule against every plane of the brush, keeping the latest entry and the
// earliest exit. The hit is classified into a face, edge or vertex contact.
func (cl Clipper) TraceBrush(c Capsule, delta mgl32.Vec3, b *brush.Brush) (Hit, bool) {
	var (
		start = c.Center
		end   = c.Center.Add(delta)

		enter, leave = float32(-1), float32(1)
		clip         = -1

		startOut, getOut bool

		shallowest = float32(math32.MaxFloat32)
		exitPlane  = -1
	)
	for i, pl := range b.Planes {
		d1 := cl.planeDistance(c, start, pl)
		d2 := cl.planeDistance(c, end, pl)
		if d2 > 0 {
			getOut = true
		}
		if d1 > 0 {
			startOut = true
		} else if -d1 < shallowest {
			shallowest, exitPlane = -d1, i
		}

		// Completely in front of the plane, or not moving towards it.
		if d1 > 0 && (d2 >= cl.Epsilon || d2 >= d1) {
			return Hit{}, false
		}
		if d1 <= 0 && d2 <= 0 {
			continue
		}
		if d1 > d2 {
			f := (d1 - cl.Epsilon) / (d1 - d2)
			if f < 0 {
				f = 0
			}
			if f > enter {
				enter, clip = f, i
			}
		} else {
			f := (d1 + cl.Epsilon) / (d1 - d2)
			if f > 1 {
				f = 1
			}
			if f < leave {
				leave = f
			}
		}
	}

	if !startOut {
		if exitPlane < 0 || shallowest > cl.MaxPenetration {
			return Hit{Fraction: 0, StartSolid: true, AllSolid: !getOut, Brush: b}, true
		}
		hit := Hit{
			Fraction: -(shallowest + cl.Epsilon),
			Normal:   b.Planes[exitPlane].Normal,
			Brush:    b,
		}
		hit.Contact = cl.contact(c, start, b, exitPlane)
		return hit, true
	}
	if clip < 0 || enter >= leave || enter <= -1 {
		return Hit{}, false
	}
	hit := Hit{Fraction: enter, Normal: b.Planes[clip].Normal, Brush: b}
	hit.Contact = cl.contact(c, start.Add(delta.Mul(enter)), b, clip)
	return hit, true
}

// planeDistance returns the distance from the plane to the closest point of the capsule centered at
// center. It is negative when the capsule crosses the plane.
func (cl Clipper) planeDistance(c Capsule, center mgl32.Vec3, pl brush.Plane) float32 {
	return pl.Distance(c.support(center, pl.Normal)) - c.Radius
}

// contact classifies how the capsule touches the brush at center: on the face of the clip plane, on
// the edge shared with one other touched plane, or on a vertex shared by three or more.
func (cl Clipper) contact(c Capsule, center mgl32.Vec3, b *brush.Brush, clip int) Contact {
	if !b.HasTopology() || clip >= len(b.Faces) {
		return Contact{Size: ContactFace}
	}
	ref := cl.planeDistance(c, center, b.Planes[clip])
	touched := []int{clip}
	for i := range b.Faces {
		if i == clip || i >= len(b.Planes) {
			continue
		}
		if cl.planeDistance(c, center, b.Planes[i]) >= ref-cl.ContactEpsilon {
			touched = append(touched, i)
		}
	}

	switch len(touched) {
	case 1:
		return Contact{Size: ContactFace}
	case 2:
		shared := b.SharedVertices(touched...)
		if len(shared) < 2 {
			return Contact{Size: ContactFace}
		}
		return Contact{Size: ContactEdge, A: shared[0], B: shared[1]}
	default:
		shared := b.SharedVertices(touched...)
		if len(shared) == 0 {
			return Contact{Size: ContactFace}
		}
		v := b.NearestVertex(center, shared)
		return Contact{Size: ContactVertex, A: v, B: v}
	}
}
