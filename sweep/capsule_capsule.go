package sweep

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/game"
)

// TraceCapsule sweeps c against other. Both capsules are vertical, so the problem reduces to a ray
// from c's center against a capsule around other's center whose half length and radius are the
// sums of both.
func (cl Clipper) TraceCapsule(c Capsule, delta mgl32.Vec3, other Capsule) (Hit, bool) {
	var (
		origin = c.Center.Sub(other.Center)
		h      = c.HalfLen + other.HalfLen
		r      = c.Radius + other.Radius
	)

	closest := mgl32.Vec3{0, game.ClampFloat(origin.Y(), -h, h), 0}
	away := origin.Sub(closest)
	if dist := away.Len(); dist < r {
		depth := r - dist
		n := game.SafeNormalize(away)
		if n.LenSqr() == 0 {
			n = game.Up
		}
		if depth > cl.MaxPenetration {
			return Hit{Fraction: 0, StartSolid: true, AllSolid: true, Dynamic: true}, true
		}
		return Hit{Fraction: -(depth + cl.Epsilon), Normal: n, Dynamic: true, Contact: Contact{Size: ContactFace}}, true
	}

	t, n, ok := rayCapsule(origin, delta, h, r)
	if !ok || t >= 1 {
		return Hit{}, false
	}
	if l := delta.Len(); l > 0 {
		t -= cl.Epsilon / l
	}
	if t < 0 {
		t = 0
	}
	return Hit{Fraction: t, Normal: n, Dynamic: true, Contact: Contact{Size: ContactFace}}, true
}

// rayCapsule intersects the ray o+t*d, t in [0, 1], with a vertical capsule centered on the origin.
// It returns the first entry and the surface normal there.
func rayCapsule(o, d mgl32.Vec3, h, r float32) (float32, mgl32.Vec3, bool) {
	var (
		best   = float32(math32.MaxFloat32)
		normal mgl32.Vec3
		found  bool
	)

	// Side of the cylinder.
	if a := d.X()*d.X() + d.Z()*d.Z(); a > game.SqrDistEpsilon {
		b := o.X()*d.X() + o.Z()*d.Z()
		c := o.X()*o.X() + o.Z()*o.Z() - r*r
		if disc := b*b - a*c; disc >= 0 {
			t := (-b - math32.Sqrt(disc)) / a
			if t >= 0 && t <= 1 {
				p := o.Add(d.Mul(t))
				if math32.Abs(p.Y()) <= h {
					best, found = t, true
					normal = game.SafeNormalize(mgl32.Vec3{p.X(), 0, p.Z()})
				}
			}
		}
	}

	// Spherical caps.
	for _, cy := range [2]float32{h, -h} {
		pole := mgl32.Vec3{0, cy, 0}
		oc := o.Sub(pole)
		a := d.LenSqr()
		if a <= game.SqrDistEpsilon {
			continue
		}
		b := oc.Dot(d)
		c := oc.LenSqr() - r*r
		disc := b*b - a*c
		if disc < 0 {
			continue
		}
		t := (-b - math32.Sqrt(disc)) / a
		if t < 0 || t > 1 || t >= best {
			continue
		}
		p := o.Add(d.Mul(t))
		if (cy > 0 && p.Y() < cy) || (cy < 0 && p.Y() > cy) {
			continue
		}
		best, found = t, true
		normal = game.SafeNormalize(p.Sub(pole))
	}
	return best, normal, found
}
