package brush

import (
	"encoding/binary"
	"math"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/game"
	"github.com/zeebo/xxh3"
)

// Flag is a bit set describing which traces a brush takes part in.
type Flag uint32

const (
	// FlagSkipMoveTrace excludes the brush from movement traces and point containment.
	FlagSkipMoveTrace Flag = 1 << iota
	// FlagSkipCameraTrace excludes the brush from camera traces.
	FlagSkipCameraTrace
	// FlagTerrain marks brushes that were generated from terrain.
	FlagTerrain
)

// Plane is an oriented plane of a brush. A point p is inside the plane's half-space when
// Normal.Dot(p)-Dist <= 0.
type Plane struct {
	Normal mgl32.Vec3
	Dist   float32
	// Bevel planes only exist to round off trace results and are ignored by containment tests.
	Bevel bool
}

// Distance returns the signed distance from the plane to the point.
func (p Plane) Distance(v mgl32.Vec3) float32 {
	return p.Normal.Dot(v) - p.Dist
}

// Brush is a convex solid bounded by planes. A brush is never modified after construction; the
// octree and the manager share pointers to it freely.
type Brush struct {
	Planes []Plane
	// Vertices and Faces are optional. Face i lists the vertices lying on plane i.
	Vertices []mgl32.Vec3
	Faces    [][]int

	BBox  cube.BBox
	Flags Flag
	// ID is a hash of the brush geometry and flags, stable across runs.
	ID uint64
}

// New returns a plane-only brush. The box must enclose the brush.
func New(planes []Plane, box cube.BBox, flags Flag) *Brush {
	b := &Brush{
		Planes: append([]Plane(nil), planes...),
		BBox:   box,
		Flags:  flags,
	}
	b.ID = b.hash()
	return b
}

// PointInBrush reports whether the point lies within offset of the brush. Brushes excluded from
// movement traces never contain anything.
func (b *Brush) PointInBrush(p mgl32.Vec3, offset float32) bool {
	if b.Flags&FlagSkipMoveTrace != 0 {
		return false
	}
	if !game.PointInBox(b.BBox, p, offset) {
		return false
	}
	for _, pl := range b.Planes {
		if pl.Bevel {
			continue
		}
		if pl.Distance(p) > offset {
			return false
		}
	}
	return true
}

// Skipped reports whether a trace carrying the check flags ignores this brush.
func (b *Brush) Skipped(check Flag) bool {
	return b.Flags&check != 0
}

// HasTopology reports whether the brush carries vertex and face data.
func (b *Brush) HasTopology() bool {
	return len(b.Faces) > 0 && len(b.Vertices) > 0
}

func (b *Brush) hash() uint64 {
	buf := make([]byte, 0, len(b.Planes)*17+4)
	for _, pl := range b.Planes {
		for _, c := range pl.Normal {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(c))
		}
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(pl.Dist))
		if pl.Bevel {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(b.Flags))
	return xxh3.Hash(buf)
}
