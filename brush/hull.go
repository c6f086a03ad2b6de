package brush

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/game"
	"github.com/oomph-ac/capsim/oerror"
)

// boxFaces lists the corners of each face of a box, in plane order -x, +x, -y, +y, -z, +z. Corner i
// takes the max on x when bit 0 is set, y on bit 1 and z on bit 2.
var boxFaces = [6][]int{
	{0, 4, 6, 2},
	{1, 3, 7, 5},
	{0, 1, 5, 4},
	{2, 6, 7, 3},
	{0, 2, 3, 1},
	{4, 5, 7, 6},
}

// FromBBox returns an axis aligned box brush.
func FromBBox(box cube.BBox, flags Flag) *Brush {
	min, max := box.Min(), box.Max()
	b := &Brush{
		Planes: []Plane{
			{Normal: mgl32.Vec3{-1, 0, 0}, Dist: -min[0]},
			{Normal: mgl32.Vec3{1, 0, 0}, Dist: max[0]},
			{Normal: mgl32.Vec3{0, -1, 0}, Dist: -min[1]},
			{Normal: mgl32.Vec3{0, 1, 0}, Dist: max[1]},
			{Normal: mgl32.Vec3{0, 0, -1}, Dist: -min[2]},
			{Normal: mgl32.Vec3{0, 0, 1}, Dist: max[2]},
		},
		Vertices: make([]mgl32.Vec3, 8),
		Faces:    make([][]int, 6),
		BBox:     box.Grow(game.BrushBoxGrow),
		Flags:    flags,
	}
	for i := range b.Vertices {
		v := min
		if i&1 != 0 {
			v[0] = max[0]
		}
		if i&2 != 0 {
			v[1] = max[1]
		}
		if i&4 != 0 {
			v[2] = max[2]
		}
		b.Vertices[i] = v
	}
	for i, f := range boxFaces {
		b.Faces[i] = append([]int(nil), f...)
	}
	b.ID = b.hash()
	return b
}

// FromHull builds a brush from a convex polyhedron. Each face lists vertex indices; the winding does
// not matter since normals are oriented away from the hull's centroid.
func FromHull(vertices []mgl32.Vec3, faces [][]int, flags Flag) (*Brush, error) {
	if len(faces) == 0 || len(vertices) == 0 {
		return nil, oerror.New(game.ErrorEmptyHull)
	}

	var centroid mgl32.Vec3
	for _, v := range vertices {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1 / float32(len(vertices)))

	b := &Brush{
		Planes:   make([]Plane, 0, len(faces)),
		Vertices: append([]mgl32.Vec3(nil), vertices...),
		Faces:    make([][]int, 0, len(faces)),
		BBox:     game.BoxFromPoints(vertices...).Grow(game.BrushBoxGrow),
		Flags:    flags,
	}
	for i, f := range faces {
		if len(f) < 3 {
			return nil, oerror.New(game.ErrorDegenerateFace, i)
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(vertices) {
				return nil, oerror.New(game.ErrorFaceVertexIndex, i, idx, len(vertices))
			}
		}
		var normal, faceCenter mgl32.Vec3
		for j, idx := range f {
			cur, next := vertices[idx], vertices[f[(j+1)%len(f)]]
			// Newell's method.
			normal[0] += (cur[1] - next[1]) * (cur[2] + next[2])
			normal[1] += (cur[2] - next[2]) * (cur[0] + next[0])
			normal[2] += (cur[0] - next[0]) * (cur[1] + next[1])
			faceCenter = faceCenter.Add(cur)
		}
		faceCenter = faceCenter.Mul(1 / float32(len(f)))

		n, l := game.Normalize(normal)
		if l <= game.DistEpsilon {
			return nil, oerror.New(game.ErrorDegenerateFace, i)
		}
		if n.Dot(faceCenter.Sub(centroid)) < 0 {
			n = n.Mul(-1)
		}
		b.Planes = append(b.Planes, Plane{Normal: n, Dist: n.Dot(faceCenter)})
		b.Faces = append(b.Faces, append([]int(nil), f...))
	}
	b.ID = b.hash()
	return b, nil
}

// Sloped returns a wedge brush whose top face rises along +x from the box's min y to its max y. It
// is handy for building ramps.
func Sloped(box cube.BBox, flags Flag) *Brush {
	min, max := box.Min(), box.Max()
	vertices := []mgl32.Vec3{
		{min[0], min[1], min[2]},
		{max[0], min[1], min[2]},
		{max[0], max[1], min[2]},
		{min[0], min[1], max[2]},
		{max[0], min[1], max[2]},
		{max[0], max[1], max[2]},
	}
	faces := [][]int{
		{0, 1, 4, 3},
		{1, 2, 5, 4},
		{0, 3, 5, 2},
		{0, 2, 1},
		{3, 4, 5},
	}
	b, err := FromHull(vertices, faces, flags)
	if err != nil {
		// Only reachable for a flat or empty box.
		return FromBBox(box, flags)
	}
	return b
}

// SlopeAngle returns the angle in degrees between a plane normal and the up axis.
func SlopeAngle(n mgl32.Vec3) float32 {
	return mgl32.RadToDeg(math32.Acos(game.ClampFloat(n.Y(), -1, 1)))
}
