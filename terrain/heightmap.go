// Package terrain implements height map terrain. Terrain is traced with a ray from a capsule's foot
// rather than with the capsule itself.
package terrain

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/game"
	"github.com/oomph-ac/capsim/oerror"
)

// HeightMap is a regular grid of heights on the XZ plane. Each cell is split into two triangles.
type HeightMap struct {
	originX, originZ float32
	cellSize         float32
	cols, rows       int
	// heights holds (cols+1)*(rows+1) samples, row by row along z.
	heights []float32
	box     cube.BBox
}

// New returns a height map with its first sample at (originX, originZ).
func New(originX, originZ, cellSize float32, cols, rows int, heights []float32) (*HeightMap, error) {
	if cellSize <= 0 {
		return nil, oerror.New(game.ErrorHeightMapCellSize, cellSize)
	}
	if want := (cols + 1) * (rows + 1); cols < 1 || rows < 1 || len(heights) != want {
		return nil, oerror.New(game.ErrorHeightMapSize, want, len(heights))
	}
	h := &HeightMap{
		originX:  originX,
		originZ:  originZ,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		heights:  append([]float32(nil), heights...),
	}
	minY, maxY := heights[0], heights[0]
	for _, y := range heights {
		minY, maxY = math32.Min(minY, y), math32.Max(maxY, y)
	}
	h.box = cube.Box(originX, minY, originZ, originX+float32(cols)*cellSize, maxY, originZ+float32(rows)*cellSize)
	return h, nil
}

// Flat returns a height map of constant height.
func Flat(originX, originZ, cellSize float32, cols, rows int, height float32) *HeightMap {
	heights := make([]float32, (cols+1)*(rows+1))
	for i := range heights {
		heights[i] = height
	}
	h, err := New(originX, originZ, cellSize, cols, rows, heights)
	if err != nil {
		panic(err)
	}
	return h
}

// BBox returns the box enclosing the terrain.
func (h *HeightMap) BBox() cube.BBox {
	return h.box
}

func (h *HeightMap) vertex(i, j int) mgl32.Vec3 {
	return mgl32.Vec3{
		h.originX + float32(i)*h.cellSize,
		h.heights[j*(h.cols+1)+i],
		h.originZ + float32(j)*h.cellSize,
	}
}

// triangles returns the two triangles of cell (i, j), wound so their normals face up.
func (h *HeightMap) triangles(i, j int) [2][3]mgl32.Vec3 {
	v00, v10 := h.vertex(i, j), h.vertex(i+1, j)
	v01, v11 := h.vertex(i, j+1), h.vertex(i+1, j+1)
	return [2][3]mgl32.Vec3{{v00, v01, v10}, {v10, v01, v11}}
}

// Height returns the terrain height and surface normal below (x, z). ok is false outside the map.
func (h *HeightMap) Height(x, z float32) (height float32, normal mgl32.Vec3, ok bool) {
	u := (x - h.originX) / h.cellSize
	v := (z - h.originZ) / h.cellSize
	if u < 0 || v < 0 || u > float32(h.cols) || v > float32(h.rows) {
		return 0, mgl32.Vec3{}, false
	}
	i := min(int(u), h.cols-1)
	j := min(int(v), h.rows-1)
	u, v = u-float32(i), v-float32(j)

	tris := h.triangles(i, j)
	tri := tris[0]
	if u+v > 1 {
		tri = tris[1]
	}
	normal = triangleNormal(tri)
	// Solve the plane equation for y.
	height = tri[0].Y() - (normal.X()*(x-tri[0].X())+normal.Z()*(z-tri[0].Z()))/normal.Y()
	return height, normal, true
}

// Hit is a terrain trace result.
type Hit struct {
	Fraction   float32
	Normal     mgl32.Vec3
	StartSolid bool
}

// Trace casts a ray from start along delta. The trace starts solid when the terrain is above the
// start point.
func (h *HeightMap) Trace(start, delta mgl32.Vec3) (Hit, bool) {
	if y, n, ok := h.Height(start.X(), start.Z()); ok && y > start.Y()+game.DistEpsilon {
		return Hit{Fraction: 0, Normal: n, StartSolid: true}, true
	}

	end := start.Add(delta)
	i0, j0 := h.cell(math32.Min(start.X(), end.X()), math32.Min(start.Z(), end.Z()))
	i1, j1 := h.cell(math32.Max(start.X(), end.X()), math32.Max(start.Z(), end.Z()))
	i0, j0 = max(i0-1, 0), max(j0-1, 0)
	i1, j1 = min(i1+1, h.cols-1), min(j1+1, h.rows-1)

	best, found := Hit{Fraction: 1}, false
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			for _, tri := range h.triangles(i, j) {
				n := triangleNormal(tri)
				if n.Dot(delta) >= 0 {
					continue
				}
				t, ok := rayTriangle(start, delta, tri)
				if !ok || t >= best.Fraction {
					continue
				}
				best, found = Hit{Fraction: t, Normal: n}, true
			}
		}
	}
	if !found {
		return Hit{}, false
	}
	if l := delta.Len(); l > 0 {
		best.Fraction = math32.Max(best.Fraction-game.SurfaceEpsilon/l, 0)
	}
	return best, true
}

// cell returns the cell indices containing (x, z), which may lie outside the map.
func (h *HeightMap) cell(x, z float32) (int, int) {
	return int(math32.Floor((x - h.originX) / h.cellSize)), int(math32.Floor((z - h.originZ) / h.cellSize))
}

func triangleNormal(tri [3]mgl32.Vec3) mgl32.Vec3 {
	return game.SafeNormalize(tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])))
}

// rayTriangle intersects the segment o+t*d, t in [0, 1], with a triangle (Moller-Trumbore).
func rayTriangle(o, d mgl32.Vec3, tri [3]mgl32.Vec3) (float32, bool) {
	const eps = 1e-7
	e1, e2 := tri[1].Sub(tri[0]), tri[2].Sub(tri[0])
	p := d.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := o.Sub(tri[0])
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := d.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}
