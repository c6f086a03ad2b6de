package brush

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBBoxPlanes(t *testing.T) {
	b := FromBBox(cube.Box(0, 0, 0, 2, 1, 3), 0)
	require.Len(t, b.Planes, 6)
	require.Len(t, b.Vertices, 8)

	for i, f := range b.Faces {
		for _, vi := range f {
			assert.InDelta(t, 0, b.Planes[i].Distance(b.Vertices[vi]), 1e-6, "face %d vertex %d", i, vi)
		}
	}
	assert.True(t, b.PointInBrush(mgl32.Vec3{1, 0.5, 1.5}, 0))
	assert.False(t, b.PointInBrush(mgl32.Vec3{1, 1.5, 1.5}, 0))
	assert.True(t, b.PointInBrush(mgl32.Vec3{1, 1.05, 1.5}, 0.1))
}

func TestPointInBrushSkipsMoveTraceBrushes(t *testing.T) {
	b := FromBBox(cube.Box(0, 0, 0, 1, 1, 1), FlagSkipMoveTrace)
	assert.False(t, b.PointInBrush(mgl32.Vec3{0.5, 0.5, 0.5}, 0))
	assert.True(t, b.Skipped(FlagSkipMoveTrace))
	assert.False(t, b.Skipped(FlagSkipCameraTrace))
}

func TestPointInBrushIgnoresBevels(t *testing.T) {
	planes := FromBBox(cube.Box(0, 0, 0, 1, 1, 1), 0).Planes
	planes = append(planes, Plane{Normal: mgl32.Vec3{1, 1, 0}.Normalize(), Dist: 0, Bevel: true})
	b := New(planes, cube.Box(0, 0, 0, 1, 1, 1), 0)
	assert.True(t, b.PointInBrush(mgl32.Vec3{0.9, 0.9, 0.5}, 0))
}

func TestIDIsStable(t *testing.T) {
	a := FromBBox(cube.Box(0, 0, 0, 1, 1, 1), 0)
	b := FromBBox(cube.Box(0, 0, 0, 1, 1, 1), 0)
	c := FromBBox(cube.Box(0, 0, 0, 1, 2, 1), 0)
	d := FromBBox(cube.Box(0, 0, 0, 1, 1, 1), FlagSkipCameraTrace)
	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
	assert.NotEqual(t, a.ID, d.ID)
}

func TestFromHullOrientsNormalsOutward(t *testing.T) {
	// Tetrahedron with deliberately mixed windings.
	vertices := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {0, 1, 0}}
	faces := [][]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}}
	b, err := FromHull(vertices, faces, 0)
	require.NoError(t, err)

	centroid := mgl32.Vec3{0.25, 0.25, 0.25}
	for i, pl := range b.Planes {
		assert.Less(t, pl.Distance(centroid), float32(0), "plane %d", i)
		assert.InDelta(t, 1, pl.Normal.Len(), 1e-5)
	}
	assert.InDelta(t, -1, b.Planes[0].Normal.Y(), 1e-5)
}

func TestFromHullRejectsBadInput(t *testing.T) {
	_, err := FromHull(nil, nil, 0)
	assert.Error(t, err)

	_, err = FromHull([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}}, [][]int{{0, 1}}, 0)
	assert.Error(t, err)

	_, err = FromHull([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, [][]int{{0, 1, 7}}, 0)
	assert.Error(t, err)
}

func TestSupportNormals(t *testing.T) {
	b := FromBBox(cube.Box(0, 0, 0, 1, 1, 1), 0)

	// Vertex 3 is (1, 1, 0): on +x, +y and -z.
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, b.VertexSupportNormal(3))
	// Edge 2-3 runs along the top at z=0.
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, b.EdgeSupportNormal(2, 3))
	// Edge 0-1 runs along the bottom: no face points up.
	assert.Equal(t, mgl32.Vec3{}, b.EdgeSupportNormal(0, 1))

	assert.ElementsMatch(t, []int{3, 7}, b.SharedVertices(1, 3))
	assert.ElementsMatch(t, []int{3}, b.SharedVertices(1, 3, 4))
}

func TestSlopedWedge(t *testing.T) {
	b := Sloped(cube.Box(0, 0, 0, 2, 2, 1), 0)
	require.Len(t, b.Planes, 5)

	var top Plane
	for _, pl := range b.Planes {
		if pl.Normal.Y() > top.Normal.Y() {
			top = pl
		}
	}
	assert.InDelta(t, 45, SlopeAngle(top.Normal), 1e-3)
	assert.Less(t, top.Normal.X(), float32(0))
}
