// Package octree implements a static spatial index over convex brushes. Nodes live in a single
// arena and refer to each other by index; a brush may be referenced from several leaves.
package octree

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/assert"
	"github.com/oomph-ac/capsim/brush"
	"github.com/oomph-ac/capsim/game"
	"github.com/oomph-ac/capsim/sweep"
)

type nodeID int32

const noNode nodeID = -1

var noChildren = [8]nodeID{noNode, noNode, noNode, noNode, noNode, noNode, noNode, noNode}

type node struct {
	box cube.BBox
	// brushes is only populated on leaves.
	brushes  []*brush.Brush
	children [8]nodeID
	depth    int
	// used is false for arena slots sitting in the free list.
	used bool
}

func (n *node) leaf() bool {
	return n.children[0] == noNode
}

// Tree is an octree over brushes. A Tree is not safe for concurrent mutation; queries may run
// concurrently with each other.
type Tree struct {
	nodes []node
	free  []nodeID
	root  nodeID

	minBrushes int
	minSize    float32

	narrow sweep.NarrowPhase
}

// New returns an empty tree that tests brushes with the narrow phase passed. A nil narrow phase
// selects sweep.DefaultClipper.
func New(narrow sweep.NarrowPhase) *Tree {
	if narrow == nil {
		narrow = sweep.DefaultClipper()
	}
	return &Tree{
		root:       noNode,
		minBrushes: game.OctreeMinBrushes,
		minSize:    game.OctreeMinNodeSize,
		narrow:     narrow,
	}
}

// BuildDefault builds the tree with the default split thresholds.
func (t *Tree) BuildDefault(brushes []*brush.Brush) {
	t.Build(brushes, game.OctreeMinBrushes, game.OctreeMinNodeSize)
}

// Build releases the current tree and builds a new one over the brushes. A leaf is split into
// octants while it holds at least minBrushes brushes and its longest side is at least minSize.
func (t *Tree) Build(brushes []*brush.Brush, minBrushes int, minSize float32) {
	t.Release()
	if minBrushes < 1 {
		minBrushes = 1
	}
	if minSize <= game.DistEpsilon {
		minSize = game.DistEpsilon
	}
	t.minBrushes, t.minSize = minBrushes, minSize

	unique := dedupe(brushes)
	if len(unique) == 0 {
		return
	}
	box := unique[0].BBox
	for _, b := range unique[1:] {
		box = game.UnionBox(box, b.BBox)
	}
	t.root = t.alloc(box, 0)
	t.nodes[t.root].brushes = unique
	t.split(t.root)
}

// Release drops every node. The arena's memory is kept for the next build.
func (t *Tree) Release() {
	clear(t.nodes)
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.root = noNode
}

// Empty reports whether the tree holds no brushes.
func (t *Tree) Empty() bool {
	return t.root == noNode
}

// BBox returns the bounds of the root node.
func (t *Tree) BBox() cube.BBox {
	if t.root == noNode {
		return cube.BBox{}
	}
	return t.nodes[t.root].box
}

func (t *Tree) alloc(box cube.BBox, depth int) nodeID {
	n := node{box: box, children: noChildren, depth: depth, used: true}
	if l := len(t.free); l > 0 {
		id := t.free[l-1]
		t.free = t.free[:l-1]
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return nodeID(len(t.nodes) - 1)
}

// release returns the node and its whole subtree to the free list.
func (t *Tree) release(id nodeID) {
	n := &t.nodes[id]
	children := n.children
	*n = node{children: noChildren}
	t.free = append(t.free, id)
	for _, c := range children {
		if c != noNode {
			t.release(c)
		}
	}
}

// split recursively subdivides every leaf under id that exceeds the split thresholds.
func (t *Tree) split(id nodeID) {
	n := &t.nodes[id]
	assert.IsTrue(n.used, "octree: split of released node %d", id)
	if !n.leaf() {
		children := n.children
		for _, c := range children {
			t.split(c)
		}
		return
	}
	if len(n.brushes) < t.minBrushes || game.BoxMaxSide(n.box) < t.minSize || n.depth >= game.OctreeMaxDepth {
		return
	}

	var (
		brushes = n.brushes
		depth   = n.depth
		center  = game.BoxCenter(n.box)
		half    = game.BoxExtents(n.box).Mul(0.5)

		boxes   [8]cube.BBox
		members [8][]*brush.Brush
		gain    bool
	)
	for i := range boxes {
		offset := mgl32.Vec3{-half[0], -half[1], -half[2]}
		if i&1 != 0 {
			offset[0] = half[0]
		}
		if (i&2)>>1 != 0 {
			offset[1] = half[1]
		}
		if (i&4)>>2 != 0 {
			offset[2] = half[2]
		}
		boxes[i] = game.BoxFromCenter(center.Add(offset), half)
		for _, b := range brushes {
			if game.BoxesOverlap(b.BBox, boxes[i]) {
				members[i] = append(members[i], b)
			}
		}
		if len(members[i]) < len(brushes) {
			gain = true
		}
	}
	// Every octant would hold every brush again.
	if !gain {
		return
	}

	var children [8]nodeID
	for i := range children {
		cid := t.alloc(boxes[i], depth+1)
		t.nodes[cid].brushes = members[i]
		children[i] = cid
	}

	n = &t.nodes[id]
	n.children = children
	n.brushes = nil
	for _, c := range children {
		t.split(c)
	}
}

// dedupe drops nil brushes and every brush whose ID was already seen, keeping the first.
func dedupe(brushes []*brush.Brush) []*brush.Brush {
	seen := make(map[uint64]struct{}, len(brushes))
	out := make([]*brush.Brush, 0, len(brushes))
	for _, b := range brushes {
		if b == nil {
			continue
		}
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out
}
