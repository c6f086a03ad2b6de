package octree

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/game"
	"github.com/oomph-ac/capsim/sweep"
)

// CapsuleTrace sweeps the request's capsule through the tree. Every leaf overlapping the query bound
// is tested and the nearest hit is kept, so the answer does not depend on how the tree was split.
// On a hit the result is written into req.Hit.
func (t *Tree) CapsuleTrace(req *sweep.Request) bool {
	if t.root == noNode {
		return false
	}
	best := sweep.Hit{Fraction: 100}
	if !t.trace(t.root, req, &best) {
		return false
	}
	req.Hit = best
	return true
}

func (t *Tree) trace(id nodeID, req *sweep.Request, best *sweep.Hit) bool {
	n := &t.nodes[id]
	if !game.BoxesOverlap(n.box, req.Bound) {
		return false
	}
	if !n.leaf() {
		found := false
		children := n.children
		for _, c := range children {
			if t.trace(c, req, best) {
				found = true
			}
		}
		return found
	}

	found := false
	for _, b := range n.brushes {
		if b.Skipped(req.CheckFlags) || !game.BoxesOverlap(b.BBox, req.Bound) {
			continue
		}
		hit, ok := t.narrow.TraceBrush(req.Capsule, req.Delta, b)
		if !ok {
			continue
		}
		found = true
		if hit.Better(*best) {
			*best = hit
		}
	}
	return found
}

// PointInBrush reports whether any brush contains the point, grown by offset.
func (t *Tree) PointInBrush(p mgl32.Vec3, offset float32) bool {
	return t.root != noNode && t.pointInBrush(t.root, p, offset)
}

func (t *Tree) pointInBrush(id nodeID, p mgl32.Vec3, offset float32) bool {
	n := &t.nodes[id]
	if !game.PointInBox(n.box, p, offset) {
		return false
	}
	if n.leaf() {
		for _, b := range n.brushes {
			if b.PointInBrush(p, offset) {
				return true
			}
		}
		return false
	}
	children := n.children
	for _, c := range children {
		if t.pointInBrush(c, p, offset) {
			return true
		}
	}
	return false
}

// Stats describes the shape of a tree.
type Stats struct {
	Nodes     int
	Leaves    int
	MaxDepth  int
	Brushes   int
	BrushRefs int
	FreeSlots int
}

// Stats walks the tree and returns its shape.
func (t *Tree) Stats() Stats {
	s := Stats{FreeSlots: len(t.free)}
	if t.root == noNode {
		return s
	}
	s.Brushes = t.Len()
	t.stats(t.root, &s)
	return s
}

func (t *Tree) stats(id nodeID, s *Stats) {
	n := &t.nodes[id]
	s.Nodes++
	if n.depth > s.MaxDepth {
		s.MaxDepth = n.depth
	}
	if n.leaf() {
		s.Leaves++
		s.BrushRefs += len(n.brushes)
		return
	}
	children := n.children
	for _, c := range children {
		t.stats(c, s)
	}
}
