package octree

import (
	"github.com/oomph-ac/capsim/brush"
	"github.com/oomph-ac/capsim/game"
)

// AddBrushes inserts brushes into the tree. Brushes with the ID of one already in the tree are
// ignored. When every new brush fits inside the root the brushes are pushed down into the leaves
// they overlap and overfull leaves are split; otherwise the tree is rebuilt around the union of
// old and new brushes.
func (t *Tree) AddBrushes(brushes ...*brush.Brush) int {
	present := t.brushSet()
	fresh := make([]*brush.Brush, 0, len(brushes))
	for _, b := range dedupe(brushes) {
		if _, ok := present[b.ID]; !ok {
			fresh = append(fresh, b)
		}
	}
	if len(fresh) == 0 {
		return 0
	}
	if t.root == noNode {
		t.Build(fresh, t.minBrushes, t.minSize)
		return len(fresh)
	}

	rootBox := t.nodes[t.root].box
	for _, b := range fresh {
		if !game.BoxContains(rootBox, b.BBox) {
			t.Build(append(t.Brushes(), fresh...), t.minBrushes, t.minSize)
			return len(fresh)
		}
	}
	for _, b := range fresh {
		t.insert(t.root, b)
	}
	t.split(t.root)
	return len(fresh)
}

func (t *Tree) insert(id nodeID, b *brush.Brush) {
	n := &t.nodes[id]
	if !game.BoxesOverlap(n.box, b.BBox) {
		return
	}
	if n.leaf() {
		n.brushes = append(n.brushes, b)
		return
	}
	children := n.children
	for _, c := range children {
		t.insert(c, b)
	}
}

// RemoveBrushes removes brushes from every node that references them, collapses subtrees that fell
// under the split threshold and re-splits from the root. It returns how many of the brushes were in
// the tree. Brushes are matched by ID.
func (t *Tree) RemoveBrushes(brushes ...*brush.Brush) int {
	if t.root == noNode {
		return 0
	}
	present := t.brushSet()
	drop := make(map[uint64]struct{}, len(brushes))
	for _, b := range brushes {
		if b == nil {
			continue
		}
		if _, ok := present[b.ID]; ok {
			drop[b.ID] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return 0
	}

	t.remove(t.root, drop)
	t.collapse(t.root)
	if root := &t.nodes[t.root]; root.leaf() && len(root.brushes) == 0 {
		t.Release()
		return len(drop)
	}
	t.split(t.root)
	return len(drop)
}

func (t *Tree) remove(id nodeID, drop map[uint64]struct{}) {
	n := &t.nodes[id]
	if !n.leaf() {
		children := n.children
		for _, c := range children {
			t.remove(c, drop)
		}
		return
	}
	kept := n.brushes[:0]
	for _, b := range n.brushes {
		if _, ok := drop[b.ID]; !ok {
			kept = append(kept, b)
		}
	}
	clear(n.brushes[len(kept):])
	n.brushes = kept
}

// collapse turns internal nodes whose subtree holds fewer unique brushes than the split threshold
// back into leaves.
func (t *Tree) collapse(id nodeID) {
	n := &t.nodes[id]
	if n.leaf() {
		return
	}
	children := n.children
	for _, c := range children {
		t.collapse(c)
	}
	unique := dedupe(t.collect(id, nil))
	if len(unique) >= t.minBrushes {
		return
	}
	for _, c := range children {
		t.release(c)
	}
	n = &t.nodes[id]
	n.children = noChildren
	n.brushes = unique
}

// collect appends the brushes referenced by the subtree at id, in depth first order.
func (t *Tree) collect(id nodeID, out []*brush.Brush) []*brush.Brush {
	n := &t.nodes[id]
	if n.leaf() {
		return append(out, n.brushes...)
	}
	children := n.children
	for _, c := range children {
		out = t.collect(c, out)
	}
	return out
}

// Brushes returns every brush in the tree once, in depth first order.
func (t *Tree) Brushes() []*brush.Brush {
	if t.root == noNode {
		return nil
	}
	return dedupe(t.collect(t.root, nil))
}

// Len returns the number of unique brushes in the tree.
func (t *Tree) Len() int {
	return len(t.Brushes())
}

func (t *Tree) brushSet() map[uint64]struct{} {
	set := make(map[uint64]struct{})
	for _, b := range t.Brushes() {
		set[b.ID] = struct{}{}
	}
	return set
}
