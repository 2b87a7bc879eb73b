/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"fmt"
)

// Tree is the split topology of one board. It always contains at least one
// leaf; the very first leaf is created at construction and the last leaf is
// never removed. Container allocation and lifecycle notifications are
// delegated to hooks the owning Manager installs, so the tree stays free of
// pane bookkeeping.
type Tree struct {
	root   *rootNode
	leaves map[ContainerID]*leafNode
	order  []ContainerID

	newContainer   func() ContainerID
	splitOpened    func(ContainerID)
	splitClosed    func(ContainerID)
	scrollSnapshot func(ContainerID) map[PaneID]float64
	scrollRestore  func(ContainerID, map[PaneID]float64)
}

// NewTree builds a tree holding a single leaf whose container id is taken
// from newContainer. The allocator hook is also used by Split and Grow.
func NewTree(newContainer func() ContainerID) *Tree {
	t := &Tree{
		leaves:       make(map[ContainerID]*leafNode),
		newContainer: newContainer,
	}
	first := newContainer()
	leaf := &leafNode{container: first}
	t.root = &rootNode{child: leaf}
	leaf.setParent(t.root)
	t.leaves[first] = leaf
	t.recomputeOrder()
	return t
}

// FirstContainer returns the first container in leaf order.
func (t *Tree) FirstContainer() ContainerID { return t.order[0] }

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int { return len(t.order) }

// Contains reports whether id names a live leaf.
func (t *Tree) Contains(id ContainerID) bool {
	_, ok := t.leaves[id]
	return ok
}

// mustLeaf resolves a container id to its leaf. A miss here means the
// tree/container bookkeeping has diverged, which is unrecoverable.
func (t *Tree) mustLeaf(id ContainerID) *leafNode {
	leaf, ok := t.leaves[id]
	if !ok {
		panic(fmt.Sprintf("board: no leaf registered for container %d", id))
	}
	return leaf
}

// Split divides the leaf of target along o. The existing leaf keeps its
// container and becomes the primary (left/top) child of a fresh binary node
// with an even ratio; the secondary child is a new leaf with a freshly
// allocated container, whose id is returned. Scroll positions of the
// surviving leaf's panes are snapshotted before the reparenting and restored
// after it.
func (t *Tree) Split(target ContainerID, o Orientation) ContainerID {
	leaf := t.mustLeaf(target)
	t.pushScroll(leaf)

	fresh := t.newContainer()
	twin := &leafNode{container: fresh}
	split := &binaryNode{orient: o, ratio: 0.5, primary: leaf, secondary: twin}
	leaf.parent().replaceChild(leaf, split)
	leaf.setParent(split)
	twin.setParent(split)
	t.leaves[fresh] = twin

	t.popScroll(leaf)
	t.recomputeOrder()
	if t.splitOpened != nil {
		t.splitOpened(fresh)
	}
	return fresh
}

// RemoveLeaf deletes the leaf of target and promotes its sibling into the
// grandparent's child slot, collapsing the binary node. Removing the last
// leaf (parent is the root) is rejected and reported as false; the board
// keeps its final container so there is always somewhere to open content.
func (t *Tree) RemoveLeaf(target ContainerID) bool {
	leaf := t.mustLeaf(target)
	split, ok := leaf.parent().(*binaryNode)
	if !ok {
		return false
	}
	sibling := split.sibling(leaf)
	split.parent().replaceChild(split, sibling)
	delete(t.leaves, target)
	t.recomputeOrder()
	if t.splitClosed != nil {
		t.splitClosed(target)
	}
	return true
}

// LeafOrder returns the canonical container order: a preorder walk of the
// tree, so for a column split left-subtree containers precede right-subtree
// containers, and for a row split top precedes bottom.
func (t *Tree) LeafOrder() []ContainerID {
	out := make([]ContainerID, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Tree) recomputeOrder() {
	t.order = t.root.appendLeafOrder(t.order[:0])
	if len(t.order) != len(t.leaves) {
		panic(fmt.Sprintf("board: leaf order has %d entries for %d leaves", len(t.order), len(t.leaves)))
	}
}

// NextContainer returns the container after id in leaf order. With retro
// false the order is cyclic: after the last comes the first. With retro true
// the walk turns back into the interior instead of wrapping: after the last
// comes the second-to-last. Unknown ids and single-leaf boards yield
// NoContainer.
func (t *Tree) NextContainer(id ContainerID, retro bool) ContainerID {
	n := len(t.order)
	i := t.orderIndex(id)
	if i < 0 || n < 2 {
		return NoContainer
	}
	if i == n-1 {
		if retro {
			return t.order[n-2]
		}
		return t.order[0]
	}
	return t.order[i+1]
}

// PrevContainer is the mirror of NextContainer: before the first comes the
// last (non-retro) or the second element (retro).
func (t *Tree) PrevContainer(id ContainerID, retro bool) ContainerID {
	n := len(t.order)
	i := t.orderIndex(id)
	if i < 0 || n < 2 {
		return NoContainer
	}
	if i == 0 {
		if retro {
			return t.order[1]
		}
		return t.order[n-1]
	}
	return t.order[i-1]
}

func (t *Tree) orderIndex(id ContainerID) int {
	for i, c := range t.order {
		if c == id {
			return i
		}
	}
	return -1
}

// Descriptor serializes the topology to preorder tokens.
func (t *Tree) Descriptor() []Token {
	return t.root.appendTokens(nil)
}

// DescriptorString is Descriptor rendered as a compact string, e.g. "VLHLL".
func (t *Tree) DescriptorString() string {
	return DescriptorString(t.Descriptor())
}

// Grow consumes a structure descriptor against the current tree, splitting
// leaves wherever the tokens call for structure deeper than the tree has. It
// never removes or re-orients existing splits; positions already at least as
// deep as the descriptor are left alone. New containers come from the
// allocator hook and each introduced split goes through Split, so the usual
// notifications fire.
func (t *Tree) Grow(toks []Token) error {
	rest, err := t.grow(t.root.child, toks)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("structure descriptor: %d trailing tokens", len(rest))
	}
	return nil
}

// GrowString parses and applies a descriptor string.
func (t *Tree) GrowString(s string) error {
	toks, err := ParseDescriptor(s)
	if err != nil {
		return err
	}
	return t.Grow(toks)
}

func (t *Tree) grow(n node, toks []Token) ([]Token, error) {
	if len(toks) == 0 {
		return nil, fmt.Errorf("structure descriptor: truncated")
	}
	tok, rest := toks[0], toks[1:]
	if tok == TokenLeaf {
		// The descriptor bottoms out here; whatever subtree exists stays.
		return rest, nil
	}
	split, ok := n.(*binaryNode)
	if !ok {
		leaf := n.(*leafNode)
		t.Split(leaf.container, tok.orientation())
		split = leaf.parent().(*binaryNode)
	}
	rest, err := t.grow(split.primary, rest)
	if err != nil {
		return nil, err
	}
	return t.grow(split.secondary, rest)
}

// LeftFractions serializes the per-split primary fractions in the same
// preorder as Descriptor, one entry per binary node.
func (t *Tree) LeftFractions() []float64 {
	return t.root.appendFractions(nil)
}

// SetLeftFractions restores fractions captured by LeftFractions. The vector
// length must match the current split count exactly; values are applied as
// given, without clamping, so a persisted degenerate ratio survives a round
// trip instead of being silently rewritten.
func (t *Tree) SetLeftFractions(fs []float64) error {
	rest, err := t.root.applyFractions(fs)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("fraction vector: %d values for %d splits", len(fs), len(fs)-len(rest))
	}
	return nil
}

// SplitRatio returns the primary fraction of the binary node directly above
// the leaf of id, and false when the leaf sits under the root.
func (t *Tree) SplitRatio(id ContainerID) (float64, bool) {
	leaf := t.mustLeaf(id)
	if split, ok := leaf.parent().(*binaryNode); ok {
		return split.ratio, true
	}
	return 0, false
}

// SetSplitRatio adjusts the primary fraction of the binary node directly
// above the leaf of id. It reports false when the leaf has no split above it.
func (t *Tree) SetSplitRatio(id ContainerID, ratio float64) bool {
	leaf := t.mustLeaf(id)
	split, ok := leaf.parent().(*binaryNode)
	if !ok {
		return false
	}
	split.ratio = ratio
	return true
}

func (t *Tree) pushScroll(l *leafNode) {
	var snap map[PaneID]float64
	if t.scrollSnapshot != nil {
		snap = t.scrollSnapshot(l.container)
	}
	l.scroll = append(l.scroll, snap)
}

func (t *Tree) popScroll(l *leafNode) {
	if len(l.scroll) == 0 {
		panic(fmt.Sprintf("board: unbalanced scroll pop on container %d", l.container))
	}
	snap := l.scroll[len(l.scroll)-1]
	l.scroll = l.scroll[:len(l.scroll)-1]
	if t.scrollRestore != nil && snap != nil {
		t.scrollRestore(l.container, snap)
	}
}
