/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"errors"
	"fmt"
)

// node is the closed sum type of the layout tree. Exactly three shapes
// implement it: the unique rootNode, interior binaryNodes, and leafNodes.
// Traversal-shaped operations (descriptor, fractions, leaf order) live on the
// interface so each shape handles its own case in preorder.
type node interface {
	parent() node
	setParent(p node)
	// replaceChild swaps old for repl in this node's child slot(s) and sets
	// repl's parent pointer in the same step, so the upward and downward
	// links never disagree.
	replaceChild(old, repl node)

	appendTokens(out []Token) []Token
	appendFractions(out []float64) []float64
	applyFractions(in []float64) ([]float64, error)
	appendLeafOrder(out []ContainerID) []ContainerID
}

// rootNode anchors the tree. It has exactly one child and no parent; it never
// participates in splits itself.
type rootNode struct {
	child node
}

func (r *rootNode) parent() node { return nil }

func (r *rootNode) setParent(node) {
	panic("board: root node cannot be reparented")
}

func (r *rootNode) replaceChild(old, repl node) {
	if r.child != old {
		panic("board: replaceChild on root with unknown child")
	}
	r.child = repl
	repl.setParent(r)
}

func (r *rootNode) appendTokens(out []Token) []Token {
	return r.child.appendTokens(out)
}

func (r *rootNode) appendFractions(out []float64) []float64 {
	return r.child.appendFractions(out)
}

func (r *rootNode) applyFractions(in []float64) ([]float64, error) {
	return r.child.applyFractions(in)
}

func (r *rootNode) appendLeafOrder(out []ContainerID) []ContainerID {
	return r.child.appendLeafOrder(out)
}

// binaryNode divides its region between two children along one axis. For a
// Column split the primary child is the left region; for a Row split it is
// the top. ratio is the fraction of the region given to the primary child.
type binaryNode struct {
	par       node
	orient    Orientation
	primary   node
	secondary node
	ratio     float64
}

func (b *binaryNode) parent() node     { return b.par }
func (b *binaryNode) setParent(p node) { b.par = p }

func (b *binaryNode) replaceChild(old, repl node) {
	switch old {
	case b.primary:
		b.primary = repl
	case b.secondary:
		b.secondary = repl
	default:
		panic("board: replaceChild with unknown child")
	}
	repl.setParent(b)
}

func (b *binaryNode) appendTokens(out []Token) []Token {
	out = append(out, b.orient.token())
	out = b.primary.appendTokens(out)
	return b.secondary.appendTokens(out)
}

func (b *binaryNode) appendFractions(out []float64) []float64 {
	out = append(out, b.ratio)
	out = b.primary.appendFractions(out)
	return b.secondary.appendFractions(out)
}

func (b *binaryNode) applyFractions(in []float64) ([]float64, error) {
	if len(in) == 0 {
		return nil, errors.New("board: fraction vector shorter than split count")
	}
	b.ratio = in[0]
	rest, err := b.primary.applyFractions(in[1:])
	if err != nil {
		return nil, err
	}
	return b.secondary.applyFractions(rest)
}

func (b *binaryNode) appendLeafOrder(out []ContainerID) []ContainerID {
	out = b.primary.appendLeafOrder(out)
	return b.secondary.appendLeafOrder(out)
}

// sibling returns the other child of b.
func (b *binaryNode) sibling(of node) node {
	switch of {
	case b.primary:
		return b.secondary
	case b.secondary:
		return b.primary
	}
	panic("board: sibling of a node that is not a child")
}

// leafNode occupies one undivided region and is associated 1:1 with a pane
// container. scroll holds per-pane scroll snapshots pushed before a structural
// mutation touches this leaf and popped once the mutation settles.
type leafNode struct {
	par       node
	container ContainerID
	scroll    []map[PaneID]float64
}

func (l *leafNode) parent() node     { return l.par }
func (l *leafNode) setParent(p node) { l.par = p }

func (l *leafNode) replaceChild(old, repl node) {
	panic(fmt.Sprintf("board: leaf %d cannot have children", l.container))
}

func (l *leafNode) appendTokens(out []Token) []Token {
	return append(out, TokenLeaf)
}

func (l *leafNode) appendFractions(out []float64) []float64 {
	return out
}

func (l *leafNode) applyFractions(in []float64) ([]float64, error) {
	return in, nil
}

func (l *leafNode) appendLeafOrder(out []ContainerID) []ContainerID {
	return append(out, l.container)
}
