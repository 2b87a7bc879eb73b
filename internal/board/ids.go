/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

// ContainerID identifies a pane container (one per leaf). The zero value is
// NoContainer, the "no other leaf" sentinel returned by navigation queries.
type ContainerID int

// PaneID identifies a content pane within a container. The zero value is
// NoPane.
type PaneID int

const (
	NoContainer ContainerID = 0
	NoPane      PaneID      = 0
)

// Orientation is the split direction of a binary node. A Column split
// arranges its children side by side (primary = left); a Row split stacks
// them (primary = top).
type Orientation uint8

const (
	Column Orientation = iota
	Row
)

func (o Orientation) String() string {
	if o == Column {
		return "Column"
	}
	return "Row"
}

// token returns the structure-descriptor token for the orientation.
func (o Orientation) token() Token {
	if o == Column {
		return TokenColumn
	}
	return TokenRow
}

// Allocator hands out the monotonic identifiers used by a Manager: container
// ids, pane ids and selection sequence stamps. It is an explicit object (not
// package state) so multiple boards can coexist in one process without
// cross-talk. The owning Manager guards it with its mutation lock.
type Allocator struct {
	container ContainerID
	pane      PaneID
	seq       uint64
}

// NewAllocator returns an allocator whose ids start at 1.
func NewAllocator() *Allocator { return &Allocator{} }

func (a *Allocator) NextContainer() ContainerID {
	a.container++
	return a.container
}

func (a *Allocator) NextPane() PaneID {
	a.pane++
	return a.pane
}

func (a *Allocator) NextSeq() uint64 {
	a.seq++
	return a.seq
}
