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
	"log/slog"
	"sync"

	applog "studybench/internal/log"
)

// Recoverable lookup failures. Structural inconsistencies (a container id
// with no leaf, mismatched parent/child links) panic instead; they mean the
// board bookkeeping itself is broken.
var (
	ErrUnknownContainer = errors.New("board: unknown container")
	ErrUnknownPane      = errors.New("board: unknown pane")
)

// Manager is the facade over one board: the split tree, the pane containers
// and the listener registries. All mutations go through it and are serialized
// by a single mutex; queries return copies, never internal slices.
type Manager struct {
	mu         sync.Mutex
	log        *slog.Logger
	alloc      *Allocator
	tree       *Tree
	containers map[ContainerID]*PaneContainer
	active     ContainerID

	openCopy  func(src, dst PaneID)
	scrollGet func(PaneID) float64
	scrollSet func(PaneID, float64)

	// Listener registries live under their own lock so a listener can
	// register or unregister during dispatch; dispatch iterates a snapshot.
	lmu          sync.Mutex
	emptyBoard   []EmptyBoardListener
	activePane   []ActivePaneListener
	closingPane  []ClosingPaneListener
	splits       []SplitListener
	menuBuilders []MenuBuilder
	menuOpen     []MenuOpenListener
}

// NewManager builds a board with one empty container, which starts active.
// A nil allocator gets a fresh one; injecting the allocator lets callers
// control id sequences (and tests make them deterministic).
func NewManager(alloc *Allocator) *Manager {
	if alloc == nil {
		alloc = NewAllocator()
	}
	m := &Manager{
		log:        applog.WithComponent("board"),
		alloc:      alloc,
		containers: make(map[ContainerID]*PaneContainer),
	}
	m.tree = NewTree(func() ContainerID {
		id := alloc.NextContainer()
		m.containers[id] = NewPaneContainer()
		return id
	})
	m.tree.splitOpened = func(c ContainerID) {
		for _, l := range m.snapshotSplits() {
			l.SplitOpened(c)
		}
	}
	m.tree.splitClosed = func(c ContainerID) {
		for _, l := range m.snapshotSplits() {
			l.SplitClosed(c)
		}
	}
	m.tree.scrollSnapshot = func(c ContainerID) map[PaneID]float64 {
		if m.scrollGet == nil {
			return nil
		}
		pc := m.containers[c]
		snap := make(map[PaneID]float64, pc.Len())
		for _, p := range pc.panes {
			snap[p] = m.scrollGet(p)
		}
		return snap
	}
	m.tree.scrollRestore = func(c ContainerID, snap map[PaneID]float64) {
		if m.scrollSet == nil {
			return
		}
		pc := m.containers[c]
		for _, p := range pc.panes {
			if frac, ok := snap[p]; ok {
				m.scrollSet(p, frac)
			}
		}
	}
	m.active = m.tree.FirstContainer()
	return m
}

// SetOpenCopyFunc installs the duplicate callback used by OpenCopy. While it
// is nil, "open copy" degrades to a plain move and the copy menu entries are
// withheld.
func (m *Manager) SetOpenCopyFunc(fn func(src, dst PaneID)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openCopy = fn
}

// SetScrollProvider installs the callbacks used to snapshot and restore pane
// scroll positions around splits. Either may be nil.
func (m *Manager) SetScrollProvider(get func(PaneID) float64, set func(PaneID, float64)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scrollGet, m.scrollSet = get, set
}

func (m *Manager) mustContainer(id ContainerID) *PaneContainer {
	pc, ok := m.containers[id]
	if !ok {
		panic(fmt.Sprintf("board: no container registered for id %d", id))
	}
	return pc
}

// Split divides the leaf of container along o and returns the new (empty)
// container. The active container does not change.
func (m *Manager) Split(container ContainerID, o Orientation) ContainerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mustContainer(container)
	fresh := m.tree.Split(container, o)
	m.log.Debug("split opened", "from", int(container), "new", int(fresh), "orientation", o.String())
	return fresh
}

// OpenPane creates a pane in container, selects it and returns its id. If
// container is active, ActivePaneListeners fire.
func (m *Manager) OpenPane(container ContainerID) PaneID {
	m.mu.Lock()
	defer m.mu.Unlock()
	pc := m.mustContainer(container)
	p := m.alloc.NextPane()
	pc.add(p, m.alloc.NextSeq())
	if container == m.active {
		m.notifyActive(container, p)
	}
	return p
}

// SelectPane makes pane the selected tab of container, stamping it with a
// fresh selection sequence number.
func (m *Manager) SelectPane(container ContainerID, pane PaneID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pc := m.mustContainer(container)
	if !pc.selectPane(pane, m.alloc.NextSeq()) {
		return ErrUnknownPane
	}
	if container == m.active {
		m.notifyActive(container, pane)
	}
	return nil
}

// SetActive shifts focus to container. The container's current selection, if
// any, is re-stamped and announced.
func (m *Manager) SetActive(container ContainerID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pc, ok := m.containers[container]
	if !ok {
		return ErrUnknownContainer
	}
	m.active = container
	if p := pc.Selected(); p != NoPane {
		pc.selectPane(p, m.alloc.NextSeq())
		m.notifyActive(container, p)
	}
	return nil
}

// ClosePane removes pane from container. When the container empties, its
// leaf is removed and the sibling takes over its region; if it was the last
// leaf the container survives empty and EmptyBoardListeners fire instead.
func (m *Manager) ClosePane(container ContainerID, pane PaneID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pc := m.mustContainer(container)
	if !pc.Contains(pane) {
		return ErrUnknownPane
	}
	m.notifyClosing(container, pane)
	pc.remove(pane)
	m.log.Debug("pane closed", "container", int(container), "pane", int(pane))
	if pc.Empty() {
		m.collapseEmpty(container)
		return nil
	}
	if container == m.active {
		m.notifyActive(container, pc.Selected())
	}
	return nil
}

// collapseEmpty handles a container that just lost its final pane: drop its
// leaf when the tree allows it, otherwise report an empty board.
func (m *Manager) collapseEmpty(container ContainerID) {
	next := m.tree.NextContainer(container, false)
	if !m.tree.RemoveLeaf(container) {
		m.lmu.Lock()
		snap := append([]EmptyBoardListener(nil), m.emptyBoard...)
		m.lmu.Unlock()
		for _, l := range snap {
			l.BoardEmptied()
		}
		return
	}
	delete(m.containers, container)
	m.log.Debug("split closed", "container", int(container))
	if m.active == container {
		m.active = next
		if p := m.containers[next].Selected(); p != NoPane {
			m.notifyActive(next, p)
		}
	}
}

// MovePane relocates pane from one container to another, preserving its
// identity. The pane is announced as closing in its old container, becomes
// the selection of the target, and focus follows it.
func (m *Manager) MovePane(pane PaneID, from, to ContainerID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.movePane(pane, from, to)
}

func (m *Manager) movePane(pane PaneID, from, to ContainerID) error {
	src := m.mustContainer(from)
	dst := m.mustContainer(to)
	if from == to {
		return nil
	}
	if !src.Contains(pane) {
		return ErrUnknownPane
	}
	m.notifyClosing(from, pane)
	src.remove(pane)
	if src.Empty() {
		m.collapseEmpty(from)
	}
	dst.add(pane, m.alloc.NextSeq())
	m.active = to
	m.notifyActive(to, pane)
	m.log.Debug("pane moved", "pane", int(pane), "from", int(from), "to", int(to))
	return nil
}

// OpenCopy opens a duplicate of pane in the target container using the
// configured duplicate callback and returns the new pane's id. Without a
// callback it falls back to moving the original, returning the original id.
func (m *Manager) OpenCopy(pane PaneID, from, to ContainerID) (PaneID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.openCopy == nil {
		if err := m.movePane(pane, from, to); err != nil {
			return NoPane, err
		}
		return pane, nil
	}
	src := m.mustContainer(from)
	dst := m.mustContainer(to)
	if !src.Contains(pane) {
		return NoPane, ErrUnknownPane
	}
	cp := m.alloc.NextPane()
	dst.add(cp, m.alloc.NextSeq())
	m.openCopy(pane, cp)
	m.active = to
	m.notifyActive(to, cp)
	m.log.Debug("pane copied", "pane", int(pane), "copy", int(cp), "from", int(from), "to", int(to))
	return cp, nil
}

func (m *Manager) notifyActive(container ContainerID, pane PaneID) {
	m.lmu.Lock()
	snap := append([]ActivePaneListener(nil), m.activePane...)
	m.lmu.Unlock()
	for _, l := range snap {
		l.PaneActivated(container, pane)
	}
}

func (m *Manager) notifyClosing(container ContainerID, pane PaneID) {
	m.lmu.Lock()
	snap := append([]ClosingPaneListener(nil), m.closingPane...)
	m.lmu.Unlock()
	for _, l := range snap {
		l.PaneClosing(container, pane)
	}
}

func (m *Manager) snapshotSplits() []SplitListener {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	return append([]SplitListener(nil), m.splits...)
}

// ActiveContainer returns the focused container.
func (m *Manager) ActiveContainer() ContainerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// ActivePane returns the selected pane of the focused container, NoPane when
// it is empty.
func (m *Manager) ActivePane() PaneID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.containers[m.active].Selected()
}

// MostRecentPane returns the pane with the highest selection stamp across
// all containers. ok is false when the board holds no panes.
func (m *Manager) MostRecentPane() (ContainerID, PaneID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var (
		bestC    ContainerID
		bestP    PaneID
		bestSeq  uint64
		anyFound bool
	)
	for c, pc := range m.containers {
		for p, seq := range pc.stamps {
			if !anyFound || seq > bestSeq {
				bestC, bestP, bestSeq, anyFound = c, p, seq, true
			}
		}
	}
	return bestC, bestP, anyFound
}

// Panes returns the tab order of container.
func (m *Manager) Panes(container ContainerID) []PaneID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mustContainer(container).Panes()
}

// SelectedPane returns the selected pane of container, NoPane when empty.
func (m *Manager) SelectedPane(container ContainerID) PaneID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mustContainer(container).Selected()
}

// ContainerCount returns the number of leaves.
func (m *Manager) ContainerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.LeafCount()
}

// LeafOrder returns the canonical container order.
func (m *Manager) LeafOrder() []ContainerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.LeafOrder()
}

// NextContainer and PrevContainer step through the leaf order; see
// Tree.NextContainer for the retro boundary behavior.
func (m *Manager) NextContainer(id ContainerID, retro bool) ContainerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.NextContainer(id, retro)
}

func (m *Manager) PrevContainer(id ContainerID, retro bool) ContainerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.PrevContainer(id, retro)
}

// Structure returns the topology descriptor string.
func (m *Manager) Structure() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.DescriptorString()
}

// SetStructure grows the tree to match a persisted descriptor.
func (m *Manager) SetStructure(desc string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.GrowString(desc)
}

// LeftFractions returns the preorder split ratio vector.
func (m *Manager) LeftFractions() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.LeftFractions()
}

// SetLeftFractions restores a persisted ratio vector.
func (m *Manager) SetLeftFractions(fs []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.SetLeftFractions(fs)
}

// MovementMenu builds the move/copy destinations offered for a pane of
// container. A single-leaf board has nowhere to move to and yields nil. A
// two-leaf board gets flat "opposite" entries. Larger boards get a "Move To"
// submenu of hierarchical addresses, plus an "Open In" twin when a duplicate
// callback is configured.
func (m *Manager) MovementMenu(container ContainerID) []MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mustContainer(container)
	return m.movementMenu(container)
}

func (m *Manager) movementMenu(container ContainerID) []MenuItem {
	switch m.tree.LeafCount() {
	case 1:
		return nil
	case 2:
		other := m.tree.NextContainer(container, false)
		items := []MenuItem{{
			Label:   "Move to opposite",
			Address: "Opposite",
			Target:  other,
			Action:  ActionMove,
		}}
		if m.openCopy != nil {
			items = append(items, MenuItem{
				Label:   "Open copy in opposite",
				Address: "Opposite",
				Target:  other,
				Action:  ActionOpenCopy,
			})
		}
		return items
	default:
		menu := []MenuItem{{
			Label: "Move To",
			Items: m.tree.movementItems(container, ActionMove),
		}}
		if m.openCopy != nil {
			menu = append(menu, MenuItem{
				Label: "Open In",
				Items: m.tree.movementItems(container, ActionOpenCopy),
			})
		}
		return menu
	}
}

// ContainerMenu assembles the full menu for container: movement entries
// first, then contributions from registered MenuBuilders, and finally the
// MenuOpenListeners see the finished menu.
func (m *Manager) ContainerMenu(container ContainerID) *Menu {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mustContainer(container)
	menu := &Menu{Container: container, Items: m.movementMenu(container)}
	m.lmu.Lock()
	builders := append([]MenuBuilder(nil), m.menuBuilders...)
	openers := append([]MenuOpenListener(nil), m.menuOpen...)
	m.lmu.Unlock()
	for _, b := range builders {
		b.BuildContainerMenu(menu)
	}
	for _, l := range openers {
		l.ContainerMenuOpened(menu)
	}
	return menu
}

// Listener registration. Unregistering an unknown listener is a no-op.

func (m *Manager) AddEmptyBoardListener(l EmptyBoardListener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	m.emptyBoard = append(m.emptyBoard, l)
}

func (m *Manager) RemoveEmptyBoardListener(l EmptyBoardListener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	for i, x := range m.emptyBoard {
		if x == l {
			m.emptyBoard = append(m.emptyBoard[:i], m.emptyBoard[i+1:]...)
			return
		}
	}
}

func (m *Manager) AddActivePaneListener(l ActivePaneListener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	m.activePane = append(m.activePane, l)
}

func (m *Manager) RemoveActivePaneListener(l ActivePaneListener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	for i, x := range m.activePane {
		if x == l {
			m.activePane = append(m.activePane[:i], m.activePane[i+1:]...)
			return
		}
	}
}

func (m *Manager) AddClosingPaneListener(l ClosingPaneListener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	m.closingPane = append(m.closingPane, l)
}

func (m *Manager) RemoveClosingPaneListener(l ClosingPaneListener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	for i, x := range m.closingPane {
		if x == l {
			m.closingPane = append(m.closingPane[:i], m.closingPane[i+1:]...)
			return
		}
	}
}

func (m *Manager) AddSplitListener(l SplitListener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	m.splits = append(m.splits, l)
}

func (m *Manager) RemoveSplitListener(l SplitListener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	for i, x := range m.splits {
		if x == l {
			m.splits = append(m.splits[:i], m.splits[i+1:]...)
			return
		}
	}
}

func (m *Manager) AddMenuBuilder(b MenuBuilder) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	m.menuBuilders = append(m.menuBuilders, b)
}

func (m *Manager) RemoveMenuBuilder(b MenuBuilder) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	for i, x := range m.menuBuilders {
		if x == b {
			m.menuBuilders = append(m.menuBuilders[:i], m.menuBuilders[i+1:]...)
			return
		}
	}
}

func (m *Manager) AddMenuOpenListener(l MenuOpenListener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	m.menuOpen = append(m.menuOpen, l)
}

func (m *Manager) RemoveMenuOpenListener(l MenuOpenListener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	for i, x := range m.menuOpen {
		if x == l {
			m.menuOpen = append(m.menuOpen[:i], m.menuOpen[i+1:]...)
			return
		}
	}
}
