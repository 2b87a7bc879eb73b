/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import "fmt"

// MenuAction says what activating a menu item does with the source pane.
type MenuAction uint8

const (
	ActionNone MenuAction = iota
	// ActionMove relocates the pane into the target container.
	ActionMove
	// ActionOpenCopy opens a duplicate of the pane in the target container,
	// leaving the original in place.
	ActionOpenCopy
)

// MenuItem is one entry of a container menu. Items with a non-empty Items
// slice are submenus; their Target is NoContainer. Leaf items carry the
// destination container, the action and the full hierarchical address (the
// labels of the submenu chain joined with " / ").
type MenuItem struct {
	Label    string
	Address  string
	Target   ContainerID
	Action   MenuAction
	Disabled bool
	Items    []MenuItem
}

// Menu collects the items offered for one container. MenuBuilders append to
// it; MenuOpenListeners see the finished menu.
type Menu struct {
	Container ContainerID
	Items     []MenuItem
}

// Add appends an item.
func (m *Menu) Add(item MenuItem) { m.Items = append(m.Items, item) }

// movementItems builds the address-labeled destination items for moving (or
// copying) a pane out of from. Leaves are numbered per split-type level: a
// run of same-orientation splits shares one running ordinal, and descending
// into a child of the other orientation opens a nested submenu with a fresh
// ordinal, its header labeled by the slot one level up. The from container's
// own entry is present but disabled.
func (t *Tree) movementItems(from ContainerID, action MenuAction) []MenuItem {
	top, ok := t.root.child.(*binaryNode)
	if !ok {
		return nil
	}
	ord := 0
	return t.walkMovement(top, top.orient, &ord, "", from, action)
}

func (t *Tree) walkMovement(n node, chain Orientation, ord *int, prefix string, from ContainerID, action MenuAction) []MenuItem {
	switch v := n.(type) {
	case *leafNode:
		*ord++
		label := fmt.Sprintf("%s %d", chain, *ord)
		return []MenuItem{{
			Label:    label,
			Address:  prefix + label,
			Target:   v.container,
			Action:   action,
			Disabled: v.container == from,
		}}
	case *binaryNode:
		if v.orient == chain {
			items := t.walkMovement(v.primary, chain, ord, prefix, from, action)
			return append(items, t.walkMovement(v.secondary, chain, ord, prefix, from, action)...)
		}
		*ord++
		header := fmt.Sprintf("%s %d", chain, *ord)
		sub := 0
		subPrefix := prefix + header + " / "
		items := t.walkMovement(v.primary, v.orient, &sub, subPrefix, from, action)
		items = append(items, t.walkMovement(v.secondary, v.orient, &sub, subPrefix, from, action)...)
		return []MenuItem{{
			Label:   header,
			Address: prefix + header,
			Target:  NoContainer,
			Items:   items,
		}}
	}
	panic("board: unexpected node in movement walk")
}
