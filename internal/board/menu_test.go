/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import "testing"

// flattenAddresses collects the leaf items (those with a target) of a menu
// tree, keyed by full address.
func flattenAddresses(items []MenuItem, into map[string]MenuItem) {
	for _, it := range items {
		if len(it.Items) > 0 {
			flattenAddresses(it.Items, into)
			continue
		}
		into[it.Address] = it
	}
}

func TestMovementItemsNestedAddresses(t *testing.T) {
	tr := newTestTree()
	c0 := tr.FirstContainer()
	c1 := tr.Split(c0, Column)
	c2 := tr.Split(c1, Row)
	// Tree is Column(c0, Row(c1, c2)).

	items := tr.movementItems(c2, ActionMove)
	if len(items) != 2 {
		t.Fatalf("top-level items: %d", len(items))
	}
	if items[0].Label != "Column 1" || items[0].Target != c0 {
		t.Fatalf("first item: %+v", items[0])
	}
	if items[1].Label != "Column 2" || len(items[1].Items) != 2 {
		t.Fatalf("submenu header: %+v", items[1])
	}

	got := map[string]MenuItem{}
	flattenAddresses(items, got)
	checks := []struct {
		addr     string
		target   ContainerID
		disabled bool
	}{
		{"Column 1", c0, false},
		{"Column 2 / Row 1", c1, false},
		{"Column 2 / Row 2", c2, true},
	}
	if len(got) != len(checks) {
		t.Fatalf("addresses: %v", got)
	}
	for _, c := range checks {
		it, ok := got[c.addr]
		if !ok {
			t.Fatalf("missing address %q in %v", c.addr, got)
		}
		if it.Target != c.target || it.Disabled != c.disabled || it.Action != ActionMove {
			t.Fatalf("item %q: %+v", c.addr, it)
		}
	}
}

// Same-orientation runs share one ordinal level instead of nesting.
func TestMovementItemsFlattenSameOrientation(t *testing.T) {
	tr := newTestTree()
	c0 := tr.FirstContainer()
	c1 := tr.Split(c0, Column)
	c2 := tr.Split(c0, Column)
	// Tree is Column(Column(c0, c2), c1); preorder leaves c0, c2, c1.

	got := map[string]MenuItem{}
	flattenAddresses(tr.movementItems(c0, ActionOpenCopy), got)
	want := map[string]ContainerID{
		"Column 1": c0,
		"Column 2": c2,
		"Column 3": c1,
	}
	if len(got) != len(want) {
		t.Fatalf("addresses: %v", got)
	}
	for addr, target := range want {
		it, ok := got[addr]
		if !ok || it.Target != target {
			t.Fatalf("address %q: %+v", addr, it)
		}
		if it.Action != ActionOpenCopy {
			t.Fatalf("action carried through: %+v", it)
		}
	}
	if !got["Column 1"].Disabled {
		t.Fatalf("own entry should be disabled")
	}
}

func TestMovementAddressesStable(t *testing.T) {
	tr := newTestTree()
	if err := tr.GrowString("VHLLVLL"); err != nil {
		t.Fatalf("grow: %v", err)
	}
	from := tr.LeafOrder()[0]

	first := map[string]MenuItem{}
	flattenAddresses(tr.movementItems(from, ActionMove), first)
	second := map[string]MenuItem{}
	flattenAddresses(tr.movementItems(from, ActionMove), second)

	if len(first) != tr.LeafCount() {
		t.Fatalf("every leaf should have an address: %d of %d", len(first), tr.LeafCount())
	}
	seen := map[ContainerID]bool{}
	for addr, it := range first {
		if seen[it.Target] {
			t.Fatalf("duplicate target for %q", addr)
		}
		seen[it.Target] = true
		again, ok := second[addr]
		if !ok || again.Target != it.Target {
			t.Fatalf("address %q unstable", addr)
		}
	}
}

func TestMovementItemsSingleLeaf(t *testing.T) {
	tr := newTestTree()
	if items := tr.movementItems(tr.FirstContainer(), ActionMove); items != nil {
		t.Fatalf("single leaf should yield no items: %v", items)
	}
}
