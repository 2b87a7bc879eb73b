/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import "testing"

func TestContainerAddSelectsNewPane(t *testing.T) {
	c := NewPaneContainer()
	if !c.Empty() || c.Selected() != NoPane || c.SelectedIndex() != -1 {
		t.Fatalf("fresh container not empty: %+v", c)
	}
	c.add(10, 1)
	c.add(11, 2)
	if c.Selected() != 11 || c.SelectedIndex() != 1 {
		t.Fatalf("newest pane should be selected: %d at %d", c.Selected(), c.SelectedIndex())
	}
	if got := c.Panes(); len(got) != 2 || got[0] != 10 || got[1] != 11 {
		t.Fatalf("tab order: %v", got)
	}
}

func TestContainerSelectStamps(t *testing.T) {
	c := NewPaneContainer()
	c.add(10, 1)
	c.add(11, 2)
	if !c.selectPane(10, 3) {
		t.Fatalf("select failed")
	}
	if c.Selected() != 10 {
		t.Fatalf("selected: %d", c.Selected())
	}
	if c.Stamp(10) != 3 || c.Stamp(11) != 2 {
		t.Fatalf("stamps: %d %d", c.Stamp(10), c.Stamp(11))
	}
	if c.selectPane(99, 4) {
		t.Fatalf("selecting unknown pane should fail")
	}
}

func TestContainerRemoveKeepsSelectionSensible(t *testing.T) {
	c := NewPaneContainer()
	c.add(10, 1)
	c.add(11, 2)
	c.add(12, 3)
	c.selectPane(11, 4)

	// Removing before the selection shifts the index, not the pane.
	c.remove(10)
	if c.Selected() != 11 {
		t.Fatalf("selection drifted: %d", c.Selected())
	}
	// Removing the selected last pane falls back to the new last.
	c.selectPane(12, 5)
	c.remove(12)
	if c.Selected() != 11 {
		t.Fatalf("selection after removing last: %d", c.Selected())
	}
	c.remove(11)
	if !c.Empty() || c.Selected() != NoPane {
		t.Fatalf("container should be empty")
	}
	if c.remove(11) {
		t.Fatalf("double remove should report false")
	}
}

func TestContainerDuplicateAddPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	c := NewPaneContainer()
	c.add(10, 1)
	c.add(10, 2)
}
