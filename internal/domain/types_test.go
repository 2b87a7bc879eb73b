/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "testing"

func TestLayoutCounts(t *testing.T) {
	l := Layout{Structure: "VHLLL"}
	if l.LeafCount() != 3 || l.SplitCount() != 2 {
		t.Fatalf("counts: %d leaves, %d splits", l.LeafCount(), l.SplitCount())
	}
}

func TestLayoutConsistent(t *testing.T) {
	ok := Layout{
		Structure: "VLL",
		Fractions: []float64{0.5},
		Containers: []Container{
			{Panes: []Pane{{Title: "notes", Kind: "notes"}}, Selected: 0},
			{Panes: nil, Selected: -1},
		},
		Active: 0,
	}
	if !ok.Consistent() {
		t.Fatalf("expected consistent layout")
	}

	bad := []Layout{
		{Structure: "VLL", Fractions: []float64{0.5}, Containers: []Container{{Selected: -1}}, Active: 0},
		{Structure: "VLL", Fractions: nil, Containers: []Container{{Selected: -1}, {Selected: -1}}, Active: 0},
		{Structure: "L", Containers: []Container{{Selected: -1}}, Active: 1},
		{Structure: "L", Containers: []Container{{Panes: []Pane{{}}, Selected: 3}}, Active: 0},
		{Structure: "L", Containers: []Container{{Panes: nil, Selected: 0}}, Active: 0},
	}
	for i, l := range bad {
		if l.Consistent() {
			t.Fatalf("layout %d should be inconsistent", i)
		}
	}
}
