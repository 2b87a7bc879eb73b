/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"testing"
	"time"

	"studybench/internal/domain"
)

func testHandle(t *testing.T) *WorkspaceHandle {
	t.Helper()
	wh, err := InitWorkspace(t.TempDir(), minimalWorkspace("Snapshots"))
	if err != nil {
		t.Fatalf("InitWorkspace: %v", err)
	}
	return wh
}

func TestLayoutSnapshotRoundTrip(t *testing.T) {
	wh := testHandle(t)
	ctx := context.Background()

	if _, ok, err := LatestLayoutSnapshot(ctx, wh); err != nil || ok {
		t.Fatalf("fresh index should have no snapshots: ok=%v err=%v", ok, err)
	}

	layout := domain.Layout{
		Structure: "VHLLL",
		Fractions: []float64{0.5, 0.25},
		Containers: []domain.Container{
			{Panes: []domain.Pane{{Title: "derivation", Kind: "editor"}}, Selected: 0},
			{Panes: []domain.Pane{}, Selected: -1},
			{Panes: []domain.Pane{}, Selected: -1},
		},
	}
	if err := SaveLayoutSnapshot(ctx, wh, layout, time.Now()); err != nil {
		t.Fatalf("SaveLayoutSnapshot: %v", err)
	}

	snap, ok, err := LatestLayoutSnapshot(ctx, wh)
	if err != nil || !ok {
		t.Fatalf("LatestLayoutSnapshot: ok=%v err=%v", ok, err)
	}
	if snap.Layout.Structure != "VHLLL" {
		t.Fatalf("structure: %q", snap.Layout.Structure)
	}
	if len(snap.Layout.Fractions) != 2 || snap.Layout.Fractions[1] != 0.25 {
		t.Fatalf("fractions: %v", snap.Layout.Fractions)
	}
	if snap.Layout.Containers[0].Panes[0].Title != "derivation" {
		t.Fatalf("containers: %+v", snap.Layout.Containers)
	}
}

func TestListAndPruneSnapshots(t *testing.T) {
	wh := testHandle(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		layout := domain.Layout{Structure: "L", Fractions: []float64{}}
		if err := SaveLayoutSnapshot(ctx, wh, layout, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	list, err := ListLayoutSnapshots(ctx, wh, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("limit ignored: %d rows", len(list))
	}
	if !list[0].TS.After(list[1].TS) {
		t.Fatalf("newest first expected: %v then %v", list[0].TS, list[1].TS)
	}

	n, err := PruneLayoutSnapshots(ctx, wh, 2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 3 {
		t.Fatalf("pruned %d rows, want 3", n)
	}
	list, err = ListLayoutSnapshots(ctx, wh, 10)
	if err != nil {
		t.Fatalf("list after prune: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("rows after prune: %d", len(list))
	}

	// keepLast <= 0 disables pruning.
	if n, err := PruneLayoutSnapshots(ctx, wh, 0); err != nil || n != 0 {
		t.Fatalf("disabled prune: n=%d err=%v", n, err)
	}
}

func TestPaneHistory(t *testing.T) {
	wh := testHandle(t)
	ctx := context.Background()
	p := domain.Pane{Title: "integrals", Kind: "pdf", Source: "sources/integrals.pdf"}
	if err := RecordPaneOpened(ctx, wh, p, time.Now()); err != nil {
		t.Fatalf("RecordPaneOpened: %v", err)
	}
	db, err := InitOrOpenIndex(wh.Root)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer func() { _ = db.Close() }()
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pane_history`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("history rows: %d", n)
	}
}

func TestIndexVersionRow(t *testing.T) {
	wh := testHandle(t)
	db, err := InitOrOpenIndex(wh.Root)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer func() { _ = db.Close() }()
	var schema int
	if err := db.QueryRow(`SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("version row: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema version: %d want %d", schema, schemaVersion)
	}
}
