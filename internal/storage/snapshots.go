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
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"studybench/internal/domain"
)

// language=SQL
// dialect=SQLite
const insertLayoutSnapshotSQL = `INSERT INTO layout_snapshots(ts, structure, fractions, containers) VALUES (?, ?, ?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestLayoutSnapshotSQL = `SELECT ts, structure, fractions, containers FROM layout_snapshots ORDER BY ts DESC, id DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const listLayoutSnapshotsSQL = `SELECT ts, structure, fractions, containers FROM layout_snapshots ORDER BY ts DESC, id DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const pruneLayoutSnapshotsSQL = `DELETE FROM layout_snapshots WHERE id NOT IN (
	SELECT id FROM layout_snapshots ORDER BY ts DESC, id DESC LIMIT ?
)`

// language=SQL
// dialect=SQLite
const insertPaneHistorySQL = `INSERT INTO pane_history(ts, title, kind, source) VALUES (?, ?, ?, ?)`

// LayoutSnapshot is one row of the snapshot history.
type LayoutSnapshot struct {
	TS     time.Time
	Layout domain.Layout
}

// SaveLayoutSnapshot persists the layout with a timestamp into the workspace
// index. It opens the index database if needed.
func SaveLayoutSnapshot(ctx context.Context, wh *WorkspaceHandle, layout domain.Layout, ts time.Time) error {
	if wh == nil {
		return errors.New("nil WorkspaceHandle")
	}
	db, err := InitOrOpenIndex(wh.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	fractions, err := json.Marshal(layout.Fractions)
	if err != nil {
		return err
	}
	containers, err := json.Marshal(layout.Containers)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, insertLayoutSnapshotSQL,
		ts.UTC().Format(time.RFC3339Nano), layout.Structure, string(fractions), containers)
	return err
}

// LatestLayoutSnapshot returns the most recent snapshot, or ok=false if the
// history is empty.
func LatestLayoutSnapshot(ctx context.Context, wh *WorkspaceHandle) (LayoutSnapshot, bool, error) {
	if wh == nil {
		return LayoutSnapshot{}, false, errors.New("nil WorkspaceHandle")
	}
	db, err := InitOrOpenIndex(wh.Root)
	if err != nil {
		return LayoutSnapshot{}, false, err
	}
	defer func() { _ = db.Close() }()
	snap, err := scanSnapshot(db.QueryRowContext(ctx, selectLatestLayoutSnapshotSQL))
	if errors.Is(err, sql.ErrNoRows) {
		return LayoutSnapshot{}, false, nil
	}
	if err != nil {
		return LayoutSnapshot{}, false, err
	}
	return snap, true, nil
}

// ListLayoutSnapshots returns up to limit most recent snapshots, newest first.
func ListLayoutSnapshots(ctx context.Context, wh *WorkspaceHandle, limit int) ([]LayoutSnapshot, error) {
	if wh == nil {
		return nil, errors.New("nil WorkspaceHandle")
	}
	if limit <= 0 {
		limit = 50
	}
	db, err := InitOrOpenIndex(wh.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	rows, err := db.QueryContext(ctx, listLayoutSnapshotsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []LayoutSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// PruneLayoutSnapshots keeps at most keepLast snapshots and deletes older
// ones. keepLast <= 0 disables pruning.
func PruneLayoutSnapshots(ctx context.Context, wh *WorkspaceHandle, keepLast int) (int64, error) {
	if wh == nil {
		return 0, errors.New("nil WorkspaceHandle")
	}
	if keepLast <= 0 {
		return 0, nil
	}
	db, err := InitOrOpenIndex(wh.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, pruneLayoutSnapshotsSQL, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RecordPaneOpened appends a pane to the open/activate history.
func RecordPaneOpened(ctx context.Context, wh *WorkspaceHandle, p domain.Pane, ts time.Time) error {
	if wh == nil {
		return errors.New("nil WorkspaceHandle")
	}
	db, err := InitOrOpenIndex(wh.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, insertPaneHistorySQL,
		ts.UTC().Format(time.RFC3339Nano), p.Title, p.Kind, p.Source)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (LayoutSnapshot, error) {
	var (
		tsStr      string
		structure  string
		fractions  string
		containers []byte
	)
	if err := row.Scan(&tsStr, &structure, &fractions, &containers); err != nil {
		return LayoutSnapshot{}, err
	}
	snap := LayoutSnapshot{Layout: domain.Layout{Structure: structure}}
	snap.TS, _ = time.Parse(time.RFC3339Nano, tsStr)
	if err := json.Unmarshal([]byte(fractions), &snap.Layout.Fractions); err != nil {
		return LayoutSnapshot{}, err
	}
	if len(containers) > 0 {
		if err := json.Unmarshal(containers, &snap.Layout.Containers); err != nil {
			return LayoutSnapshot{}, err
		}
	}
	return snap, nil
}
