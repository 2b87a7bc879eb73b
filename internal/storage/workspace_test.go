/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"studybench/internal/domain"
)

func minimalWorkspace(name string) domain.Workspace {
	return domain.Workspace{
		Name: name,
		Layout: domain.Layout{
			Structure:  "L",
			Fractions:  []float64{},
			Containers: []domain.Container{{Panes: []domain.Pane{}, Selected: -1}},
			Active:     0,
		},
	}
}

func TestInitAndOpenWorkspace(t *testing.T) {
	root := t.TempDir()
	wh, err := InitWorkspace(root, minimalWorkspace("Algebra"))
	if err != nil {
		t.Fatalf("InitWorkspace: %v", err)
	}
	for _, d := range standardSubDirs {
		if _, err := os.Stat(filepath.Join(root, d)); err != nil {
			t.Fatalf("missing subdir %s: %v", d, err)
		}
	}
	got, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.Workspace.Name != "Algebra" {
		t.Fatalf("round trip name: %q", got.Workspace.Name)
	}
	if got.ManifestPath != wh.ManifestPath {
		t.Fatalf("manifest path: %q", got.ManifestPath)
	}
}

func TestSaveUpdatesLayout(t *testing.T) {
	root := t.TempDir()
	wh, err := InitWorkspace(root, minimalWorkspace("Physics"))
	if err != nil {
		t.Fatalf("InitWorkspace: %v", err)
	}
	wh.Workspace.Layout = domain.Layout{
		Structure: "VLL",
		Fractions: []float64{0.4},
		Containers: []domain.Container{
			{Panes: []domain.Pane{{Title: "mechanics", Kind: "notes"}}, Selected: 0},
			{Panes: []domain.Pane{}, Selected: -1},
		},
		Active: 0,
	}
	if err := Save(wh); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l := got.Workspace.Layout
	if l.Structure != "VLL" || len(l.Fractions) != 1 || l.Fractions[0] != 0.4 {
		t.Fatalf("layout round trip: %+v", l)
	}
	if l.Containers[0].Panes[0].Title != "mechanics" {
		t.Fatalf("pane round trip: %+v", l.Containers[0])
	}
	if !l.Consistent() {
		t.Fatalf("saved layout inconsistent")
	}
}

func TestOpenFallsBackToBackupOnCorruption(t *testing.T) {
	root := t.TempDir()
	wh, err := InitWorkspace(root, minimalWorkspace("Chemistry"))
	if err != nil {
		t.Fatalf("InitWorkspace: %v", err)
	}
	// Second save creates a timestamped backup of the initial manifest.
	if err := Save(wh); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.WriteFile(wh.ManifestPath, []byte("{ not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}
	got, err := Open(root)
	if err != nil {
		t.Fatalf("Open with backup should succeed: %v", err)
	}
	if got.Workspace.Name != "Chemistry" {
		t.Fatalf("backup content: %q", got.Workspace.Name)
	}
}

func TestOpenRejectsSchemaViolations(t *testing.T) {
	root := t.TempDir()
	// Well-formed JSON that violates the schema: bad structure alphabet.
	bad := `{"name":"x","layout":{"structure":"XYZ","fractions":[],"containers":[],"active":0}}`
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ManifestFileName), []byte(bad), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(root); err == nil {
		t.Fatalf("schema violation should fail without a backup")
	}
}

func TestValidateManifest(t *testing.T) {
	good := `{"name":"x","layout":{"structure":"VLL","fractions":[0.5],"containers":[{"panes":[],"selected":-1},{"panes":null,"selected":-1}],"active":0}}`
	if err := ValidateManifest([]byte(good)); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}
	for _, bad := range []string{
		`{"layout":{"structure":"L","containers":[],"active":0}}`,
		`{"name":"x","layout":{"structure":"L","containers":[],"active":-1}}`,
		`{"name":"x","layout":{"structure":"L","containers":[{"panes":[{"title":"a","kind":"movie"}],"selected":0}],"active":0}}`,
	} {
		if err := ValidateManifest([]byte(bad)); err == nil {
			t.Fatalf("invalid manifest accepted: %s", bad)
		}
	}
}
