/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"studybench/internal/domain"
	"studybench/internal/storage"
)

func diagramWorkspace(t *testing.T) *storage.WorkspaceHandle {
	t.Helper()
	ws := domain.Workspace{
		Name: "Diagram",
		Layout: domain.Layout{
			Structure: "VHLLL",
			Fractions: []float64{0.4, 0.5},
			Containers: []domain.Container{
				{Panes: []domain.Pane{{Title: "lecture", Kind: "notes"}}, Selected: 0},
				{Panes: []domain.Pane{}, Selected: -1},
				{Panes: []domain.Pane{{Title: "reference", Kind: "pdf"}}, Selected: 0},
			},
			Active: 0,
		},
	}
	wh, err := storage.InitWorkspace(t.TempDir(), ws)
	if err != nil {
		t.Fatalf("InitWorkspace: %v", err)
	}
	return wh
}

func TestExportLayoutPDF(t *testing.T) {
	wh := diagramWorkspace(t)
	if err := ExportLayoutPDF(wh, "layout.pdf", PDFOptions{IncludeLabels: true}); err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	path := filepath.Join(wh.Root, "exports", "layout.pdf")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Fatalf("not a pdf: %q", b[:8])
	}
}

func TestExportLayoutPNG(t *testing.T) {
	wh := diagramWorkspace(t)
	if err := ExportLayoutPNG(wh, "layout.png", PNGOptions{Width: 320, Height: 200, IncludeLabels: true}); err != nil {
		t.Fatalf("export png: %v", err)
	}
	path := filepath.Join(wh.Root, "exports", "layout.png")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("not a png")
	}
}

func TestExportLayoutSVG(t *testing.T) {
	wh := diagramWorkspace(t)
	if err := ExportLayoutSVG(wh, "layout.svg", SVGOptions{IncludeLabels: true}); err != nil {
		t.Fatalf("export svg: %v", err)
	}
	path := filepath.Join(wh.Root, "exports", "layout.svg")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.Contains(b, []byte("<svg")) || bytes.Count(b, []byte("<rect")) != 3 {
		t.Fatalf("svg content unexpected: %s", b)
	}
	if !bytes.Contains(b, []byte("lecture")) {
		t.Fatalf("label missing from svg")
	}
}

func TestExportRejectsInconsistentLayout(t *testing.T) {
	wh := diagramWorkspace(t)
	wh.Workspace.Layout.Fractions = nil
	if err := ExportLayoutSVG(wh, "bad.svg", SVGOptions{}); err == nil {
		t.Fatalf("inconsistent layout accepted")
	}
}
