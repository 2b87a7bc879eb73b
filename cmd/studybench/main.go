/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"studybench/internal/backend"
	"studybench/internal/board"
	"studybench/internal/config"
	"studybench/internal/crash"
	"studybench/internal/domain"
	"studybench/internal/export"
	applog "studybench/internal/log"
	"studybench/internal/storage"
	"studybench/internal/telemetry"
	"studybench/internal/version"
)

func usage() {
	fmt.Println("Study Bench")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  studybench version|-v|--version             Show version")
	fmt.Println("  studybench init <dir> <name>                Create a new workspace at <dir> with name <name>")
	fmt.Println("  studybench open <dir>                       Open workspace at <dir> and print summary")
	fmt.Println("  studybench save <dir>                       Save workspace at <dir> (creates backup)")
	fmt.Println("  studybench inspect <dir>                    Print descriptor, leaf order and movement addresses")
	fmt.Println("  studybench snapshot <dir> save|list|prune   Manage the layout snapshot history")
	fmt.Println("  studybench export <dir> pdf|png|svg [out]   Render a layout diagram into <dir>/exports")
	fmt.Println("  studybench serve                            Run the layout-archive server")
	fmt.Println("  studybench push <dir>                       Push the current layout to the archive")
	fmt.Println("  studybench pull <dir>                       Pull the latest archived layout into the manifest")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var wh *storage.WorkspaceHandle
	defer func() { crash.Recover(wh) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Study Bench")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 4 {
				fmt.Println("init requires <dir> and <name>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			name := args[3]
			abs, _ := filepath.Abs(dir)
			l.Info("init workspace", slog.String("root", abs), slog.String("name", name))
			ws := domain.Workspace{
				Name: name,
				Layout: domain.Layout{
					Structure:  "L",
					Fractions:  []float64{},
					Containers: []domain.Container{{Panes: []domain.Pane{}, Selected: -1}},
					Active:     0,
				},
			}
			h, err := storage.InitWorkspace(abs, ws)
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			wh = h
			fmt.Println("Created workspace at", abs)
			return
		case "open":
			wh = mustOpen(l, args)
			telemetry.Event("workspace_opened", map[string]any{
				"containers": len(wh.Workspace.Layout.Containers),
			})
			fmt.Printf("Opened workspace: %s\n", wh.Workspace.Name)
			fmt.Printf("Structure: %s\n", wh.Workspace.Layout.Structure)
			fmt.Printf("Containers: %d\n", len(wh.Workspace.Layout.Containers))
			fmt.Println("Root:", wh.Root)
			return
		case "save":
			wh = mustOpen(l, args)
			wh.Workspace.Metadata.Notes = fmt.Sprintf("Saved at %s", time.Now().Format(time.RFC3339))
			if err := storage.Save(wh); err != nil {
				l.Error("save failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Saved workspace and created a backup of previous manifest (if any).")
			return
		case "inspect":
			wh = mustOpen(l, args)
			runInspect(l, wh)
			return
		case "snapshot":
			wh = mustOpen(l, args)
			runSnapshot(l, wh, args)
			return
		case "export":
			wh = mustOpen(l, args)
			runExport(l, wh, args)
			return
		case "serve":
			if err := backend.Start(); err != nil {
				l.Error("server failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "push":
			wh = mustOpen(l, args)
			runPush(l, wh)
			return
		case "pull":
			wh = mustOpen(l, args)
			runPull(l, wh)
			return
		}
	}

	usage()
}

// mustOpen opens the workspace named in args[2] or exits.
func mustOpen(l *slog.Logger, args []string) *storage.WorkspaceHandle {
	if len(args) < 3 {
		fmt.Printf("%s requires <dir>\n", args[1])
		usage()
		os.Exit(2)
	}
	abs, _ := filepath.Abs(args[2])
	l.Info("open workspace", slog.String("root", abs))
	h, err := storage.Open(abs)
	if err != nil {
		l.Error("open failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return h
}

// runInspect rebuilds the board from the manifest and prints its shape.
func runInspect(l *slog.Logger, wh *storage.WorkspaceHandle) {
	m := board.NewManager(nil)
	titles := map[board.PaneID]string{}
	err := storage.RestoreLayout(m, wh.Workspace.Layout, func(id board.PaneID, p domain.Pane) error {
		titles[id] = p.Title
		return nil
	})
	if err != nil {
		l.Error("restore layout failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Println("Structure:", m.Structure())
	fmt.Println("Fractions:", m.LeftFractions())
	for i, c := range m.LeafOrder() {
		label := titles[m.SelectedPane(c)]
		fmt.Printf("  %d. container %d  panes=%d  selected=%q\n", i+1, c, len(m.Panes(c)), label)
	}
	active := m.ActiveContainer()
	fmt.Println("Active container:", active)
	fmt.Println("Movement addresses from the active container:")
	printMenuItems(m.MovementMenu(active), "  ")
}

func printMenuItems(items []board.MenuItem, indent string) {
	for _, it := range items {
		suffix := ""
		if it.Disabled {
			suffix = " (current)"
		}
		fmt.Printf("%s%s%s\n", indent, it.Label, suffix)
		printMenuItems(it.Items, indent+"  ")
	}
}

func runSnapshot(l *slog.Logger, wh *storage.WorkspaceHandle, args []string) {
	sub := "save"
	if len(args) >= 4 {
		sub = args[3]
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	switch sub {
	case "save":
		if err := storage.SaveLayoutSnapshot(ctx, wh, wh.Workspace.Layout, time.Now()); err != nil {
			l.Error("snapshot save failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		cfg, _, _ := config.Load()
		if n, err := storage.PruneLayoutSnapshots(ctx, wh, cfg.Board.SnapshotLimit); err == nil && n > 0 {
			l.Info("pruned old snapshots", slog.Int64("removed", n))
		}
		fmt.Println("Snapshot saved.")
	case "list":
		snaps, err := storage.ListLayoutSnapshots(ctx, wh, 0)
		if err != nil {
			l.Error("snapshot list failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		for _, s := range snaps {
			fmt.Printf("%s  %s  (%d containers)\n",
				s.TS.Local().Format(time.RFC3339), s.Layout.Structure, len(s.Layout.Containers))
		}
		if len(snaps) == 0 {
			fmt.Println("No snapshots.")
		}
	case "prune":
		cfg, _, _ := config.Load()
		n, err := storage.PruneLayoutSnapshots(ctx, wh, cfg.Board.SnapshotLimit)
		if err != nil {
			l.Error("snapshot prune failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Pruned %d snapshots.\n", n)
	default:
		fmt.Println("snapshot requires save, list or prune")
		os.Exit(2)
	}
}

func runExport(l *slog.Logger, wh *storage.WorkspaceHandle, args []string) {
	if len(args) < 4 {
		fmt.Println("export requires a format: pdf, png or svg")
		os.Exit(2)
	}
	format := args[3]
	out := "layout." + format
	if len(args) >= 5 {
		out = args[4]
	}
	var err error
	switch format {
	case "pdf":
		err = export.ExportLayoutPDF(wh, out, export.PDFOptions{IncludeLabels: true})
	case "png":
		err = export.ExportLayoutPNG(wh, out, export.PNGOptions{IncludeLabels: true})
	case "svg":
		err = export.ExportLayoutSVG(wh, out, export.SVGOptions{IncludeLabels: true})
	default:
		fmt.Println("unknown export format:", format)
		os.Exit(2)
	}
	if err != nil {
		l.Error("export failed", slog.String("format", format), slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	telemetry.Event("layout_exported", map[string]any{"format": format})
	fmt.Println("Exported", out)
}

func archiveClient(l *slog.Logger) *backend.Client {
	cfg, token, err := config.Load()
	if err != nil {
		l.Error("load config failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return backend.NewClientFromConfig(cfg.Archive, token)
}

func runPush(l *slog.Logger, wh *storage.WorkspaceHandle) {
	c := archiveClient(l)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	id, err := c.RegisterWorkspace(ctx, wh.Workspace.Name)
	if err != nil {
		l.Error("register workspace failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if err := c.PushLayout(ctx, id, wh.Workspace.Layout); err != nil {
		l.Error("push layout failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Pushed layout for %q (archive id %d).\n", wh.Workspace.Name, id)
}

func runPull(l *slog.Logger, wh *storage.WorkspaceHandle) {
	c := archiveClient(l)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	id, err := c.RegisterWorkspace(ctx, wh.Workspace.Name)
	if err != nil {
		l.Error("register workspace failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	env, err := c.PullLayout(ctx, id)
	if err != nil {
		l.Error("pull layout failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if !env.Layout.Consistent() {
		fmt.Println("Error: archived layout is inconsistent; not applying")
		os.Exit(1)
	}
	wh.Workspace.Layout = env.Layout
	if err := storage.Save(wh); err != nil {
		l.Error("save after pull failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Pulled layout from %s and saved the manifest.\n", env.CreatedAt)
}
