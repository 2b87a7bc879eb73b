/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"testing"
)

type fakeStore struct {
	vals map[string]string
}

func (f *fakeStore) Get(service, key string) (string, error) {
	return f.vals[service+"/"+key], nil
}
func (f *fakeStore) Set(service, key, value string) error {
	f.vals[service+"/"+key] = value
	return nil
}
func (f *fakeStore) Delete(service, key string) error {
	delete(f.vals, service+"/"+key)
	return nil
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ConfigVersion != 1 {
		t.Fatalf("config version: %d", cfg.ConfigVersion)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("logging defaults: %+v", cfg.Logging)
	}
	if cfg.Board.SnapshotLimit <= 0 {
		t.Fatalf("snapshot limit default should be positive, got %d", cfg.Board.SnapshotLimit)
	}
}

func TestMergeIntoKeepsDefaultsForZeroValues(t *testing.T) {
	dst := Defaults()
	src := AppConfig{}
	src.Logging.Level = "DEBUG"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" {
		t.Fatalf("level not normalized: %q", dst.Logging.Level)
	}
	if dst.Archive.BaseURL != Defaults().Archive.BaseURL {
		t.Fatalf("empty src url should not clobber default")
	}
	if dst.Board.SnapshotLimit != Defaults().Board.SnapshotLimit {
		t.Fatalf("zero snapshot limit should not clobber default")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvArchiveURL, "https://bench.example.org")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvSnapshotLimit, "7")
	cfg := Defaults()
	applyEnvOverrides(&cfg)
	if cfg.Archive.BaseURL != "https://bench.example.org" {
		t.Fatalf("archive url override: %q", cfg.Archive.BaseURL)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("log level override: %q", cfg.Logging.Level)
	}
	if cfg.Board.SnapshotLimit != 7 {
		t.Fatalf("snapshot limit override: %d", cfg.Board.SnapshotLimit)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	old := tokenStore
	tokenStore = &fakeStore{vals: map[string]string{}}
	defer func() { tokenStore = old }()

	t.Setenv("HOME", t.TempDir())
	if err := Save(Defaults(), "secret-token"); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, tok, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tok != "secret-token" {
		t.Fatalf("token round trip: %q", tok)
	}
	if err := ClearToken(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	_, tok, _ = Load()
	if tok != "" {
		t.Fatalf("token should be cleared, got %q", tok)
	}
}
