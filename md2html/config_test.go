// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "md2html.yaml")
	data := "tables: false\nsite:\n  src: pages\n"
	if err := os.WriteFile(path, []byte(data), 0o666); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tables {
		t.Errorf("Tables = true, want false")
	}
	if !cfg.Strikethrough || !cfg.TaskLists {
		t.Errorf("unset extensions should keep defaults: %+v", cfg)
	}
	if cfg.Site.Src != "pages" {
		t.Errorf("Site.Src = %q, want pages", cfg.Site.Src)
	}
	if cfg.Site.Out != "public" {
		t.Errorf("Site.Out = %q, want default public", cfg.Site.Out)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *defaultConfig() {
		t.Errorf("missing file: %+v, want defaults", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *defaultConfig() {
		t.Errorf("empty path: %+v, want defaults", cfg)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("tables: [\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("bad YAML: want error")
	}
}
