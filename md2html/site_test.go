// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	markdown "github.com/rounakkumarsingh/loom"
)

func TestGenerateSite(t *testing.T) {
	dir := t.TempDir()
	site := SiteConfig{
		Src:    filepath.Join(dir, "content"),
		Static: filepath.Join(dir, "static"),
		Out:    filepath.Join(dir, "public"),
	}

	write := func(name, data string) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(name), 0o777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(name, []byte(data), 0o666); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(site.Src, "index.md"), "# Hi\n")
	write(filepath.Join(site.Src, "sub", "page.md"), "*x*\n")
	write(filepath.Join(site.Src, "notes.txt"), "not markdown\n")
	write(filepath.Join(site.Static, "css", "site.css"), "body{}\n")

	p := &markdown.Parser{Table: true, Strikethrough: true, TaskList: true}
	if err := generateSite(p, site); err != nil {
		t.Fatal(err)
	}

	read := func(name string) string {
		t.Helper()
		data, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}
	if got := read(filepath.Join(site.Out, "index.html")); got != "<h1>Hi</h1>\n" {
		t.Errorf("index.html = %q", got)
	}
	if got := read(filepath.Join(site.Out, "sub", "page.html")); !strings.Contains(got, "<em>x</em>") {
		t.Errorf("sub/page.html = %q", got)
	}
	if got := read(filepath.Join(site.Out, "css", "site.css")); got != "body{}\n" {
		t.Errorf("css/site.css = %q", got)
	}
	if _, err := os.Stat(filepath.Join(site.Out, "notes.html")); err == nil {
		t.Error("notes.txt should not be converted")
	}
}

func TestGenerateSiteCleansOutput(t *testing.T) {
	dir := t.TempDir()
	site := SiteConfig{
		Src: filepath.Join(dir, "content"),
		Out: filepath.Join(dir, "public"),
	}
	if err := os.MkdirAll(site.Src, 0o777); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(site.Out, 0o777); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(site.Out, "stale.html")
	if err := os.WriteFile(stale, []byte("old"), 0o666); err != nil {
		t.Fatal(err)
	}

	if err := generateSite(&markdown.Parser{}, site); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); err == nil {
		t.Error("stale output file survived regeneration")
	}
}

func TestGenerateSiteNoOut(t *testing.T) {
	if err := generateSite(&markdown.Parser{}, SiteConfig{Src: "x"}); err == nil {
		t.Error("want error for empty output directory")
	}
}
