// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// Executing the root command exercises the whole wiring: flag
// registration, config defaults, and the RunE hookup done in init.
func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.md")
	if err := os.WriteFile(path, []byte("# Hi\n\n~~x~~\n"), 0o666); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	want := "<h1>Hi</h1>\n<p><del>x</del></p>\n"
	if out.String() != want {
		t.Errorf("convert output:\nhave %q\nwant %q", out.String(), want)
	}
}

func TestConvertFlagOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.md")
	if err := os.WriteFile(path, []byte("~~x~~\n"), 0o666); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--strikethrough=false", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	want := "<p>~~x~~</p>\n"
	if out.String() != want {
		t.Errorf("convert output:\nhave %q\nwant %q", out.String(), want)
	}
}
