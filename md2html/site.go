// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	markdown "github.com/rounakkumarsingh/loom"
	"github.com/spf13/cobra"
)

var (
	flagSiteSrc    string
	flagSiteStatic string
	flagSiteOut    string
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "generate a static site from a Markdown tree",
	Long: `site removes and recreates the output directory, copies the static
tree into it, and converts every .md file under the source tree to a
matching .html file.`,
	Args: cobra.NoArgs,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().StringVar(&flagSiteSrc, "src", "", "directory of Markdown pages (default from config)")
	siteCmd.Flags().StringVar(&flagSiteStatic, "static", "", "directory of static files (default from config)")
	siteCmd.Flags().StringVar(&flagSiteOut, "out", "", "output directory (default from config)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	p, cfg, err := configuredParser()
	if err != nil {
		return err
	}
	site := cfg.Site
	if flagSiteSrc != "" {
		site.Src = flagSiteSrc
	}
	if flagSiteStatic != "" {
		site.Static = flagSiteStatic
	}
	if flagSiteOut != "" {
		site.Out = flagSiteOut
	}
	return generateSite(p, site)
}

// generateSite rebuilds the output tree from scratch: static files
// are copied as is, and every Markdown page becomes a sibling HTML
// file under the output directory.
func generateSite(p *markdown.Parser, site SiteConfig) error {
	if site.Out == "" {
		return fmt.Errorf("site: no output directory configured")
	}
	if err := os.RemoveAll(site.Out); err != nil {
		return fmt.Errorf("cleaning %s: %w", site.Out, err)
	}
	if err := os.MkdirAll(site.Out, 0o777); err != nil {
		return err
	}

	if site.Static != "" {
		if _, err := os.Stat(site.Static); err == nil {
			if err := copyDir(site.Static, site.Out); err != nil {
				return fmt.Errorf("copying static files: %w", err)
			}
		}
	}

	return filepath.WalkDir(site.Src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, err := filepath.Rel(site.Src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(site.Out, strings.TrimSuffix(rel, ".md")+".html")
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o777); err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(markdown.ToHTML(p.Parse(string(data)))), 0o666); err != nil {
			return err
		}
		log.Printf("generated %s", out)
		return nil
	})
}

// copyDir copies the tree rooted at src into dst, which must exist.
func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		sp := filepath.Join(src, e.Name())
		dp := filepath.Join(dst, e.Name())
		if e.IsDir() {
			if err := os.MkdirAll(dp, 0o777); err != nil {
				return err
			}
			if err := copyDir(sp, dp); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(sp, dp); err != nil {
			return err
		}
		log.Printf("copied %s -> %s", sp, dp)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
