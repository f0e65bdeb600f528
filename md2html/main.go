// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command md2html converts Markdown to HTML.
//
// With file arguments it converts each file in order; with none it
// reads standard input. The converted HTML goes to standard output.
// The site subcommand converts a whole directory tree instead.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	markdown "github.com/rounakkumarsingh/loom"
	"github.com/spf13/cobra"
)

var (
	flagConfig        string
	flagTables        bool
	flagStrikethrough bool
	flagTaskLists     bool
)

var rootCmd = &cobra.Command{
	Use:   "md2html [flags] [file...]",
	Short: "convert Markdown files to HTML",
	Long: `md2html converts CommonMark-subset Markdown, with the GitHub table,
strikethrough, and task list extensions, to HTML on standard output.
With no arguments it reads from standard input.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Assigned here, not in the composite literal: runConvert reaches
	// back to rootCmd's flags through configuredParser, and a literal
	// reference would make the variable initializers cyclic.
	rootCmd.RunE = runConvert
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to YAML config file")
	pf.BoolVar(&flagTables, "tables", true, "enable the table extension")
	pf.BoolVar(&flagStrikethrough, "strikethrough", true, "enable the strikethrough extension")
	pf.BoolVar(&flagTaskLists, "tasklists", true, "enable the task list extension")
}

func main() {
	log.SetPrefix("md2html: ")
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// configuredParser builds the parser from the config file, if any,
// with explicitly set flags taking precedence.
func configuredParser() (*markdown.Parser, *Config, error) {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	p := &markdown.Parser{
		Table:         cfg.Tables,
		Strikethrough: cfg.Strikethrough,
		TaskList:      cfg.TaskLists,
	}
	pf := rootCmd.PersistentFlags()
	if pf.Changed("tables") {
		p.Table = flagTables
	}
	if pf.Changed("strikethrough") {
		p.Strikethrough = flagStrikethrough
	}
	if pf.Changed("tasklists") {
		p.TaskList = flagTaskLists
	}
	return p, cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	p, _, err := configuredParser()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), markdown.ToHTML(p.Parse(string(data))))
		return err
	}
	for _, name := range args {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		if _, err := io.WriteString(cmd.OutOrStdout(), markdown.ToHTML(p.Parse(string(data)))); err != nil {
			return err
		}
	}
	return nil
}
