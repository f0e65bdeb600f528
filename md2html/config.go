// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the md2html settings read from an optional YAML
// config file. Command-line flags override it.
type Config struct {
	Tables        bool       `yaml:"tables"`
	Strikethrough bool       `yaml:"strikethrough"`
	TaskLists     bool       `yaml:"tasklists"`
	Site          SiteConfig `yaml:"site"`
}

// SiteConfig carries the directory layout for md2html site.
type SiteConfig struct {
	Src    string `yaml:"src"`
	Static string `yaml:"static"`
	Out    string `yaml:"out"`
}

func defaultConfig() *Config {
	return &Config{
		Tables:        true,
		Strikethrough: true,
		TaskLists:     true,
		Site: SiteConfig{
			Src:    "content",
			Static: "static",
			Out:    "public",
		},
	}
}

// loadConfig reads the YAML config at path. An empty path or a
// missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
