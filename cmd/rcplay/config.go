package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wippyai/rc-runtime/arena"
)

type playConfig struct {
	Scenario string
	Mode     arena.Mode
	Verbose  bool
}

type fileConfig struct {
	Mode     string `toml:"mode"`
	Scenario string `toml:"scenario"`
	Verbose  bool   `toml:"verbose"`
}

func defaultConfig() playConfig {
	return playConfig{Mode: arena.Checked}
}

func loadConfig(path string) (playConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return playConfig{}, fmt.Errorf("load rcplay config: %w", err)
	}

	if meta.IsDefined("mode") {
		m, err := parseMode(raw.Mode)
		if err != nil {
			return playConfig{}, err
		}
		cfg.Mode = m
	}

	if meta.IsDefined("scenario") {
		cfg.Scenario = strings.TrimSpace(raw.Scenario)
	}

	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}

	return cfg, nil
}

func parseMode(s string) (arena.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "checked", "":
		return arena.Checked, nil
	case "unchecked":
		return arena.Unchecked, nil
	default:
		return arena.Checked, fmt.Errorf("parse mode: %q is not checked or unchecked", s)
	}
}
