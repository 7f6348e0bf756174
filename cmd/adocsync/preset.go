package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/weiguanght/adocsync/serializer"
)

const (
	presetDefault = "default"
	presetStrict  = "strict"
	presetLenient = "lenient"
)

func presetConfig(preset string) (serializer.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetDefault:
		return serializer.Config{}, nil
	case presetStrict:
		return serializer.Config{
			UnknownBlocks: serializer.UnknownError,
		}, nil
	case presetLenient:
		return serializer.Config{
			UnknownBlocks:  serializer.UnknownSkip,
			HighlightStyle: serializer.HighlightRole,
		}, nil
	default:
		return serializer.Config{}, fmt.Errorf("unknown preset %q (allowed: default, strict, lenient)", preset)
	}
}

// resolveConfig layers a YAML config file over a preset. File values win.
func resolveConfig(preset, configPath string) (serializer.Config, error) {
	cfg, err := presetConfig(preset)
	if err != nil {
		return serializer.Config{}, err
	}

	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return serializer.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var fileCfg serializer.Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return serializer.Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.UnknownBlocks != "" {
		cfg.UnknownBlocks = fileCfg.UnknownBlocks
	}
	if fileCfg.HighlightStyle != "" {
		cfg.HighlightStyle = fileCfg.HighlightStyle
	}
	if fileCfg.LanguageMap != nil {
		cfg.LanguageMap = fileCfg.LanguageMap
	}

	return cfg, nil
}
