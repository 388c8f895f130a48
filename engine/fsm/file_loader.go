package fsm

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// ParseConfigAuto loads a graph with priority: customPath > fallback filesystem
// fallback is typically an embed.FS carrying the built-in graphs
func ParseConfigAuto(customPath string, fallback fs.FS, fallbackName string) (*RootConfig, error) {
	if customPath != "" {
		return ParseConfigFromPath(customPath)
	}
	return ParseConfigFS(fallback, fallbackName)
}

// ParseConfigFromPath loads a graph from an arbitrary file path
// Includes are resolved relative to the config file's directory
func ParseConfigFromPath(configPath string) (*RootConfig, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}
	return ParseConfigFS(os.DirFS(filepath.Dir(configPath)), filepath.Base(configPath))
}

// ParseConfigFS loads name from fsys and merges all includes
func ParseConfigFS(fsys fs.FS, name string) (*RootConfig, error) {
	visited := make(map[string]bool)
	cfg, err := loadAndResolve(fsys, name, visited)
	if err != nil {
		return nil, fmt.Errorf("failed to load FSM config %s: %w", name, err)
	}
	return cfg, nil
}

// loadAndResolve recursively loads a YAML file and merges its includes
// States defined in the including file override included ones
func loadAndResolve(fsys fs.FS, name string, visited map[string]bool) (*RootConfig, error) {
	name = path.Clean(name)
	if visited[name] {
		return nil, fmt.Errorf("circular include detected: %s", name)
	}
	visited[name] = true

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	merged := &RootConfig{
		InitialState: cfg.InitialState,
		States:       make(map[string]*StateConfig),
	}
	baseDir := path.Dir(name)
	for _, inc := range cfg.Include {
		sub, err := loadAndResolve(fsys, path.Join(baseDir, inc), visited)
		if err != nil {
			return nil, err
		}
		mergeStates(merged.States, sub.States)
		if merged.InitialState == "" {
			merged.InitialState = sub.InitialState
		}
	}
	mergeStates(merged.States, cfg.States)

	return merged, nil
}

func mergeStates(dst, src map[string]*StateConfig) {
	for name, st := range src {
		dst[name] = st
	}
}
