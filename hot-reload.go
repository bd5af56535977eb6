// hot-reload.go: file-watched configuration reload via Argus.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// HotConfig watches a configuration file and stages MaxLoadFactor/
// MinCapacity changes onto a Cache, committing them with Reconfigure as
// soon as a change is detected. Resizing parameters (MinCapacity,
// MaxLoadFactor) are the only fields this watches; Filler, destroyers, and
// collaborators are process-local and are not meaningfully expressible in
// a config file.
type HotConfig struct {
	cache   *Cache
	watcher *argus.Watcher
	mu      sync.RWMutex
	last    hotReloadable

	// OnReload is called after a reload has been applied. It must be fast
	// and non-blocking.
	OnReload func(old, new hotReloadable)

	logger Logger
}

// hotReloadable is the subset of Config that HotConfig can apply without
// rebuilding the Cache from scratch being the caller's responsibility.
type hotReloadable struct {
	MinCapacity   int
	MaxLoadFactor float64
}

// HotConfigOptions configures a HotConfig watcher.
type HotConfigOptions struct {
	// ConfigPath is the file to watch. Argus supports JSON, YAML, TOML,
	// HCL, INI, and Properties formats.
	ConfigPath string

	// PollInterval is how often to check for changes. Default 1s, minimum 100ms.
	PollInterval time.Duration

	// OnReload, if set, is called after every applied reload.
	OnReload func(old, new hotReloadable)

	// Logger receives reload diagnostics. Defaults to the cache's own logger.
	Logger Logger
}

// NewHotConfig starts watching opts.ConfigPath and applying MinCapacity/
// MaxLoadFactor changes to cache as they appear.
//
// Expected file shape (YAML):
//
//	cache:
//	  min_capacity: 4096
//	  max_load_factor: 0.40
func NewHotConfig(cache *Cache, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = cache.cfg.Logger
	}

	hc := &HotConfig{
		cache:    cache,
		OnReload: opts.OnReload,
		logger:   opts.Logger,
		last: hotReloadable{
			MinCapacity:   cache.cfg.MinCapacity,
			MaxLoadFactor: cache.cfg.MaxLoadFactor,
		},
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argus.Config{
		PollInterval: opts.PollInterval,
	})
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching, if not already running.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// Current returns the last applied MinCapacity/MaxLoadFactor pair.
func (hc *HotConfig) Current() hotReloadable {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.last
}

func (hc *HotConfig) handleConfigChange(data map[string]interface{}) {
	next := hc.parse(data)

	hc.mu.Lock()
	old := hc.last
	changed := next != old
	hc.last = next
	hc.mu.Unlock()

	if !changed {
		return
	}

	hc.cache.StageMinCapacity(next.MinCapacity)
	hc.cache.StageMaxLoadFactor(next.MaxLoadFactor)
	if err := hc.cache.Reconfigure(); err != nil {
		hc.logger.Error("ichcache: hot-reload failed", "error", err)
		return
	}

	hc.logger.Info("ichcache: hot-reloaded", "min_capacity", next.MinCapacity, "max_load_factor", next.MaxLoadFactor)
	if hc.OnReload != nil {
		hc.OnReload(old, next)
	}
}

// parse extracts min_capacity/max_load_factor from the "cache" section of
// the watched file, falling back to the last known values for anything
// absent or malformed.
func (hc *HotConfig) parse(data map[string]interface{}) hotReloadable {
	current := hc.Current()

	section, ok := data["cache"].(map[string]interface{})
	if !ok {
		if _, hasMinCap := data["min_capacity"]; hasMinCap {
			section = data
		} else {
			return current
		}
	}

	result := current
	if v, ok := parsePositiveInt(section["min_capacity"]); ok {
		result.MinCapacity = v
	}
	if v, ok := parseFloatInRange(section["max_load_factor"], 0, 1); ok {
		result.MaxLoadFactor = v
	}
	return result
}

func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

func parseFloatInRange(value interface{}, min, max float64) (float64, bool) {
	if v, ok := value.(float64); ok {
		if v > min && v <= max {
			return v, true
		}
	}
	return 0, false
}
