package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Window size constants
const (
	defaultWidth  = 1280
	defaultHeight = 900
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Warning", "Error"
}

type Config struct {
	WindowWidth     int           `json:"window_width"`
	WindowHeight    int           `json:"window_height"`
	PaginationMode  ViewMode      `json:"pagination_mode"`
	ResizeQuality   ResizeQuality `json:"resize_quality"`
	Transparency    bool          `json:"transparency"`
	CachingEnabled  bool          `json:"caching_enabled"`
	MaxCacheEntries int           `json:"max_cache_entries"`
	ImageDelayMS    int           `json:"image_delay_ms"`
	SortMethod      int           `json:"sort_method"`
	AsyncPrefetch   bool          `json:"async_prefetch"`

	Keybindings   map[string][]string `json:"keybindings"`
	Mousebindings map[string][]string `json:"mousebindings"`
	MouseSettings MouseSettings       `json:"mouse_settings"`

	// enumWarnings collects enum values UnmarshalJSON had to skip
	enumWarnings []string
}

// UnmarshalJSON decodes the enum fields on their own so that one unknown
// name keeps that field's current value instead of failing the whole file
func (c *Config) UnmarshalJSON(data []byte) error {
	type plainConfig Config
	aux := struct {
		*plainConfig
		PaginationMode json.RawMessage `json:"pagination_mode"`
		ResizeQuality  json.RawMessage `json:"resize_quality"`
	}{plainConfig: (*plainConfig)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.PaginationMode) > 0 {
		if err := json.Unmarshal(aux.PaginationMode, &c.PaginationMode); err != nil {
			c.enumWarnings = append(c.enumWarnings,
				fmt.Sprintf("Invalid pagination mode %s, using %s", aux.PaginationMode, c.PaginationMode))
		}
	}
	if len(aux.ResizeQuality) > 0 {
		if err := json.Unmarshal(aux.ResizeQuality, &c.ResizeQuality); err != nil {
			c.enumWarnings = append(c.enumWarnings,
				fmt.Sprintf("Invalid resize quality %s, using %s", aux.ResizeQuality, c.ResizeQuality))
		}
	}
	return nil
}

// Settings converts the persisted config into the viewer core's settings
func (c Config) Settings() Settings {
	return Settings{
		Mode:          c.PaginationMode,
		Resize:        c.ResizeQuality,
		Transparency:  c.Transparency,
		CacheEnabled:  c.CachingEnabled,
		MaxCacheSize:  c.MaxCacheEntries,
		SortMethod:    c.SortMethod,
		AsyncPrefetch: c.AsyncPrefetch,
		ImageDelay:    time.Duration(c.ImageDelayMS) * time.Millisecond,
	}
}

// ApplySettings copies the user-changeable parts of s back into the config
func (c *Config) ApplySettings(s Settings) {
	c.PaginationMode = s.Mode
	c.ResizeQuality = s.Resize
	c.Transparency = s.Transparency
	c.CachingEnabled = s.CacheEnabled
}

func defaultConfig() Config {
	s := DefaultSettings()
	return Config{
		WindowWidth:     defaultWidth,
		WindowHeight:    defaultHeight,
		PaginationMode:  s.Mode,
		ResizeQuality:   s.Resize,
		Transparency:    s.Transparency,
		CachingEnabled:  s.CacheEnabled,
		MaxCacheEntries: 0,
		ImageDelayMS:    0,
		SortMethod:      s.SortMethod,
		AsyncPrefetch:   s.AsyncPrefetch,
		Keybindings:     GetDefaultKeybindings(),
		Mousebindings:   GetDefaultMousebindings(),
		MouseSettings:   GetDefaultMouseSettings(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "mangaview.json"
	}
	return filepath.Join(homeDir, ".mangaview.json")
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config: config,
		Status: "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnf("Failed to read config file %s: %v", configPath, err)
			result.HasError = true
			result.Status = "Error"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to read config file: %v", err))
		}
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		logger.Warnf("Failed to parse config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to parse config file: %v", err))
		return result
	}

	result.Config = validateConfig(config, &result)
	return result
}

// validateConfig clamps out-of-range values back to defaults and records
// a warning for each one
func validateConfig(config Config, result *ConfigLoadResult) Config {
	warn := func(format string, args ...interface{}) {
		result.Status = "Warning"
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
	}

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	for _, w := range config.enumWarnings {
		warn("%s", w)
	}
	config.enumWarnings = nil

	if _, ok := viewModeNames[config.PaginationMode]; !ok {
		warn("Invalid pagination mode %d, using default", int(config.PaginationMode))
		config.PaginationMode = DefaultSettings().Mode
	}
	if _, ok := resizeQualityNames[config.ResizeQuality]; !ok {
		warn("Invalid resize quality %d, using default", int(config.ResizeQuality))
		config.ResizeQuality = DefaultSettings().Resize
	}

	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		warn("Invalid sort method %d, using natural sort", config.SortMethod)
		config.SortMethod = SortNatural
	}

	// Validate cache cap (0 = unlimited, maximum 4096)
	if config.MaxCacheEntries < 0 {
		config.MaxCacheEntries = 0
	} else if config.MaxCacheEntries > 4096 {
		config.MaxCacheEntries = 4096
	}

	// Validate image delay (0 to 1000 ms)
	if config.ImageDelayMS < 0 {
		config.ImageDelayMS = 0
	} else if config.ImageDelayMS > 1000 {
		config.ImageDelayMS = 1000
	}

	if config.MouseSettings.WheelThreshold < 0 {
		config.MouseSettings.WheelThreshold = GetDefaultMouseSettings().WheelThreshold
	}
	if config.MouseSettings.DoubleClickTime < 100 || config.MouseSettings.DoubleClickTime > 1000 {
		config.MouseSettings.DoubleClickTime = GetDefaultMouseSettings().DoubleClickTime
	}

	// Fill in missing bindings with defaults
	config.Keybindings = mergeBindings(config.Keybindings, GetDefaultKeybindings())
	config.Mousebindings = mergeBindings(config.Mousebindings, GetDefaultMousebindings())

	if err := validateKeybindings(config.Keybindings); err != nil {
		logger.Warnf("Invalid keybindings detected, using defaults: %v", err)
		warn("Keybinding errors: %v", err)
		config.Keybindings = GetDefaultKeybindings()
	}

	return config
}

func mergeBindings(bindings, defaults map[string][]string) map[string][]string {
	if bindings == nil {
		return defaults
	}
	for action, keys := range defaults {
		if _, exists := bindings[action]; !exists {
			bindings[action] = keys
		}
	}
	return bindings
}

func saveConfigToPath(config Config, configPath string) error {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		logger.Warnf("Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return nil
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("save config to %s: %w", configPath, err)
	}
	return nil
}
