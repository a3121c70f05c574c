package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".mangaview.json")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name           string
		configJSON     string
		expectedWidth  int
		expectedHeight int
		expectedMode   ViewMode
		expectedDelay  int
		expectedStatus string
	}{
		{
			name: "Valid config",
			configJSON: `{
				"window_width": 1000,
				"window_height": 800,
				"pagination_mode": "single",
				"image_delay_ms": 50
			}`,
			expectedWidth:  1000,
			expectedHeight: 800,
			expectedMode:   ViewSingle,
			expectedDelay:  50,
			expectedStatus: "OK",
		},
		{
			name: "Width too small",
			configJSON: `{
				"window_width": 200,
				"window_height": 600
			}`,
			expectedWidth:  defaultWidth,
			expectedHeight: 600,
			expectedMode:   ViewDoubleRightToLeft,
			expectedStatus: "OK",
		},
		{
			name: "Delay clamped",
			configJSON: `{
				"window_width": 800,
				"window_height": 100,
				"image_delay_ms": 5000
			}`,
			expectedWidth:  800,
			expectedHeight: defaultHeight,
			expectedMode:   ViewDoubleRightToLeft,
			expectedDelay:  1000,
			expectedStatus: "OK",
		},
		{
			name: "Invalid sort method",
			configJSON: `{
				"pagination_mode": "double_ltr",
				"sort_method": 7
			}`,
			expectedWidth:  defaultWidth,
			expectedHeight: defaultHeight,
			expectedMode:   ViewDoubleLeftToRight,
			expectedStatus: "Warning",
		},
		{
			name: "Unknown mode name",
			configJSON: `{
				"window_width": 1000,
				"pagination_mode": "triple",
				"image_delay_ms": 50
			}`,
			expectedWidth:  1000,
			expectedHeight: defaultHeight,
			expectedMode:   ViewDoubleRightToLeft,
			expectedDelay:  50,
			expectedStatus: "Warning",
		},
		{
			name:           "Malformed JSON",
			configJSON:     `{"window_width": 1000,`,
			expectedWidth:  defaultWidth,
			expectedHeight: defaultHeight,
			expectedMode:   ViewDoubleRightToLeft,
			expectedStatus: "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, tt.configJSON))
			config := result.Config

			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.expectedWidth, config.WindowWidth)
			assert.Equal(t, tt.expectedHeight, config.WindowHeight)
			assert.Equal(t, tt.expectedMode, config.PaginationMode)
			assert.Equal(t, tt.expectedDelay, config.ImageDelayMS)
			assert.Equal(t, SortNatural, config.SortMethod)
		})
	}
}

func TestConfigUnknownEnumsKeepOtherFields(t *testing.T) {
	result := loadConfigFromPath(writeConfig(t, `{
		"window_width": 1000,
		"pagination_mode": 3,
		"resize_quality": "ultra",
		"transparency": true,
		"sort_method": 1
	}`))

	assert.Equal(t, "Warning", result.Status)
	assert.False(t, result.HasError)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "pagination mode 3")
	assert.Contains(t, result.Warnings[1], `resize quality "ultra"`)

	config := result.Config
	assert.Equal(t, ViewDoubleRightToLeft, config.PaginationMode)
	assert.Equal(t, ResizeBilinear, config.ResizeQuality)
	assert.Equal(t, 1000, config.WindowWidth)
	assert.True(t, config.Transparency)
	assert.Equal(t, SortSimple, config.SortMethod)
	assert.Nil(t, config.enumWarnings)
}

func TestLoadConfigDefaults(t *testing.T) {
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "nonexistent.json"))

	assert.Equal(t, "OK", result.Status)
	assert.False(t, result.HasError)
	assert.Equal(t, defaultConfig(), result.Config)

	s := result.Config.Settings()
	assert.Equal(t, DefaultSettings(), s)
}

func TestConfigKeybindings(t *testing.T) {
	t.Run("missing actions filled from defaults", func(t *testing.T) {
		result := loadConfigFromPath(writeConfig(t, `{"keybindings": {"next_page": ["Space"]}}`))
		assert.Equal(t, []string{"Space"}, result.Config.Keybindings["next_page"])
		assert.Equal(t, []string{"Home"}, result.Config.Keybindings["first_page"])
	})

	t.Run("conflict falls back to defaults", func(t *testing.T) {
		result := loadConfigFromPath(writeConfig(t, `{"keybindings": {"next_page": ["Home"]}}`))
		assert.Equal(t, "Warning", result.Status)
		assert.Equal(t, GetDefaultKeybindings(), result.Config.Keybindings)
	})

	t.Run("unknown key falls back to defaults", func(t *testing.T) {
		result := loadConfigFromPath(writeConfig(t, `{"keybindings": {"exit": ["Hyper+KeyQ"]}}`))
		assert.Equal(t, "Warning", result.Status)
		assert.Equal(t, []string{"Escape"}, result.Config.Keybindings["exit"])
	})
}

func TestConfigRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")

	config := defaultConfig()
	config.ApplySettings(Settings{Mode: ViewSingle, Resize: ResizeLanczos3, Transparency: true, CacheEnabled: false})
	config.ImageDelayMS = 120
	require.NoError(t, saveConfigToPath(config, configPath))

	loaded := loadConfigFromPath(configPath)
	require.Equal(t, "OK", loaded.Status, loaded.Warnings)

	s := loaded.Config.Settings()
	assert.Equal(t, ViewSingle, s.Mode)
	assert.Equal(t, ResizeLanczos3, s.Resize)
	assert.True(t, s.Transparency)
	assert.False(t, s.CacheEnabled)
	assert.Equal(t, 120*time.Millisecond, s.ImageDelay)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pagination_mode": "single"`)
	assert.Contains(t, string(data), `"resize_quality": "lanczos3"`)
}

func TestSaveConfigRejectsTinyWindow(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	config := defaultConfig()
	config.WindowWidth = 10

	require.NoError(t, saveConfigToPath(config, configPath))
	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}
