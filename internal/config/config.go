package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Playback PlaybackConfig
	Export   ExportConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Basemap         string
	ToolbarPosition string
	MouseMotion     bool
}

// PlaybackConfig drives the time slider's frame list and period.
type PlaybackConfig struct {
	IntervalSeconds int
	FrameTemplate   string // URL with a {t} placeholder
	FrameLabels     []string
}

// ExportConfig holds save-map defaults.
type ExportConfig struct {
	Dir             string
	DefaultFilename string
}

// Load reads configuration from file and env. Env var overrides use prefix TILEDECK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "tiledeck", "tiledeck.db"))
	v.SetDefault("ui.basemap", "OpenStreetMap")
	v.SetDefault("ui.toolbar_position", "topright")
	v.SetDefault("ui.mouse_motion", true)
	v.SetDefault("playback.interval_seconds", 1)
	v.SetDefault("playback.frame_template", "https://gibs.earthdata.nasa.gov/wmts/epsg3857/best/MODIS_Terra_CorrectedReflectance_TrueColor/default/{t}/GoogleMapsCompatible_Level9/{z}/{y}/{x}.jpg")
	v.SetDefault("playback.frame_labels", defaultFrameLabels())
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.default_filename", "my_map.html")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TILEDECK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tiledeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TILEDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory
// if needed. Used by the TUI for preferences it owns (basemap choice,
// playback interval).
func Save(cfg Config) error {
	path := os.Getenv("TILEDECK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "tiledeck", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.basemap", cfg.UI.Basemap)
	v.Set("ui.toolbar_position", cfg.UI.ToolbarPosition)
	v.Set("ui.mouse_motion", cfg.UI.MouseMotion)
	v.Set("playback.interval_seconds", cfg.Playback.IntervalSeconds)
	v.Set("playback.frame_template", cfg.Playback.FrameTemplate)
	v.Set("playback.frame_labels", cfg.Playback.FrameLabels)
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("export.default_filename", cfg.Export.DefaultFilename)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// defaultFrameLabels is one year of monthly mosaics.
func defaultFrameLabels() []string {
	months := []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}
	out := make([]string, 0, len(months))
	for _, m := range months {
		out = append(out, "2024-"+m+"-01")
	}
	return out
}
