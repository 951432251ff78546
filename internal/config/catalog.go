package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ---------------------------------------------------------------------------
// User basemap catalog (TOML-based)
// ---------------------------------------------------------------------------

// CatalogProvider is one user-defined tile service, merged over the
// built-in catalog at startup.
type CatalogProvider struct {
	Name          string `toml:"name"`
	URL           string `toml:"url"`
	Attribution   string `toml:"attribution"`
	Category      string `toml:"category"`       // basemap or overlay
	RequiresToken bool   `toml:"requires_token"` // service needs an API key
}

// catalogFile is the top-level TOML structure.
type catalogFile struct {
	Provider []CatalogProvider `toml:"provider"`
}

const defaultCatalogTOML = `# Tiledeck user basemap catalog
# Add [[provider]] blocks to make extra tile services available in the
# basemap and search panels. {z}/{x}/{y} are the slippy-map placeholders.

# [[provider]]
# name = "My Company Tiles"
# url = "https://tiles.example.com/{z}/{x}/{y}.png"
# attribution = "© Example Corp"
# category = "basemap"
# requires_token = false
`

// catalogDir returns the directory for tiledeck config files, using
// XDG_CONFIG_HOME or falling back to ~/.config.
func catalogDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "tiledeck"), nil
}

// CatalogPath returns the full path to the catalog.toml file.
func CatalogPath() (string, error) {
	dir, err := catalogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog.toml"), nil
}

// LoadCatalog reads the user catalog, writing a commented default file
// on first run. A missing or empty catalog is not an error.
func LoadCatalog() ([]CatalogProvider, error) {
	path, err := CatalogPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir config dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultCatalogTOML), 0o644); err != nil {
			return nil, fmt.Errorf("write default catalog: %w", err)
		}
	}
	return ParseCatalog(path)
}

// ParseCatalog decodes a catalog file, dropping entries without a name
// or URL.
func ParseCatalog(path string) ([]CatalogProvider, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	var out []CatalogProvider
	for _, p := range file.Provider {
		if p.Name == "" || p.URL == "" {
			continue
		}
		if p.Category == "" {
			p.Category = "basemap"
		}
		out = append(out, p)
	}
	return out, nil
}
