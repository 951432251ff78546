package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	data := `
[[provider]]
name = "My Tiles"
url = "https://tiles.example.com/{z}/{x}/{y}.png"
attribution = "© Example"
requires_token = true

[[provider]]
name = ""
url = "https://dropped.example.com/{z}/{x}/{y}.png"

[[provider]]
name = "Overlay Tiles"
url = "https://overlay.example.com/{z}/{x}/{y}.png"
category = "overlay"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	providers, err := ParseCatalog(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("providers = %d, want 2 (nameless entry dropped)", len(providers))
	}
	if providers[0].Name != "My Tiles" || !providers[0].RequiresToken {
		t.Fatalf("first provider = %+v", providers[0])
	}
	if providers[0].Category != "basemap" {
		t.Fatalf("category default = %q, want basemap", providers[0].Category)
	}
	if providers[1].Category != "overlay" {
		t.Fatalf("second category = %q, want overlay", providers[1].Category)
	}
}

func TestParseCatalogCommentedDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(defaultCatalogTOML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	providers, err := ParseCatalog(path)
	if err != nil {
		t.Fatalf("parse default: %v", err)
	}
	if len(providers) != 0 {
		t.Fatalf("default catalog should define nothing, got %d", len(providers))
	}
}
