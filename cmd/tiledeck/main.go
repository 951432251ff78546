package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/marit/tiledeck/internal/config"
	"github.com/marit/tiledeck/internal/database"
	"github.com/marit/tiledeck/internal/database/repository"
	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/service"
	"github.com/marit/tiledeck/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrationsWithDB(db, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	repo := repository.NewProviderRepo(db)

	// merge user catalog entries over the built-in providers
	if entries, err := config.LoadCatalog(); err == nil {
		for _, e := range entries {
			_ = repo.Upsert(ctx, repository.Provider{
				ID:            uuid.NewString(),
				Name:          e.Name,
				URL:           e.URL,
				Attribution:   e.Attribution,
				Category:      e.Category,
				Source:        repository.SourceUser,
				RequiresToken: e.RequiresToken,
			})
		}
	} else {
		log.Printf("warn: user catalog unavailable: %v", err)
	}

	doc := maps.New(maps.NewTileLayer("", "Graticule", ""))
	if base, err := repo.Get(ctx, cfg.UI.Basemap); err == nil {
		doc.AddTileLayer(base.URL, base.Name, base.Attribution)
	} else if osm, err := repo.Get(ctx, "OpenStreetMap"); err == nil {
		doc.AddTileLayer(osm.URL, osm.Name, osm.Attribution)
	}

	exporter := &service.Exporter{Dir: cfg.Export.Dir}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseMotion {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(tui.NewApp(cfg, doc, repo, exporter), opts...)
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
