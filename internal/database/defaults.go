package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/marit/tiledeck/internal/database/repository"
)

// Default provider catalog seeded on fresh DB. URLs are the public
// endpoints of each service; {z}/{x}/{y} placeholders follow the usual
// slippy-map convention.
var defaultProviders = []repository.Provider{
	{
		Name:        "OpenStreetMap",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors",
		Category:    repository.CategoryBasemap,
	},
	{
		Name:        "OpenTopoMap",
		URL:         "https://tile.opentopomap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenTopoMap (CC-BY-SA)",
		Category:    repository.CategoryBasemap,
	},
	{
		Name:        "CartoDB.Positron",
		URL:         "https://basemaps.cartocdn.com/light_all/{z}/{x}/{y}.png",
		Attribution: "© CARTO",
		Category:    repository.CategoryBasemap,
	},
	{
		Name:        "CartoDB.DarkMatter",
		URL:         "https://basemaps.cartocdn.com/dark_all/{z}/{x}/{y}.png",
		Attribution: "© CARTO",
		Category:    repository.CategoryBasemap,
	},
	{
		Name:        "Esri.WorldImagery",
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Esri, Maxar, Earthstar Geographics",
		Category:    repository.CategoryBasemap,
	},
	{
		Name:        "Esri.WorldStreetMap",
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Street_Map/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Esri",
		Category:    repository.CategoryBasemap,
	},
	{
		Name:        "Esri.WorldTopoMap",
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Topo_Map/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Esri",
		Category:    repository.CategoryBasemap,
	},
	{
		Name:        "USGS.USImagery",
		URL:         "https://basemap.nationalmap.gov/arcgis/rest/services/USGSImageryOnly/MapServer/tile/{z}/{y}/{x}",
		Attribution: "USGS",
		Category:    repository.CategoryBasemap,
	},
	{
		Name:        "USGS.USTopo",
		URL:         "https://basemap.nationalmap.gov/arcgis/rest/services/USGSTopo/MapServer/tile/{z}/{y}/{x}",
		Attribution: "USGS",
		Category:    repository.CategoryBasemap,
	},
	{
		Name:          "Stadia.StamenToner",
		URL:           "https://tiles.stadiamaps.com/tiles/stamen_toner/{z}/{x}/{y}.png",
		Attribution:   "© Stadia Maps © Stamen Design",
		Category:      repository.CategoryBasemap,
		RequiresToken: true,
	},
	{
		Name:          "Stadia.AlidadeSmooth",
		URL:           "https://tiles.stadiamaps.com/tiles/alidade_smooth/{z}/{x}/{y}.png",
		Attribution:   "© Stadia Maps",
		Category:      repository.CategoryBasemap,
		RequiresToken: true,
	},
	{
		Name:        "OpenRailwayMap",
		URL:         "https://tiles.openrailwaymap.org/standard/{z}/{x}/{y}.png",
		Attribution: "© OpenRailwayMap",
		Category:    repository.CategoryOverlay,
	},
	{
		Name:        "OpenSeaMap",
		URL:         "https://tiles.openseamap.org/seamark/{z}/{x}/{y}.png",
		Attribution: "© OpenSeaMap contributors",
		Category:    repository.CategoryOverlay,
	},
	{
		Name:        "OSM Mapnik (QMS)",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors",
		Category:    repository.CategoryBasemap,
		Source:      repository.SourceQMS,
	},
	{
		Name:        "Sentinel-2 cloudless (QMS)",
		URL:         "https://tiles.maps.eox.at/wmts/1.0.0/s2cloudless-2020_3857/default/g/{z}/{y}/{x}.jpg",
		Attribution: "Sentinel-2 cloudless by EOX",
		Category:    repository.CategoryBasemap,
		Source:      repository.SourceQMS,
	},
}

// SeedDefaults upserts the built-in provider catalog in one
// transaction. User rows are untouched; builtin rows pick up URL or
// attribution fixes on upgrade.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	return WithTx(db, func(tx *sql.Tx) error {
		repo := repository.NewProviderRepo(tx)
		for _, p := range defaultProviders {
			if p.Source == "" {
				p.Source = repository.SourceBuiltin
			}
			p.ID = uuid.NewString()
			if err := repo.Upsert(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
}
