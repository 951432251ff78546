package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/marit/tiledeck/internal/database"
	. "github.com/marit/tiledeck/internal/database/repository"
)

func openTestRepo(t *testing.T) *ProviderRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewProviderRepo(db)
}

func seed(t *testing.T, repo *ProviderRepo, providers ...Provider) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, p := range providers {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Source == "" {
			p.Source = SourceBuiltin
		}
		if p.Category == "" {
			p.Category = CategoryBasemap
		}
		require.NoError(t, repo.Upsert(ctx, p))
	}
}

func TestUpsertAndList(t *testing.T) {
	t.Parallel()
	repo := openTestRepo(t)
	ctx := context.Background()

	seed(t, repo,
		Provider{Name: "OpenStreetMap", URL: "https://a/{z}/{x}/{y}.png"},
		Provider{Name: "OpenRailwayMap", URL: "https://b/{z}/{x}/{y}.png", Category: CategoryOverlay},
	)

	basemaps, err := repo.List(ctx, CategoryBasemap)
	require.NoError(t, err)
	require.Len(t, basemaps, 1)
	require.Equal(t, "OpenStreetMap", basemaps[0].Name)

	// upsert by name updates in place
	seed(t, repo, Provider{Name: "OpenStreetMap", URL: "https://c/{z}/{x}/{y}.png"})
	got, err := repo.Get(ctx, "OpenStreetMap")
	require.NoError(t, err)
	require.Equal(t, "https://c/{z}/{x}/{y}.png", got.URL)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSearchRanking(t *testing.T) {
	t.Parallel()
	repo := openTestRepo(t)
	ctx := context.Background()

	seed(t, repo,
		Provider{Name: "OpenStreetMap", URL: "u"},
		Provider{Name: "OpenTopoMap", URL: "u"},
		Provider{Name: "CartoDB.Positron", URL: "u"},
		Provider{Name: "Esri.WorldImagery", URL: "u"},
		Provider{Name: "OSM Mapnik (QMS)", URL: "u", Source: SourceQMS},
	)

	// substring hits only, QMS excluded by default
	hits, err := repo.Search(ctx, "open", false)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, h := range hits {
		require.NotEqual(t, SourceQMS, h.Source)
	}

	// including QMS widens the result set
	hits, err = repo.Search(ctx, "osm", true)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	require.Equal(t, "OSM Mapnik (QMS)", hits[0].Name)

	// typo still finds the provider via token distance
	hits, err = repo.Search(ctx, "postron", false)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	require.Equal(t, "CartoDB.Positron", hits[0].Name)

	// blank keyword returns nothing
	hits, err = repo.Search(ctx, "   ", true)
	require.NoError(t, err)
	require.Empty(t, hits)
}
