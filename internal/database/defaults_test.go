package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marit/tiledeck/internal/database/repository"
)

var errSeedFailed = errors.New("seed failed")

func TestSeedDefaultsIsAtomicAndIdempotent(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrationsWithDB(db, migrations))

	require.NoError(t, SeedDefaults(ctx, db))

	repo := repository.NewProviderRepo(db)
	first, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// seeding again must not duplicate rows
	require.NoError(t, SeedDefaults(ctx, db))
	second, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, second, len(first))

	osm, err := repo.Get(ctx, "OpenStreetMap")
	require.NoError(t, err)
	require.Equal(t, repository.SourceBuiltin, osm.Source)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrationsWithDB(db, migrations))

	wantErr := WithTx(db, func(tx *sql.Tx) error {
		repo := repository.NewProviderRepo(tx)
		if err := repo.Upsert(ctx, repository.Provider{
			ID: "x", Name: "Doomed", URL: "https://doomed", Category: repository.CategoryBasemap, Source: repository.SourceUser,
		}); err != nil {
			return err
		}
		return errSeedFailed
	})
	require.ErrorIs(t, wantErr, errSeedFailed)

	repo := repository.NewProviderRepo(db)
	_, err = repo.Get(ctx, "Doomed")
	require.ErrorIs(t, err, sql.ErrNoRows)
}
