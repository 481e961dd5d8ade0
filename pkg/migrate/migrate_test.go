package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/ownshop-backend/pkg/config"
	"github.com/angelmondragon/ownshop-backend/pkg/migrate"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrationDirsAreValid(t *testing.T) {
	require.NoError(t, migrate.ValidateTree("migrations"))
	require.NoError(t, migrate.ValidateEmbedded())
}

func TestValidateTreeRejectsDialectDrift(t *testing.T) {
	root := t.TempDir()
	_, err := migrate.CreateSQLMigrations(root, "add banner", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(root, config.DriverSQLite, "20260301120000_add_banner.sql")))

	err = migrate.ValidateTree(root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "do not match")
}

func TestValidateTreeRejectsMissingDown(t *testing.T) {
	root := t.TempDir()
	for _, dialect := range migrate.Dialects {
		dir := filepath.Join(root, dialect)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "20260301120000_only_up.sql"), []byte("-- +goose Up\nSELECT 1;\n"), 0o644))
	}
	require.Error(t, migrate.ValidateTree(root))
}

func TestDialectsShareMigrationVersions(t *testing.T) {
	pg, err := filepath.Glob(filepath.Join(migrate.Dir(config.DriverPostgres), "*.sql"))
	require.NoError(t, err)
	lite, err := filepath.Glob(filepath.Join(migrate.Dir(config.DriverSQLite), "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, pg)
	require.Len(t, lite, len(pg))
	for i := range pg {
		require.Equal(t, filepath.Base(pg[i]), filepath.Base(lite[i]))
	}
}

func TestPostgresMigrationsContainSchemas(t *testing.T) {
	checks := map[string][]string{
		"*_create_products_table.sql": {
			"CREATE TABLE IF NOT EXISTS products",
			"chk_products_original_price",
			"CREATE INDEX IF NOT EXISTS idx_products_category",
		},
		"*_create_business_verifications_table.sql": {
			"CREATE TABLE IF NOT EXISTS business_verifications",
			"details text[]",
			"chk_business_verifications_status",
		},
	}
	for pattern, subs := range checks {
		matches, err := filepath.Glob(filepath.Join(migrate.Dir(config.DriverPostgres), pattern))
		require.NoError(t, err)
		require.Len(t, matches, 1, pattern)
		data, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		for _, sub := range subs {
			if !strings.Contains(string(data), sub) {
				t.Errorf("%s missing expected statement %q", pattern, sub)
			}
		}
	}
}

func TestRunUpOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrate.Run(context.Background(), sqlDB, config.DriverSQLite, "up"))

	for _, table := range []string{"products", "business_verifications"} {
		require.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestRunRequiresDB(t *testing.T) {
	require.Error(t, migrate.Run(context.Background(), nil, config.DriverPostgres, "up"))
}

func TestCreateSQLMigrations(t *testing.T) {
	root := t.TempDir()
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	paths, err := migrate.CreateSQLMigrations(root, "Add Banner Table!", at)
	require.NoError(t, err)
	require.Len(t, paths, len(migrate.Dialects))
	for i, path := range paths {
		require.Equal(t, filepath.Join(root, migrate.Dialects[i], "20260302093000_add_banner_table.sql"), path)
	}
	require.NoError(t, migrate.ValidateTree(root))

	_, err = migrate.CreateSQLMigrations(root, "Add Banner Table!", at)
	require.Error(t, err, "same version twice")
	_, err = migrate.CreateSQLMigrations(root, "!!!", at)
	require.Error(t, err)
}
