package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/angelmondragon/ownshop-backend/pkg/config"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Dialects lists every dialect that keeps its own migration directory.
var Dialects = []string{config.DriverPostgres, config.DriverSQLite}

const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s (%[2]s)
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- rollback %[1]s (%[2]s)
-- +goose StatementEnd
`

// CreateSQLMigrations writes one empty goose migration per dialect under root,
// all sharing a single version so the dialect trees stay in lockstep:
//
//	<root>/postgres/<YYYYMMDDHHMMSS>_<name>.sql
//	<root>/sqlite/<YYYYMMDDHHMMSS>_<name>.sql
func CreateSQLMigrations(root, name string, now time.Time) ([]string, error) {
	if root == "" {
		return nil, errors.New("root dir is required")
	}
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}

	filename := fmt.Sprintf("%s_%s.sql", now.UTC().Format("20060102150405"), slug)
	paths := make([]string, 0, len(Dialects))
	for _, dialect := range Dialects {
		dir := filepath.Join(root, dialect)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %q: %w", dir, err)
		}
		full := filepath.Join(dir, filename)
		if _, err := os.Stat(full); err == nil {
			return nil, fmt.Errorf("migration already exists: %s", full)
		}
		paths = append(paths, full)
	}

	for i, full := range paths {
		body := fmt.Sprintf(migrationTemplate, slug, Dialects[i])
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			return nil, fmt.Errorf("write migration %q: %w", full, err)
		}
	}
	return paths, nil
}
