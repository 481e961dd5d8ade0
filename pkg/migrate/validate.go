package migrate

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"slices"
	"strings"
)

var migrationNameRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateTree checks every dialect directory under root on disk.
func ValidateTree(root string) error {
	return validateDialects(os.DirFS(root), ".")
}

// ValidateEmbedded checks the migrations compiled into the binary.
func ValidateEmbedded() error {
	return validateDialects(embedded, "migrations")
}

// validateDialects requires each dialect directory to be well formed and to
// carry exactly the same set of migration files as the others.
func validateDialects(fsys fs.FS, root string) error {
	var reference []string
	for i, dialect := range Dialects {
		names, err := validateFS(fsys, path.Join(root, dialect))
		if err != nil {
			return fmt.Errorf("%s: %w", dialect, err)
		}
		if i == 0 {
			reference = names
			continue
		}
		if !slices.Equal(reference, names) {
			return fmt.Errorf("%s migrations %v do not match %s migrations %v", dialect, names, Dialects[0], reference)
		}
	}
	return nil
}

// validateFS returns the sorted migration filenames found in dir after
// checking names, version uniqueness and goose section markers.
func validateFS(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	versions := map[string]string{}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		m := migrationNameRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}
		if prev, dup := versions[m[1]]; dup {
			return nil, fmt.Errorf("version %s used by both %q and %q", m[1], prev, name)
		}
		versions[m[1]] = name

		body, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", name, err)
		}
		up := strings.Index(string(body), "-- +goose Up")
		down := strings.Index(string(body), "-- +goose Down")
		if up < 0 || down < 0 || down < up {
			return nil, fmt.Errorf("migration %q needs an Up section followed by a Down section", name)
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
