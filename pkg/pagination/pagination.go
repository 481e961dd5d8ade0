package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 12
	// MaxLimit caps how many rows any page can request.
	MaxLimit = 100

	cursorPrefix = "o|"
)

// Params holds cursor pagination inputs from controllers.
type Params struct {
	Limit  int
	Cursor string
}

// Page is one slice of a listing plus the cursor for the next slice, empty
// when the listing is exhausted.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	Total      int    `json:"total"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds an opaque cursor for the given offset.
func EncodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// ParseCursor decodes the cursor string back into an offset. An empty cursor is offset zero.
func ParseCursor(value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return 0, fmt.Errorf("decode cursor: %w", err)
	}
	raw, ok := strings.CutPrefix(string(decoded), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid cursor format")
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid cursor offset")
	}
	return offset, nil
}

// Slice pages an in-memory listing.
func Slice[T any](items []T, params Params) (Page[T], error) {
	offset, err := ParseCursor(params.Cursor)
	if err != nil {
		return Page[T]{}, err
	}
	limit := NormalizeLimit(params.Limit)

	page := Page[T]{Items: []T{}, Total: len(items)}
	if offset >= len(items) {
		return page, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	page.Items = append(page.Items, items[offset:end]...)
	if end < len(items) {
		page.NextCursor = EncodeCursor(end)
	}
	return page, nil
}
