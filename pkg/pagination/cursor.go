// Package pagination implements keyset pagination over rows ordered newest first.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor marks the last row of a page ordered by (At DESC, ID DESC).
type Cursor struct {
	ID uuid.UUID
	At time.Time
}

// Encode returns an opaque URL-safe token of the form base64("<unix nanos>_<id>").
func (c *Cursor) Encode() string {
	raw := strconv.FormatInt(c.At.UnixNano(), 10) + "_" + c.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Predicate returns a WHERE fragment selecting rows after the cursor for the given time column.
func (c *Cursor) Predicate(column string) (string, []any) {
	return fmt.Sprintf("(%[1]s < ?) OR (%[1]s = ? AND id < ?)", column), []any{c.At, c.At, c.ID}
}

// DecodeCursor parses a token produced by Encode. An empty token yields a nil cursor.
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	nanos, id, ok := strings.Cut(string(raw), "_")
	if !ok {
		return nil, fmt.Errorf("%w: missing separator", ErrInvalidCursor)
	}

	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	return &Cursor{ID: parsed, At: time.Unix(0, n).UTC()}, nil
}

// NormalizeLimit clamps limit to [1, MaxLimit], substituting DefaultLimit for non-positive values.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Page trims rows fetched with one extra look-ahead row and reports whether more remain.
func Page[T any](rows []T, limit int) ([]T, bool) {
	limit = NormalizeLimit(limit)
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}
