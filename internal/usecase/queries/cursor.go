package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"save-serve/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200

	pageTokenPrefix = "d1."
)

// Cursor is the opaque continuation handed back with a page of donations.
type Cursor struct {
	After string `json:"after,omitempty"`
}

// EncodeAfterCursor packs the (created_at, id) keyset of the last row on a page.
// Microseconds match the precision Postgres keeps for timestamptz.
func EncodeAfterCursor(createdAt time.Time, id uuid.UUID) string {
	raw := pageTokenPrefix + strconv.FormatInt(createdAt.UnixMicro(), 36) + "." + id.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeAfterCursor(token string) (time.Time, uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(err, "page token is not base64url")
	}
	body, ok := strings.CutPrefix(string(raw), pageTokenPrefix)
	if !ok {
		return time.Time{}, uuid.Nil, errs.New("unknown page token version")
	}
	micros, idPart, ok := strings.Cut(body, ".")
	if !ok {
		return time.Time{}, uuid.Nil, errs.New("malformed page token")
	}
	us, err := strconv.ParseInt(micros, 36, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(err, "page token timestamp")
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(err, "page token id")
	}
	return time.UnixMicro(us).UTC(), id, nil
}

// ValidateLimit clamps a requested page size into [1, MaxPageSize].
func ValidateLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPageSize
	case limit > MaxPageSize:
		return MaxPageSize
	default:
		return limit
	}
}
