package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Tokens carry the keyset cursor for list endpoints. RFC3339Nano keeps the
// sub-second ordering that the created_at tiebreaker relies on.
const timeFormat = time.RFC3339Nano

// EncodeMultiFieldToken packs cursor fields into an opaque base64 token.
func EncodeMultiFieldToken(fields ...string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken unpacks a token produced by EncodeMultiFieldToken.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decoded), "|"), nil
}

// EncodeToken builds the journal-listing cursor from the entry date and
// creation time of the last returned row.
func EncodeToken(entryDate time.Time, createdAt time.Time) string {
	return EncodeMultiFieldToken(entryDate.Format(timeFormat), createdAt.Format(timeFormat))
}

// DecodeToken parses a journal-listing cursor back into its two timestamps.
func DecodeToken(token string) (time.Time, time.Time, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (field count)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return entryDate, createdAt, nil
}
