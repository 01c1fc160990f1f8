package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidCursor is returned when a cursor cannot be decoded
var ErrInvalidCursor = errors.New("invalid cursor")

// maxCursorSize bounds cursor input to prevent abuse via massive base64 strings
const maxCursorSize = 512

// EncodeCursor builds an opaque pagination cursor from a record id.
// Cursor format: base64(decimal id). Callers must treat the result as
// non-interpretable and pass it back verbatim.
func EncodeCursor(id int64) string {
	return base64.URLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeCursor decodes an opaque cursor back into the record id it encodes.
// The empty string is not a valid cursor; callers represent "no cursor" as
// an absent parameter instead.
func DecodeCursor(cursor string) (int64, error) {
	if len(cursor) > maxCursorSize {
		return 0, fmt.Errorf("%w: cursor exceeds maximum length", ErrInvalidCursor)
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid base64 encoding", ErrInvalidCursor)
	}

	id, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed cursor value", ErrInvalidCursor)
	}

	return id, nil
}
