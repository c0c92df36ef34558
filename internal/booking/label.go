package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSeatLabel splits a seat label such as "A12" into its row letter and
// seat number. The row is the first character of the label and the number is
// the remainder parsed as a positive integer. Lowercase rows are accepted and
// normalized to uppercase.
func ParseSeatLabel(label string) (row string, number int, err error) {
	s := strings.TrimSpace(label)
	if len(s) < 2 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidSeatLabel, label)
	}
	r := s[0]
	if r >= 'a' && r <= 'z' {
		r -= 32
	}
	if r < 'A' || r > 'Z' {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidSeatLabel, label)
	}
	n, convErr := strconv.Atoi(s[1:])
	if convErr != nil || n <= 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidSeatLabel, label)
	}
	return string(r), n, nil
}

// FormatSeatLabel is the inverse of ParseSeatLabel: row letter and number
// concatenated with no separator, e.g. ("A", 1) -> "A1".
func FormatSeatLabel(row string, number int) string {
	return fmt.Sprintf("%s%d", row, number)
}
