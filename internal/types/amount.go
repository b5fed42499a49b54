package types

import (
	"strconv"
	"strings"
)

// ParseAmount converts form text into a price or quantity. One leading '+'
// is allowed. Anything else that is not a base-10 unsigned 32-bit integer,
// including text with surrounding spaces, becomes 0.
func ParseAmount(text string) uint32 {
	text = strings.TrimPrefix(text, "+")
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// FormatAmount is the inverse of ParseAmount for populating form fields
func FormatAmount(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}
