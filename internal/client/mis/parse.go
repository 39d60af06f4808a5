package mis

import (
	"strconv"
	"strings"
)

// ParseFloat converts an upstream numeric string to a value. Sentinel dashes,
// empty strings, and garbage all map to nil so downstream code never sees a
// value it cannot interpret.
func ParseFloat(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// FirstPrice extracts the first level of an underscore-delimited depth
// string such as "1190_1195_1200__".
func FirstPrice(levels string) *float64 {
	if levels == "" {
		return nil
	}
	head, _, _ := strings.Cut(levels, "_")
	return ParseFloat(head)
}
