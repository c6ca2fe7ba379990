package analysis

import "strings"

// NormalizeContent strips surrounding whitespace. Everything else, case and
// inner spacing included, is compared byte for byte.
func NormalizeContent(s string) string {
	return strings.TrimSpace(s)
}
