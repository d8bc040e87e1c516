// Package storage provides cache store backends and key derivation.
package storage

import "strings"

// CacheKey derives a deterministic, storage-safe key from an operation prefix
// and its normalized parameters. Parameters are joined with ':' and any
// non-alphanumeric character is replaced with '_' so the same logical request
// always maps to the same key across process restarts.
func CacheKey(prefix string, params ...string) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, sanitize(prefix))
	for _, p := range params {
		parts = append(parts, sanitize(p))
	}
	return strings.Join(parts, ":")
}

func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
