// Package util holds small helpers shared across packages.
package util

import (
	"strconv"
	"strings"
)

// ParseSize parses human-friendly byte sizes like "10MB", "512KB", or "1GB".
// Bare numbers are bytes. Unparseable or non-positive input falls back to
// defaultBytes.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}

	var unit int64 = 1
	for _, u := range []struct {
		suffix string
		bytes  int64
	}{
		{"GB", 1 << 30},
		{"MB", 1 << 20},
		{"KB", 1 << 10},
	} {
		if strings.HasSuffix(s, u.suffix) {
			unit = u.bytes
			s = strings.TrimSuffix(s, u.suffix)
			break
		}
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return defaultBytes
	}
	return n * unit
}

// MaskSecret keeps at most visiblePrefix leading characters of s and masks
// the rest, for safe display in logs.
func MaskSecret(s string, visiblePrefix int) string {
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}
