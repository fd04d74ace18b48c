package util

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10MB", 10 * 1024 * 1024},
		{"512KB", 512 * 1024},
		{"1GB", 1024 * 1024 * 1024},
		{"2048", 2048},
		{" 5mb ", 5 * 1024 * 1024},
		{"", 42},
		{"garbage", 42},
		{"-1MB", 42},
	}
	for _, tt := range tests {
		if got := ParseSize(tt.in, 42); got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret("supersecretvalue", 4); got != "supe***" {
		t.Errorf("MaskSecret() = %q", got)
	}
	if got := MaskSecret("ab", 4); got != "***" {
		t.Errorf("MaskSecret() short input = %q, want ***", got)
	}
}
