package main

import (
	"testing"
	"time"
)

func TestEnvInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 5},
		{"8", 8},
		{"0", 5},
		{"-2", 5},
		{"lots", 5},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("CARD_CONCURRENCY", tt.value)
			if got := envInt("CARD_CONCURRENCY", 5); got != tt.want {
				t.Errorf("envInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 10 * time.Second},
		{"30s", 30 * time.Second},
		{"2m", 2 * time.Minute},
		{"15", 15 * time.Second},
		{"0", 0},
		{"soon", 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SOURCE_TIMEOUT", tt.value)
			if got := envDuration("SOURCE_TIMEOUT", 10*time.Second); got != tt.want {
				t.Errorf("envDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}
