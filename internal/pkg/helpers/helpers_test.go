package helpers

import (
	"math"
	"testing"
	"time"
)

func TestMean(t *testing.T) {
	if got := Mean([]float64{34, 37}); got != 35.5 {
		t.Fatalf("Mean = %v, want 35.5", got)
	}
	if got := Mean([]float64{40}); got != 40 {
		t.Fatalf("Mean = %v, want 40", got)
	}
	if got := Mean(nil); !math.IsNaN(got) {
		t.Fatalf("Mean(nil) = %v, want NaN", got)
	}
	if got := Mean([]float64{}); !math.IsNaN(got) {
		t.Fatalf("Mean(empty) = %v, want NaN", got)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"15s", 15 * time.Second},
		{"1h", time.Hour},
		{"", 7 * time.Second},
		{"soon", 7 * time.Second},
	}
	for _, tc := range cases {
		if got := ParseDuration(tc.in, 7*time.Second); got != tc.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
