package glib

import (
	"math"
	"testing"
	"time"
)

func TestTimeoutMillis(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want uint32
	}{
		{0, 0},
		{time.Millisecond, 1},
		{1500 * time.Microsecond, 1},
		{-time.Second, 0},
		{math.MinInt64, 0},
		{time.Duration(math.MaxUint32) * time.Millisecond, math.MaxUint32},
		{50 * 24 * time.Hour, math.MaxUint32},
		{math.MaxInt64, math.MaxUint32},
	}
	for _, tt := range tests {
		if got := timeoutMillis(tt.in); got != tt.want {
			t.Errorf("timeoutMillis(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
