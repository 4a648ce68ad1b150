package timeutil_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Charlydk/Portal-GTR-sub000/timeutil"
)

func TestToFractionalHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"00:00", 0},
		{"00:30", 0.5},
		{"01:00", 1},
		{"08:45", 8.75},
		{"23:59", 23 + 59.0/60},
	}
	for _, tt := range tests {
		got, err := timeutil.ToFractionalHours(tt.in)
		if err != nil {
			t.Errorf("ToFractionalHours(%q) returned error: %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ToFractionalHours(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToFractionalHoursInvalid(t *testing.T) {
	for _, in := range []string{"", "830", "8:3:0", "ab:cd", "08:60", "-1:00", "08:-5"} {
		if _, err := timeutil.ToFractionalHours(in); !errors.Is(err, timeutil.ErrInvalidFormat) {
			t.Errorf("ToFractionalHours(%q) error = %v, want ErrInvalidFormat", in, err)
		}
	}
}

func TestToTimeOfDay(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{0.5, "00:30"},
		{1.75, "01:45"},
		{9.999, "10:00"},
		{-2, "00:00"},
	}
	for _, tt := range tests {
		if got := timeutil.ToTimeOfDay(tt.in); got != tt.want {
			t.Errorf("ToTimeOfDay(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// Every valid HH:MM string survives the round trip exactly.
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += 7 {
			s := timeutil.ToTimeOfDay(float64(h) + float64(m)/60)
			dec, err := timeutil.ToFractionalHours(s)
			if err != nil {
				t.Fatalf("round trip of %q failed: %v", s, err)
			}
			if timeutil.ToTimeOfDay(dec) != s {
				t.Errorf("round trip of %q produced %q", s, timeutil.ToTimeOfDay(dec))
			}
		}
	}

	// Arbitrary decimals come back within a minute.
	for _, x := range []float64{0, 0.013, 1.234, 7.777, 15.5001} {
		got, err := timeutil.ToFractionalHours(timeutil.ToTimeOfDay(x))
		if err != nil {
			t.Fatalf("round trip of %v failed: %v", x, err)
		}
		if math.Abs(got-x) >= 1.0/60 {
			t.Errorf("round trip of %v drifted to %v", x, got)
		}
	}
}
