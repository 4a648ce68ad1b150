package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a clock-time string is not "HH:MM".
var ErrInvalidFormat = errors.New("invalid HH:MM time")

// ToFractionalHours parses a clock time like "08:30" into decimal hours (8.5).
func ToFractionalHours(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return float64(hours) + float64(minutes)/60, nil
}

// ToTimeOfDay formats decimal hours as zero-padded "HH:MM", rounding to the
// nearest minute. Negative input clamps to "00:00".
func ToTimeOfDay(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	totalMinutes := int(math.Round(hours * 60))
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}
