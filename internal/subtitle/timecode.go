package subtitle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedTimestamp is returned when a timestamp field cannot be parsed.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// upper bounds (exclusive) for hours, minutes, seconds and milliseconds
var timestampLimits = [4]int{10000, 60, 60, 1000}

// ParseTimestamp converts HH:MM:SS,mmm (or HH:MM:SS.mmm, or HH:MM:SS) into a
// duration. Milliseconds are read as an integer count, so "00:00:01,5" is
// one second and five milliseconds. Minutes and seconds must be below 60
// and hours below 10000.
func ParseTimestamp(text string) (time.Duration, error) {
	text = strings.TrimSpace(text)
	hms := strings.Split(text, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
	}
	sec, millis, hasMillis := strings.Cut(hms[2], ",")
	if !hasMillis {
		sec, millis, hasMillis = strings.Cut(hms[2], ".")
	}
	parts := []string{hms[0], hms[1], sec}
	if hasMillis {
		parts = append(parts, millis)
	}

	values := make([]int, 4)
	for i, p := range parts {
		if !isDigits(p) {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n >= timestampLimits[i] {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
		}
		values[i] = n
	}

	return time.Duration(values[0])*time.Hour +
		time.Duration(values[1])*time.Minute +
		time.Duration(values[2])*time.Second +
		time.Duration(values[3])*time.Millisecond, nil
}

// FormatTimestamp renders d as HH:MM:SS,mmm.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	ms := int(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
