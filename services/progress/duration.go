package progress

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDurationSeconds is used when a stored duration is empty or malformed.
const DefaultDurationSeconds = 30 * 60

var (
	minutesSecondsPattern = regexp.MustCompile(`^(\d+):(\d+)$`)
	bareMinutesPattern    = regexp.MustCompile(`^\d+$`)
)

// ParseDurationSeconds turns a stored duration into seconds. "MM:SS" is read
// as minutes and seconds, a bare integer as minutes, anything else falls back
// to DefaultDurationSeconds.
func ParseDurationSeconds(raw string) int {
	return ParseDurationSecondsOr(raw, DefaultDurationSeconds)
}

// ParseDurationSecondsOr is ParseDurationSeconds with an explicit fallback.
// A non-positive fallback means DefaultDurationSeconds.
func ParseDurationSecondsOr(raw string, fallback int) int {
	if fallback <= 0 {
		fallback = DefaultDurationSeconds
	}
	raw = strings.TrimSpace(raw)

	if m := minutesSecondsPattern.FindStringSubmatch(raw); m != nil {
		minutes, errM := strconv.Atoi(m[1])
		seconds, errS := strconv.Atoi(m[2])
		if errM != nil || errS != nil {
			return fallback
		}
		return minutes*60 + seconds
	}
	if bareMinutesPattern.MatchString(raw) {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return fallback
		}
		return minutes * 60
	}
	return fallback
}

// FormatDuration renders seconds as "{h}h {m}m", or "{m}m" under an hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
