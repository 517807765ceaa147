package flight

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	dateUnitMinutes = map[byte]float64{'W': 7 * 24 * 60, 'D': 24 * 60}
	timeUnitMinutes = map[byte]float64{'H': 60, 'M': 1, 'S': 1.0 / 60}
)

// FormatDuration turns an upstream token into its display form by plain
// substitution: PT2H30M -> "2h 30min", PT45M -> "45min".
func FormatDuration(token string) string {
	if token == "" {
		return ""
	}
	s := strings.ReplaceAll(token, "PT", "")
	s = strings.ReplaceAll(s, "H", "h ")
	s = strings.ReplaceAll(s, "M", "min")
	return s
}

// ParseDuration reads an ISO-8601 duration (P[nW][nD][T[nH][nM][nS]]) and
// returns it in whole minutes along with its display form.
func ParseDuration(token string) (int, string, error) {
	if token == "" {
		return 0, "", nil
	}

	rest, ok := strings.CutPrefix(token, "P")
	if !ok {
		return 0, "", fmt.Errorf("duration %q: missing P designator", token)
	}

	datePart, timePart, hasTime := strings.Cut(rest, "T")
	if datePart == "" && timePart == "" {
		return 0, "", fmt.Errorf("duration %q: no components", token)
	}
	if hasTime && timePart == "" {
		return 0, "", fmt.Errorf("duration %q: empty time part", token)
	}

	days, err := sumUnits(datePart, dateUnitMinutes)
	if err != nil {
		return 0, "", fmt.Errorf("duration %q: %w", token, err)
	}
	clock, err := sumUnits(timePart, timeUnitMinutes)
	if err != nil {
		return 0, "", fmt.Errorf("duration %q: %w", token, err)
	}

	return int(math.Round(days + clock)), FormatDuration(token), nil
}

func sumUnits(s string, units map[byte]float64) (float64, error) {
	var total float64
	for len(s) > 0 {
		i := 0
		for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
			i++
		}
		if i == 0 || i == len(s) {
			return 0, fmt.Errorf("malformed component %q", s)
		}
		n, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, fmt.Errorf("malformed number %q", s[:i])
		}
		mult, ok := units[s[i]]
		if !ok {
			return 0, fmt.Errorf("unknown unit %q", s[i])
		}
		total += n * mult
		s = s[i+1:]
	}
	return total, nil
}

// joinSegmentDurations is the display used when no aggregate token exists.
// It is a concatenation of legs, not a sum, and ignores layover time.
func joinSegmentDurations(segments []FlightSegment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.FormattedDuration)
	}
	return strings.Join(parts, " + ")
}
