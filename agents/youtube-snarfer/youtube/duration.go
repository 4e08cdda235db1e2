package youtube

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedDuration is returned when an ISO-8601 duration component is not an integer.
var ErrMalformedDuration = errors.New("malformed ISO-8601 duration")

type durationUnit struct {
	suffix  string
	seconds int
}

// Largest unit first.
var durationUnits = []durationUnit{
	{"w", 7 * 24 * 60 * 60},
	{"d", 24 * 60 * 60},
	{"h", 60 * 60},
	{"m", 60},
	{"s", 1},
}

// ParseISODuration converts an ISO-8601 duration such as "PT1H2M10S" or
// "P3DT4H" into whole seconds. Only the day and time designators are
// understood; anything after the seconds component is ignored.
func ParseISODuration(s string) (int, error) {
	if _, after, found := strings.Cut(s, "P"); found {
		s = after
	}

	var days, hours, minutes, seconds int
	steps := []struct {
		designator string
		value      *int
	}{
		{"D", &days},
		{"T", nil},
		{"H", &hours},
		{"M", &minutes},
		{"S", &seconds},
	}

	for _, step := range steps {
		n, rest, err := cutComponent(s, step.designator)
		if err != nil {
			return 0, err
		}
		if step.value != nil {
			*step.value = n
		}
		s = rest
	}

	return days*86400 + hours*3600 + minutes*60 + seconds, nil
}

// cutComponent splits s on designator and parses the number in front of it.
// A missing designator yields zero and leaves s untouched.
func cutComponent(s, designator string) (int, string, error) {
	switch strings.Count(s, designator) {
	case 0:
		return 0, s, nil
	case 1:
	default:
		return 0, s, fmt.Errorf("%w: repeated %q designator", ErrMalformedDuration, designator)
	}

	before, after, _ := strings.Cut(s, designator)
	if designator == "T" {
		return 0, after, nil
	}

	n, err := strconv.Atoi(before)
	if err != nil {
		return 0, s, fmt.Errorf("%w: %q before %q", ErrMalformedDuration, before, designator)
	}
	return n, after, nil
}

// FormatDuration renders a duration in seconds as a short string like
// "1h 1m". Zero means a live stream. Durations over a minute are snapped to
// the nearest whole minute.
func FormatDuration(seconds int) string {
	if seconds == 0 {
		return "Live"
	}

	if seconds > 60 {
		remainder := seconds % 60
		if remainder <= 30 {
			seconds -= remainder
		} else {
			seconds += 60 - remainder
		}
	}

	var parts []string
	for _, unit := range durationUnits {
		amount := seconds / unit.seconds
		seconds %= unit.seconds
		if amount > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", amount, unit.suffix))
		}
	}

	return strings.Join(parts, " ")
}
