package youtube

import (
	"errors"
	"testing"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		expected int
	}{
		{"Full time format", "PT1H2M10S", 3730},
		{"Days and hours", "P3DT4H", 273600},
		{"Zero seconds", "PT0S", 0},
		{"Zero days (live)", "P0D", 0},
		{"Seconds only", "PT45S", 45},
		{"Minutes only", "PT5M", 300},
		{"Hours and seconds", "PT2H30S", 7230},
		{"Days only", "P1D", 86400},
		{"Everything", "P1DT1H1M1S", 90061},
		{"Empty", "", 0},
		{"Designators only", "PT", 0},
		{"Unknown trailing text ignored", "PT1S5W", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseISODuration(tt.duration)
			if err != nil {
				t.Fatalf("ParseISODuration(%q) unexpected error: %v", tt.duration, err)
			}
			if result != tt.expected {
				t.Errorf("ParseISODuration(%q) = %d, want %d", tt.duration, result, tt.expected)
			}
		})
	}
}

func TestParseISODurationMalformed(t *testing.T) {
	tests := []struct {
		name     string
		duration string
	}{
		{"Non-numeric minutes", "PTxxM"},
		{"Fractional seconds", "PT1.5S"},
		{"Empty component", "PTS"},
		{"Repeated designator", "PT1H2H"},
		{"Repeated time designator", "PT1HT2M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseISODuration(tt.duration)
			if !errors.Is(err, ErrMalformedDuration) {
				t.Errorf("ParseISODuration(%q) error = %v, want ErrMalformedDuration", tt.duration, err)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int
		expected string
	}{
		{"Live", 0, "Live"},
		{"Under a minute is not rounded", 45, "45s"},
		{"Short clip", 25, "25s"},
		{"Exactly a minute", 60, "1m"},
		{"Rounds down at 30", 90, "1m"},
		{"Rounds up past 30", 91, "2m"},
		{"Hour and minute", 3661, "1h 1m"},
		{"Five minutes", 300, "5m"},
		{"Rounds up into next hour", 3599, "1h"},
		{"Day", 86400, "1d"},
		{"Week and day", 8 * 86400, "1w 1d"},
		{"Mixed", 273600, "3d 4h"},
		{"Negative yields empty", -5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatDuration(tt.seconds)
			if result != tt.expected {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, result, tt.expected)
			}
		})
	}
}
