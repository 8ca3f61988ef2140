package config

import (
	"testing"
	"time"
)

func TestParseISO8601Duration(t *testing.T) {
	cases := []struct {
		value    string
		expected time.Duration
	}{
		{"P7D", 7 * 24 * time.Hour},
		{"PT12H", 12 * time.Hour},
		{"P1W", 7 * 24 * time.Hour},
		{"P1DT6H30M", 30*time.Hour + 30*time.Minute},
		{"PT90S", 90 * time.Second},
	}

	for _, tc := range cases {
		got, err := parseISO8601Duration(tc.value)
		if err != nil {
			t.Errorf("parseISO8601Duration(%q): unexpected error %v", tc.value, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("parseISO8601Duration(%q): expected %v, got %v", tc.value, tc.expected, got)
		}
	}
}

func TestParseISO8601DurationRejectsCalendarComponents(t *testing.T) {
	for _, value := range []string{"P1Y", "P1M", "P1Y2M"} {
		if _, err := parseISO8601Duration(value); err == nil {
			t.Errorf("Expected %q to be rejected", value)
		}
	}
}

func TestParseISO8601DurationRejectsGarbage(t *testing.T) {
	if _, err := parseISO8601Duration("7 days"); err == nil {
		t.Error("Expected a non ISO 8601 value to be rejected")
	}
}
