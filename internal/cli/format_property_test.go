package cli

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("TruncateString never exceeds the limit", prop.ForAll(
		func(s string, maxLen int) bool {
			return len(TruncateString(s, maxLen)) <= maxLen || len(s) <= maxLen
		},
		gen.AlphaString(),
		gen.IntRange(1, 64),
	))

	properties.Property("TruncateString is identity for short strings", prop.ForAll(
		func(s string) bool {
			return TruncateString(s, len(s)) == s
		},
		gen.AlphaString(),
	))

	properties.Property("FormatDuration never yields an empty string", prop.ForAll(
		func(seconds int64) bool {
			return FormatDuration(time.Duration(seconds)*time.Second) != ""
		},
		gen.Int64Range(0, 100*24*3600),
	))

	properties.TestingRun(t)
}

func TestFormatScoreExamples(t *testing.T) {
	cases := []struct {
		score    float64
		expected string
	}{
		{0, "0.0"},
		{7.35, "7.3"},
		{10, "10.0"},
	}
	for _, tc := range cases {
		if got := FormatScore(tc.score); got != tc.expected {
			t.Errorf("FormatScore(%v) = %s, want %s", tc.score, got, tc.expected)
		}
	}
}

func TestFormatConfidenceExamples(t *testing.T) {
	cases := []struct {
		conf     float64
		expected string
	}{
		{0, "0%"},
		{0.5, "50%"},
		{1, "100%"},
	}
	for _, tc := range cases {
		if got := FormatConfidence(tc.conf); got != tc.expected {
			t.Errorf("FormatConfidence(%v) = %s, want %s", tc.conf, got, tc.expected)
		}
	}
}

func TestFormatDurationExamples(t *testing.T) {
	cases := []struct {
		d        time.Duration
		expected string
	}{
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{3 * time.Hour, "3h 0m"},
		{26 * time.Hour, "1d 2h"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.d); got != tc.expected {
			t.Errorf("FormatDuration(%v) = %s, want %s", tc.d, got, tc.expected)
		}
	}
}
