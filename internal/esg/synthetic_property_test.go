package esg

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSyntheticScoreProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("scores stay within the 0-10 scale", prop.ForAll(
		func(symbol string) bool {
			scores := SyntheticScores(symbol)
			return scores.InRange()
		},
		gen.AlphaString(),
	))

	properties.Property("same symbol always hashes to the same scores", prop.ForAll(
		func(symbol string) bool {
			return SyntheticScores(symbol) == SyntheticScores(symbol)
		},
		gen.AlphaString(),
	))

	properties.Property("case of the symbol does not matter", prop.ForAll(
		func(symbol string) bool {
			upper := SyntheticScores(symbol)
			lower := SyntheticScores(lowerASCII(symbol))
			return upper == lower
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
