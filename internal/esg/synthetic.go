package esg

import (
	"hash/fnv"
	"strings"

	"esg-screener/internal/models"
)

// SyntheticScores derives the four dimensions purely from the symbol.
// Each dimension hashes an independently salted copy of the symbol, so
// E/S/G/overall differ from each other while every call (and every
// process restart) yields identical values for the same symbol.
func SyntheticScores(symbol string) models.ESGScores {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	return models.ESGScores{
		Overall:       syntheticDimension(symbol, "overall"),
		Environmental: syntheticDimension(symbol, "environmental"),
		Social:        syntheticDimension(symbol, "social"),
		Governance:    syntheticDimension(symbol, "governance"),
	}
}

// syntheticDimension maps an FNV-1a hash of symbol:dimension onto [0,10]
// with one decimal place.
func syntheticDimension(symbol, dimension string) float64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	h.Write([]byte{':'})
	h.Write([]byte(dimension))
	// 101 buckets give the full 0.0..10.0 range at one-decimal granularity.
	return float64(h.Sum64()%101) / 10.0
}
