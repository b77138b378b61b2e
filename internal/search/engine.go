// Package search implements the mainstream filter and relevance ranking
// over the instrument catalog. The engine itself is pure and synchronous;
// timing concerns live in the Debouncer wrapper.
package search

import (
	"sort"
	"strings"

	"esg-screener/internal/models"
)

// Lister supplies the instrument collection to rank over.
type Lister interface {
	Instruments() []models.InstrumentRecord
}

// Config holds engine configuration.
type Config struct {
	// MinPrice is the last-price floor; records below it never rank.
	MinPrice float64
	// DefaultLimit bounds result length when the caller passes limit <= 0.
	DefaultLimit int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		MinPrice:     1.0,
		DefaultLimit: 20,
	}
}

// Engine ranks catalog instruments against a query.
type Engine struct {
	source Lister
	cfg    Config
}

// NewEngine creates a search engine over source.
func NewEngine(source Lister, cfg Config) *Engine {
	if cfg.MinPrice <= 0 {
		cfg.MinPrice = DefaultConfig().MinPrice
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultConfig().DefaultLimit
	}
	return &Engine{source: source, cfg: cfg}
}

type scored struct {
	rec   models.InstrumentRecord
	score float64
}

// Search returns mainstream instruments ranked by relevance to query,
// truncated to limit. An empty or whitespace-only query matches nothing.
func (e *Engine) Search(query string, limit int) []models.InstrumentRecord {
	query = strings.ToUpper(strings.TrimSpace(query))
	if query == "" {
		return []models.InstrumentRecord{}
	}
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}

	var candidates []scored
	for _, rec := range e.source.Instruments() {
		if !passesFilters(rec, e.cfg.MinPrice) {
			continue
		}
		if !matchesQuery(rec, query) {
			continue
		}
		candidates = append(candidates, scored{rec: rec, score: scoreRecord(rec, query)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].rec.Symbol < candidates[j].rec.Symbol
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]models.InstrumentRecord, len(candidates))
	for i, c := range candidates {
		out[i] = c.rec
	}
	return out
}

// matchesQuery keeps any record whose symbol or name contains the query.
// Ranking then separates exact, prefix and substring hits.
func matchesQuery(rec models.InstrumentRecord, query string) bool {
	return strings.Contains(strings.ToUpper(rec.Symbol), query) ||
		strings.Contains(strings.ToUpper(rec.Name), query)
}
