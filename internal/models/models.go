// Package models provides domain models for the screening application.
package models

import (
	"time"
)

// InstrumentKind distinguishes equities from exchange-traded funds.
type InstrumentKind string

const (
	KindEquity InstrumentKind = "EQUITY"
	KindFund   InstrumentKind = "FUND"
)

// SourceTier identifies which branch of the resolution chain produced a record.
type SourceTier string

const (
	TierLive      SourceTier = "live"
	TierCurated   SourceTier = "curated"
	TierSynthetic SourceTier = "synthetic"
)

// Severity grades a controversy signal.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Category is the ESG domain a controversy falls under.
type Category string

const (
	CategoryEnvironmental Category = "environmental"
	CategorySocial        Category = "social"
	CategoryGovernance    Category = "governance"
	CategoryGeneral       Category = "general"
)

// InstrumentRecord is one tradable instrument from the catalog universe.
// Records are immutable for the lifetime of a refresh cycle; the whole
// collection is replaced on the next refresh.
type InstrumentRecord struct {
	Symbol        string         `json:"symbol"`
	Name          string         `json:"name"`
	Price         float64        `json:"price"`
	Exchange      string         `json:"exchange"`
	ExchangeShort string         `json:"exchangeShortName"`
	Kind          InstrumentKind `json:"kind"`
	MarketCap     float64        `json:"marketCap,omitempty"`
}

// ESGScores holds the four sustainability dimensions, each on [0,10].
type ESGScores struct {
	Overall       float64 `json:"overall"`
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
}

// InRange reports whether every dimension sits within [0,10].
func (s ESGScores) InRange() bool {
	for _, v := range []float64{s.Overall, s.Environmental, s.Social, s.Governance} {
		if v < 0 || v > 10 {
			return false
		}
	}
	return true
}

// CuratedDetail is the hand-maintained detail block available only for
// symbols present in the bundled curated dataset.
type CuratedDetail struct {
	Summary       string             `json:"summary,omitempty"`
	Controversies []string           `json:"controversies,omitempty"`
	ImpactMetrics map[string]float64 `json:"impactMetrics,omitempty"`
}

// UnifiedESGRecord is the merged result of one resolution. Instances are
// never mutated in place; a cache hit returns the stored value unchanged.
type UnifiedESGRecord struct {
	Symbol     string         `json:"symbol"`
	Name       string         `json:"name"`
	Sector     string         `json:"sector,omitempty"`
	Scores     ESGScores      `json:"scores"`
	SourceTier SourceTier     `json:"sourceTier"`
	ResolvedAt time.Time      `json:"resolvedAt"`
	Detail     *CuratedDetail `json:"detail,omitempty"`
}

// ControversyAnalysis is the stateless classification of one news text.
type ControversyAnalysis struct {
	IsControversial bool     `json:"isControversial"`
	Severity        Severity `json:"severity"`
	Category        Category `json:"category"`
	Confidence      float64  `json:"confidence"`
	MatchedKeywords []string `json:"matchedKeywords"`
	Summary         string   `json:"summary"`
}

// NewsSource identifies the publisher of an article.
type NewsSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NewsArticle is one article from the upstream news search.
type NewsArticle struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	URL         string     `json:"url"`
	Image       string     `json:"image"`
	PublishedAt time.Time  `json:"publishedAt"`
	Source      NewsSource `json:"source"`
}
