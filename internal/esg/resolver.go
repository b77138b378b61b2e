// Package esg resolves a unified sustainability record for any symbol
// through a tiered fallback chain: cache, live upstream (quota gated),
// curated dataset, deterministic synthetic generator. The synthetic tier
// never fails, so resolution only comes back empty for a structurally
// invalid symbol.
package esg

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"esg-screener/internal/logging"
	"esg-screener/internal/models"
	"esg-screener/internal/quota"
	"esg-screener/internal/store"
	"esg-screener/internal/upstream"
	"esg-screener/pkg/utils"
)

const cacheNamespace = "esg"

// ScoreSource is the live upstream ESG endpoint.
type ScoreSource interface {
	ESGScores(ctx context.Context, symbol string) (*upstream.ESGPayload, error)
}

// InstrumentLookup supplies display names for symbols the curated
// dataset does not know. Usually the catalog.
type InstrumentLookup interface {
	GetBySymbol(symbol string) *models.InstrumentRecord
}

// Config holds resolver configuration.
type Config struct {
	// LiveTTL is the cache TTL for live and curated records.
	LiveTTL time.Duration
	// SyntheticTTL is the shorter cache TTL for synthetic records.
	SyntheticTTL time.Duration
	// MaxConcurrent bounds ResolveMany fan-out.
	MaxConcurrent int
}

// DefaultConfig returns the default resolver configuration.
func DefaultConfig() Config {
	return Config{
		LiveTTL:       15 * time.Minute,
		SyntheticTTL:  5 * time.Minute,
		MaxConcurrent: 8,
	}
}

// Resolver runs the resolution chain.
type Resolver struct {
	cache   store.Store
	tracker *quota.Tracker
	source  ScoreSource
	curated *Dataset
	lookup  InstrumentLookup
	logger  zerolog.Logger
	cfg     Config
	now     func() time.Time
}

// NewResolver creates a resolver. source and lookup may be nil: without
// a live source the chain starts at the curated tier, and without a
// lookup synthetic records fall back to the symbol as display name.
func NewResolver(cache store.Store, tracker *quota.Tracker, source ScoreSource, curated *Dataset, lookup InstrumentLookup, cfg Config, logger zerolog.Logger) *Resolver {
	if cfg.LiveTTL <= 0 {
		cfg.LiveTTL = DefaultConfig().LiveTTL
	}
	if cfg.SyntheticTTL <= 0 {
		cfg.SyntheticTTL = DefaultConfig().SyntheticTTL
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultConfig().MaxConcurrent
	}
	return &Resolver{
		cache:   cache,
		tracker: tracker,
		source:  source,
		curated: curated,
		lookup:  lookup,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Resolve returns the unified record for symbol, or nil only when the
// symbol is structurally invalid. Tier failures fall through silently;
// no error ever reaches the caller.
func (r *Resolver) Resolve(ctx context.Context, symbol string) *models.UnifiedESGRecord {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil
	}

	// Tier 1: cache.
	var cached models.UnifiedESGRecord
	if store.GetJSON(ctx, r.cache, cacheNamespace, symbol, &cached) {
		logging.LogResolution(r.logger, symbol, string(cached.SourceTier), cached.Scores.Overall, true)
		return &cached
	}

	// Tier 2: live upstream, only when the quota admits the call.
	if rec := r.resolveLive(ctx, symbol); rec != nil {
		return rec
	}

	// Tier 3: curated dataset.
	if rec := r.resolveCurated(ctx, symbol); rec != nil {
		return rec
	}

	// Tier 4: synthetic. Never fails, never skipped.
	return r.resolveSynthetic(ctx, symbol)
}

func (r *Resolver) resolveLive(ctx context.Context, symbol string) *models.UnifiedESGRecord {
	if r.source == nil {
		return nil
	}
	if !r.tracker.Admit(upstream.SourceESG) {
		logging.LogQuotaDenied(r.logger, upstream.SourceESG, r.tracker.SourceStats(upstream.SourceESG).Limit)
		return nil
	}

	payload, err := r.source.ESGScores(ctx, symbol)
	if err != nil {
		symLogger := logging.WithSymbol(r.logger, symbol)
		symLogger.Debug().Err(err).Msg("Live ESG tier failed, falling through")
		return nil
	}
	if payload == nil {
		return nil
	}

	rec := &models.UnifiedESGRecord{
		Symbol: symbol,
		Name:   symbol,
		Scores: models.ESGScores{
			Overall:       utils.Clamp(payload.ESGScore, 0, 10),
			Environmental: utils.Clamp(payload.EnvironmentScore, 0, 10),
			Social:        utils.Clamp(payload.SocialScore, 0, 10),
			Governance:    utils.Clamp(payload.GovernanceScore, 0, 10),
		},
		SourceTier: models.TierLive,
		ResolvedAt: r.now(),
	}

	// Live scores carry no metadata; borrow it from the curated dataset
	// or the catalog when either knows the symbol.
	if profile, ok := r.curatedProfile(symbol); ok {
		rec.Name = profile.Name
		rec.Sector = profile.Sector
		detail := profile.Detail
		rec.Detail = &detail
	} else if inst := r.instrument(symbol); inst != nil {
		rec.Name = inst.Name
	}

	store.SetJSON(ctx, r.cache, cacheNamespace, symbol, rec, r.cfg.LiveTTL)
	logging.LogResolution(r.logger, symbol, string(models.TierLive), rec.Scores.Overall, false)
	return rec
}

func (r *Resolver) resolveCurated(ctx context.Context, symbol string) *models.UnifiedESGRecord {
	profile, ok := r.curatedProfile(symbol)
	if !ok {
		return nil
	}

	detail := profile.Detail
	rec := &models.UnifiedESGRecord{
		Symbol:     symbol,
		Name:       profile.Name,
		Sector:     profile.Sector,
		Scores:     profile.Scores,
		SourceTier: models.TierCurated,
		ResolvedAt: r.now(),
		Detail:     &detail,
	}

	store.SetJSON(ctx, r.cache, cacheNamespace, symbol, rec, r.cfg.LiveTTL)
	logging.LogResolution(r.logger, symbol, string(models.TierCurated), rec.Scores.Overall, false)
	return rec
}

func (r *Resolver) resolveSynthetic(ctx context.Context, symbol string) *models.UnifiedESGRecord {
	name := symbol
	if inst := r.instrument(symbol); inst != nil {
		name = inst.Name
	}

	rec := &models.UnifiedESGRecord{
		Symbol:     symbol,
		Name:       name,
		Scores:     SyntheticScores(symbol),
		SourceTier: models.TierSynthetic,
		ResolvedAt: r.now(),
	}

	store.SetJSON(ctx, r.cache, cacheNamespace, symbol, rec, r.cfg.SyntheticTTL)
	logging.LogResolution(r.logger, symbol, string(models.TierSynthetic), rec.Scores.Overall, false)
	return rec
}

// ResolveMany fans resolution out concurrently. A symbol that resolves
// to nothing is simply omitted; one branch never blocks the others.
func (r *Resolver) ResolveMany(ctx context.Context, symbols []string) []*models.UnifiedESGRecord {
	results := make([]*models.UnifiedESGRecord, len(symbols))

	p := pool.New().WithMaxGoroutines(r.cfg.MaxConcurrent)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		p.Go(func() {
			results[i] = r.Resolve(ctx, symbol)
		})
	}
	p.Wait()

	out := make([]*models.UnifiedESGRecord, 0, len(symbols))
	for _, rec := range results {
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out
}

// ClearCache drops every cached ESG record.
func (r *Resolver) ClearCache(ctx context.Context) {
	r.cache.ClearAll(ctx, cacheNamespace)
}

func (r *Resolver) curatedProfile(symbol string) (*Profile, bool) {
	if r.curated == nil {
		return nil, false
	}
	return r.curated.Get(symbol)
}

func (r *Resolver) instrument(symbol string) *models.InstrumentRecord {
	if r.lookup == nil {
		return nil
	}
	return r.lookup.GetBySymbol(symbol)
}

// SetClock overrides the time source. Test hook.
func (r *Resolver) SetClock(now func() time.Time) {
	r.now = now
}
