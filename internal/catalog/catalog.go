// Package catalog holds the tradable instrument universe: equities and
// funds fetched from the upstream list endpoints, merged into one
// symbol-indexed snapshot that is replaced wholesale on refresh.
package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	apperrors "esg-screener/internal/errors"
	"esg-screener/internal/logging"
	"esg-screener/internal/models"
	"esg-screener/internal/quota"
	"esg-screener/internal/store"
	"esg-screener/internal/upstream"
	"esg-screener/pkg/utils"
)

const (
	cacheNamespace = "catalog"
	cacheKey       = "snapshot"

	// Below these counts the upstream response is suspicious: the real
	// universe is tens of thousands of equities and low thousands of funds.
	minExpectedEquities = 10000
	minExpectedFunds    = 1000
)

// Source lists the instrument universe.
type Source interface {
	StockList(ctx context.Context) ([]upstream.ListingPayload, error)
	ETFList(ctx context.Context) ([]upstream.ListingPayload, error)
}

// Snapshot is one immutable refresh result. The previous snapshot stays
// valid for in-flight readers until the pointer swap completes.
type Snapshot struct {
	Instruments []models.InstrumentRecord
	FetchedAt   time.Time

	bySymbol map[string]int
}

// GetBySymbol returns the record for symbol, case-insensitive, or nil.
func (s *Snapshot) GetBySymbol(symbol string) *models.InstrumentRecord {
	if s == nil {
		return nil
	}
	i, ok := s.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return nil
	}
	return &s.Instruments[i]
}

func newSnapshot(instruments []models.InstrumentRecord, fetchedAt time.Time) *Snapshot {
	snap := &Snapshot{
		Instruments: instruments,
		FetchedAt:   fetchedAt,
		bySymbol:    make(map[string]int, len(instruments)),
	}
	for i, rec := range instruments {
		snap.bySymbol[strings.ToUpper(rec.Symbol)] = i
	}
	return snap
}

// Observer is notified after each successful snapshot swap.
type Observer func(*Snapshot)

// Catalog fetches and serves the instrument universe.
type Catalog struct {
	source  Source
	tracker *quota.Tracker
	cache   store.Store
	logger  zerolog.Logger
	ttl     time.Duration

	mu       sync.RWMutex
	snap     *Snapshot
	lastErr  error
	inflight chan struct{}
	now      func() time.Time

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObsID int
}

// persistedSnapshot is the serialized blob written to the cache store.
type persistedSnapshot struct {
	Instruments []models.InstrumentRecord `json:"instruments"`
	FetchedAt   time.Time                 `json:"fetchedAt"`
}

// New creates a catalog. A persisted snapshot still inside its TTL is
// loaded immediately so search works before the first refresh completes.
func New(source Source, tracker *quota.Tracker, cache store.Store, ttl time.Duration, logger zerolog.Logger) *Catalog {
	c := &Catalog{
		source:    source,
		tracker:   tracker,
		cache:     cache,
		logger:    logger,
		ttl:       ttl,
		now:       time.Now,
		observers: make(map[int]Observer),
	}

	var persisted persistedSnapshot
	if store.GetJSON(context.Background(), cache, cacheNamespace, cacheKey, &persisted) && len(persisted.Instruments) > 0 {
		c.snap = newSnapshot(persisted.Instruments, persisted.FetchedAt)
		logger.Info().
			Int("instruments", len(persisted.Instruments)).
			Time("fetched_at", persisted.FetchedAt).
			Msg("Loaded persisted catalog snapshot")
	}

	return c
}

// Refresh fetches equities and funds concurrently and atomically swaps
// the held snapshot. It is idempotent under concurrency: a call that
// finds a refresh in flight waits for it instead of starting another.
// Fetch failure retains the previous snapshot; the error is readable via
// LastError, never returned to lookups.
func (c *Catalog) Refresh(ctx context.Context) {
	c.mu.Lock()
	if c.inflight != nil {
		done := c.inflight
		c.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
		}
		return
	}
	done := make(chan struct{})
	c.inflight = done
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inflight = nil
		c.mu.Unlock()
		close(done)
	}()

	c.doRefresh(ctx)
}

func (c *Catalog) doRefresh(ctx context.Context) {
	start := c.clock()
	logger := logging.WithOperation(c.logger, "catalog_refresh")

	if c.source == nil {
		logger.Warn().Msg("No catalog upstream configured, keeping current snapshot")
		c.setError(apperrors.ErrRefreshFailed)
		return
	}

	if !c.tracker.Admit(upstream.SourceCatalog) {
		logging.LogQuotaDenied(logger, upstream.SourceCatalog, c.tracker.SourceStats(upstream.SourceCatalog).Limit)
		c.setError(apperrors.ErrQuotaExceeded)
		return
	}

	var (
		equities, funds []upstream.ListingPayload
		eqErr, fundErr  error
	)

	retryCfg := utils.DefaultRetryConfig()
	var wg conc.WaitGroup
	wg.Go(func() {
		equities, eqErr = utils.RetryWithResult(ctx, retryCfg, func() ([]upstream.ListingPayload, error) {
			return c.source.StockList(ctx)
		})
	})
	wg.Go(func() {
		funds, fundErr = utils.RetryWithResult(ctx, retryCfg, func() ([]upstream.ListingPayload, error) {
			return c.source.ETFList(ctx)
		})
	})
	wg.Wait()

	if eqErr != nil || fundErr != nil {
		err := eqErr
		if err == nil {
			err = fundErr
		}
		logging.LogRefresh(logger, len(equities), len(funds), c.clock().Sub(start), err)
		c.setError(apperrors.Wrap(err, "catalog refresh"))
		return
	}

	if len(equities) < minExpectedEquities {
		logger.Warn().
			Int("count", len(equities)).
			Int("expected_min", minExpectedEquities).
			Msg("Equity universe smaller than expected")
	}
	if len(funds) < minExpectedFunds {
		logger.Warn().
			Int("count", len(funds)).
			Int("expected_min", minExpectedFunds).
			Msg("Fund universe smaller than expected")
	}

	instruments := merge(equities, funds)
	fetchedAt := c.clock()
	snap := newSnapshot(instruments, fetchedAt)

	c.mu.Lock()
	c.snap = snap
	c.lastErr = nil
	c.mu.Unlock()

	store.SetJSON(context.Background(), c.cache, cacheNamespace, cacheKey, persistedSnapshot{
		Instruments: instruments,
		FetchedAt:   fetchedAt,
	}, c.ttl)

	logging.LogRefresh(logger, len(equities), len(funds), c.clock().Sub(start), nil)
	c.notify(snap)
}

// merge folds the two universes into one collection, equities first.
// A symbol present in both keeps its equity row.
func merge(equities, funds []upstream.ListingPayload) []models.InstrumentRecord {
	out := make([]models.InstrumentRecord, 0, len(equities)+len(funds))
	seen := make(map[string]struct{}, len(equities))

	for _, p := range equities {
		sym := strings.ToUpper(p.Symbol)
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, models.InstrumentRecord{
			Symbol:        p.Symbol,
			Name:          p.Name,
			Price:         p.Price,
			Exchange:      p.Exchange,
			ExchangeShort: p.ExchangeShort,
			MarketCap:     p.MarketCap,
			Kind:          models.KindEquity,
		})
	}
	for _, p := range funds {
		sym := strings.ToUpper(p.Symbol)
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, models.InstrumentRecord{
			Symbol:        p.Symbol,
			Name:          p.Name,
			Price:         p.Price,
			Exchange:      p.Exchange,
			ExchangeShort: p.ExchangeShort,
			MarketCap:     p.MarketCap,
			Kind:          models.KindFund,
		})
	}
	return out
}

// Snapshot returns the current snapshot, possibly nil before first load.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Instruments returns the current collection, or nil before first load.
func (c *Catalog) Instruments() []models.InstrumentRecord {
	snap := c.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.Instruments
}

// GetBySymbol is a case-insensitive O(1) lookup over the current snapshot.
func (c *Catalog) GetBySymbol(symbol string) *models.InstrumentRecord {
	return c.Snapshot().GetBySymbol(symbol)
}

// Stale reports whether the collection is past its TTL (or missing).
// Callers serve stale data while triggering a background Refresh.
func (c *Catalog) Stale() bool {
	snap := c.Snapshot()
	if snap == nil {
		return true
	}
	return c.clock().Sub(snap.FetchedAt) >= c.ttl
}

// LastError returns the failure flag from the most recent refresh
// attempt, nil after a successful one.
func (c *Catalog) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Subscribe registers an observer called after each successful snapshot
// swap. The returned function unregisters it.
func (c *Catalog) Subscribe(obs Observer) func() {
	c.obsMu.Lock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = obs
	c.obsMu.Unlock()

	return func() {
		c.obsMu.Lock()
		delete(c.observers, id)
		c.obsMu.Unlock()
	}
}

func (c *Catalog) notify(snap *Snapshot) {
	c.obsMu.Lock()
	obs := make([]Observer, 0, len(c.observers))
	for _, o := range c.observers {
		obs = append(obs, o)
	}
	c.obsMu.Unlock()

	for _, o := range obs {
		o(snap)
	}
}

func (c *Catalog) setError(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

func (c *Catalog) clock() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now()
}

// SetClock overrides the time source. Test hook.
func (c *Catalog) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
