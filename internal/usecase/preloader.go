package usecase

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fxreport/internal/domain"
	"github.com/iho/fxreport/internal/infrastructure/metrics"
	"github.com/iho/fxreport/internal/query"
)

// DefaultThrottleWindow bounds how often preload cycles may start
// under rapid page navigation.
const DefaultThrottleWindow = 3 * time.Second

// PreloadConfig holds Preloader tuning.
type PreloadConfig struct {
	ThrottleWindow time.Duration
}

// Preloader fetches per-account transaction detail in the background
// and publishes it into the detail cache. Each cycle deduplicates
// against the cache, batches the missing accounts into one query, and
// is throttled so rapid triggers cannot build a backlog: a trigger
// inside the window or while a cycle is in flight is skipped, never
// queued.
//
// The Preloader also owns the active channel selection. Changing it
// invalidates the cache and bumps a generation counter; a cycle
// captures the generation it was issued under and discards its result
// on publish if the selection has moved on.
type Preloader struct {
	builder *query.DetailBuilder
	gateway Gateway
	cache   DetailCache
	clock   Clock
	idGen   IDGenerator
	logger  zerolog.Logger
	metrics *metrics.Metrics
	window  time.Duration

	mu             sync.Mutex
	selection      []int
	generation     uint64
	lastCycleStart time.Time
	inFlight       bool
}

// NewPreloader creates a new Preloader. m may be nil.
func NewPreloader(
	builder *query.DetailBuilder,
	gateway Gateway,
	cache DetailCache,
	clock Clock,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
	cfg PreloadConfig,
) *Preloader {
	window := cfg.ThrottleWindow
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	return &Preloader{
		builder: builder,
		gateway: gateway,
		cache:   cache,
		clock:   clock,
		idGen:   idGen,
		logger:  logger,
		metrics: m,
		window:  window,
	}
}

// SetSelection records the active channel filter. A changed selection
// invalidates the whole cache before any subsequent put and makes any
// in-flight cycle's result stale.
func (p *Preloader) SetSelection(ctx context.Context, channels []int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if slices.Equal(p.selection, channels) {
		return nil
	}

	p.selection = slices.Clone(channels)
	p.generation++

	// Holding the mutex here serializes the invalidation against any
	// cycle publish, so a straggling response from the old selection
	// is discarded instead of written into the fresh cache.
	return p.cache.InvalidateAll(ctx)
}

// Selection returns the active channel filter.
func (p *Preloader) Selection() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.selection)
}

// Preload runs one preload cycle for the accounts visible on the
// current page. It is a background optimization: failures are logged,
// never surfaced, and the affected accounts stay eligible for the next
// natural trigger.
func (p *Preloader) Preload(ctx context.Context, visible []string) {
	missing := p.missing(ctx, visible)
	if len(missing) == 0 {
		return
	}

	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		p.cycleOutcome("skipped_in_flight")
		return
	}
	now := p.clock.Now()
	if !p.lastCycleStart.IsZero() && now.Sub(p.lastCycleStart) < p.window {
		p.mu.Unlock()
		p.cycleOutcome("throttled")
		return
	}
	p.inFlight = true
	p.lastCycleStart = now
	gen := p.generation
	selection := slices.Clone(p.selection)
	p.mu.Unlock()

	logger := p.logger.With().Str("cycle_id", p.idGen.Generate()).Logger()
	logger.Debug().Strs("accounts", missing).Msg("preload cycle started")

	entries, err := p.fetch(ctx, missing, selection)
	if err != nil {
		logger.Warn().Err(err).Msg("preload cycle failed")
		p.endCycle()
		p.cycleOutcome("failed")
		return
	}

	p.publish(ctx, logger, gen, entries)
}

// GetDetail reads the cached detail rows for an account. Absent means
// the caller should fall through to RefreshDetail.
func (p *Preloader) GetDetail(ctx context.Context, accountID string) ([]domain.DetailRow, bool, error) {
	return p.cache.Get(ctx, accountID)
}

// RefreshDetail fetches an account's detail on demand, bypassing both
// the cache read and the throttle window, and writes through the
// cache. User-initiated, so it is always allowed.
func (p *Preloader) RefreshDetail(ctx context.Context, accountID string) ([]domain.DetailRow, error) {
	p.mu.Lock()
	gen := p.generation
	selection := slices.Clone(p.selection)
	p.mu.Unlock()

	entries, err := p.fetch(ctx, []string{accountID}, selection)
	if err != nil {
		return nil, err
	}

	rows := entries[accountID]

	p.mu.Lock()
	if p.generation == gen {
		if err := p.cache.Put(ctx, accountID, rows); err != nil {
			p.mu.Unlock()
			return nil, err
		}
	}
	p.mu.Unlock()

	return rows, nil
}

// missing returns the visible accounts not yet present in the cache,
// deduplicated, in input order. Cache read errors count as missing.
func (p *Preloader) missing(ctx context.Context, visible []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(visible))
	for _, id := range visible {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		_, ok, err := p.cache.Get(ctx, id)
		if err != nil {
			p.logger.Warn().Err(err).Str("account_id", id).Msg("detail cache read failed")
		}
		if !ok || err != nil {
			out = append(out, id)
		}
	}
	return out
}

// fetch issues one batched detail query and groups the rows by owning
// account. The full row set is collected before anything is published.
func (p *Preloader) fetch(ctx context.Context, accountIDs []string, selection []int) (map[string][]domain.DetailRow, error) {
	queryText, err := p.builder.Build(query.DetailParams{
		AccountIDs: accountIDs,
		Channels:   selection,
	})
	if err != nil {
		return nil, err
	}

	rows, err := p.gateway.Execute(ctx, queryText)
	if err != nil {
		return nil, err
	}

	return groupDetailRows(accountIDs, rows), nil
}

// publish applies a cycle's entries atomically relative to readers,
// dropping the result if the selection generation has moved on.
func (p *Preloader) publish(ctx context.Context, logger zerolog.Logger, gen uint64, entries map[string][]domain.DetailRow) {
	p.mu.Lock()
	defer func() {
		p.inFlight = false
		p.mu.Unlock()
	}()

	if p.generation != gen {
		logger.Debug().Msg("discarding stale preload result after selection change")
		p.cycleOutcome("stale")
		return
	}

	if err := p.cache.PutBatch(ctx, entries); err != nil {
		logger.Warn().Err(err).Msg("preload publish failed")
		p.cycleOutcome("failed")
		return
	}

	logger.Debug().Int("accounts", len(entries)).Msg("preload cycle completed")
	if p.metrics != nil {
		p.metrics.PreloadBatchSize.Observe(float64(len(entries)))
	}
	p.cycleOutcome("completed")
}

func (p *Preloader) endCycle() {
	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()
}

func (p *Preloader) cycleOutcome(outcome string) {
	if p.metrics != nil {
		p.metrics.PreloadCycles.WithLabelValues(outcome).Inc()
	}
}
