package newscache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"SectorPulse/internal/domain"
	"SectorPulse/internal/ports"
)

const (
	defaultDuration   = time.Hour
	defaultDailyLimit = 100
)

// Config bounds cache freshness and the upstream daily call budget.
type Config struct {
	Duration   time.Duration
	DailyLimit int
}

// entry is the single slot: the last successfully fetched batch. It is
// overwritten whole on every successful fetch and never mutated in place.
type entry struct {
	articles  []domain.Article
	fetchedAt time.Time
}

// Cache serves the last fetched batch while fresh and guards the upstream
// provider behind a rolling daily quota. One mutex covers the whole
// check-staleness / fetch / update sequence, so at most one fetch is in
// flight per staleness event and quota is never double-counted: concurrent
// callers block until the winning fetch lands and then read its result.
type Cache struct {
	provider ports.NewsProvider
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	entry    *entry
	used     int
	resetDay time.Time
}

var _ ports.ArticleCache = (*Cache)(nil)

// New wires a cache in front of the provider. Zero config fields fall back to
// a one-hour freshness window and a 100-call daily budget.
func New(provider ports.NewsProvider, cfg Config, logger *slog.Logger) *Cache {
	if cfg.Duration <= 0 {
		cfg.Duration = defaultDuration
	}
	if cfg.DailyLimit <= 0 {
		cfg.DailyLimit = defaultDailyLimit
	}
	now := time.Now
	return &Cache{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		now:      now,
		resetDay: dateOf(now()),
	}
}

// GetData returns up to limit articles, serving the cached batch while it is
// fresh and fetching otherwise. A failed fetch falls back to the stale entry
// when one exists (degraded success, logged at warn level, no quota spent);
// with no entry at all the failure surfaces as ErrUpstreamUnavailable. A
// request refused on quota before any network activity surfaces as
// ErrQuotaExceeded unless the stale fallback can serve it. At most one
// upstream attempt is made per call; retry policy belongs to the caller.
func (c *Cache) GetData(ctx context.Context, limit int, forceRefresh bool) ([]domain.Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rolloverLocked()

	if !forceRefresh && c.freshLocked() {
		c.debug("serving cached articles", "age", c.now().Sub(c.entry.fetchedAt))
		return c.sliceLocked(limit), nil
	}

	if c.used >= c.cfg.DailyLimit {
		if c.entry != nil {
			c.warn("daily quota exhausted, serving stale cache", "used", c.used, "limit", c.cfg.DailyLimit)
			return c.sliceLocked(limit), nil
		}
		return nil, fmt.Errorf("%w: %d of %d daily calls used", domain.ErrQuotaExceeded, c.used, c.cfg.DailyLimit)
	}

	articles, err := c.provider.Fetch(ctx, limit)
	if err != nil {
		if c.entry != nil {
			c.warn("fetch failed, serving stale cache", "error", err)
			return c.sliceLocked(limit), nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	c.used++
	c.entry = &entry{articles: articles, fetchedAt: c.now()}
	c.info("fetched fresh articles", "provider", c.provider.Name(), "count", len(articles), "daily_used", c.used)

	return c.sliceLocked(limit), nil
}

// UsageInfo reports the quota snapshot. Its only side effect is the lazy
// calendar-date rollover check.
func (c *Cache) UsageInfo() domain.QuotaUsage {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rolloverLocked()

	usage := domain.QuotaUsage{
		Used:      c.used,
		Limit:     c.cfg.DailyLimit,
		Remaining: c.cfg.DailyLimit - c.used,
	}
	if c.entry != nil {
		fetchedAt := c.entry.fetchedAt
		usage.LastUpdate = &fetchedAt
		usage.Fresh = c.freshLocked()
	}
	return usage
}

// rolloverLocked resets the daily counter the first time "now" is observed on
// a later calendar date than the stored reset day.
func (c *Cache) rolloverLocked() {
	today := dateOf(c.now())
	if today.After(c.resetDay) {
		c.debug("daily quota rollover", "previous_used", c.used)
		c.used = 0
		c.resetDay = today
	}
}

func (c *Cache) freshLocked() bool {
	return c.entry != nil && c.now().Sub(c.entry.fetchedAt) < c.cfg.Duration
}

// sliceLocked copies up to limit articles from the slot. A limit beyond the
// cached batch size silently yields fewer articles; limit <= 0 yields the
// whole batch.
func (c *Cache) sliceLocked(limit int) []domain.Article {
	if c.entry == nil {
		return nil
	}
	articles := c.entry.articles
	if limit > 0 && limit < len(articles) {
		articles = articles[:limit]
	}
	return append([]domain.Article(nil), articles...)
}

func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func (c *Cache) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Cache) info(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

func (c *Cache) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
