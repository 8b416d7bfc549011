package currency

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pizofreude/data-career-navigator/common/cache"
	"github.com/pizofreude/data-career-navigator/internal/errors"

	"go.uber.org/zap"
)

const cacheKeyPrefix = "currency:rates:"

var cacheKeyNamespace = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

// Loader reads the exchange-rate snapshot for a run. The file is always the
// source of truth; the cache only keeps the last good snapshot of each file
// so a run can proceed when that file is briefly unreadable.
type Loader struct {
	cache  cache.Cache
	logger *zap.Logger
	ttl    time.Duration
}

func NewLoader(c cache.Cache, logger *zap.Logger, ttl time.Duration) *Loader {
	return &Loader{
		cache:  c,
		logger: logger,
		ttl:    ttl,
	}
}

// CacheKey names the cached snapshot of the rates file at path.
func CacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return cacheKeyPrefix + uuid.NewSHA1(cacheKeyNamespace, []byte(path)).String()
}

// Load never fails the run: an unreadable or malformed file falls back to
// that file's cached snapshot, then to the USD-only table, which leaves
// non-USD salaries as lookup misses.
func (l *Loader) Load(ctx context.Context, path string) *Table {
	key := CacheKey(path)

	table, err := ReadFile(path)
	if err != nil {
		if cached, ok := l.cached(ctx, key); ok {
			l.logger.Warn("exchange rates unreadable, using cached snapshot",
				zap.String("path", path),
				zap.Int("currencies", cached.Len()),
				zap.Error(err))
			return cached
		}
		l.logger.Warn("exchange rates unavailable, falling back to USD only",
			zap.String("path", path),
			zap.Error(err))
		return USDOnly()
	}
	if skipped := table.Skipped(); len(skipped) > 0 {
		l.logger.Warn("ignored invalid exchange rates", zap.Strings("codes", skipped))
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, key, table, l.ttl); err != nil {
			l.logger.Warn("exchange rate cache write failed", zap.Error(err))
		}
	}

	l.logger.Info("loaded exchange rates",
		zap.String("path", path),
		zap.Int("currencies", table.Len()))
	return table
}

func (l *Loader) cached(ctx context.Context, key string) (*Table, bool) {
	if l.cache == nil {
		return nil, false
	}
	var cached Table
	err := l.cache.Get(ctx, key, &cached)
	if err != nil {
		if !stderrors.Is(err, cache.ErrNotFound) {
			l.logger.Warn("exchange rate cache read failed", zap.Error(err))
		}
		return nil, false
	}
	return &cached, true
}

// ReadFile parses a JSON object of currency code to rate.
func ReadFile(path string) (*Table, error) {
	if path == "" {
		return nil, errors.InvalidInput("exchange rate path is empty", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Unavailable("reading exchange rates", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Table, error) {
	var rates map[string]float64
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, errors.InvalidInput("decoding exchange rates", fmt.Errorf("json: %w", err))
	}
	return NewTable(rates), nil
}
