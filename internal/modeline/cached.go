package modeline

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
)

// currentCacheVersion defines the version of the cached calculation format
const currentCacheVersion = 1

// cacheTTL bounds how long a cached calculation is trusted
const cacheTTL = 7 * 24 * time.Hour

// CachedCalculator serves calculations from a cache store and sends only the misses to
// the wrapped calculator, still in one call. Failed calculations are never cached.
type CachedCalculator struct {
	next   contract.ModelineCalculator
	store  contract.CacheStore
	source string // identifies the wrapped calculator in cache keys
	now    func() time.Time
}

var _ contract.ModelineCalculator = &CachedCalculator{} // Compile-time check

// NewCachedCalculator wraps next with the given store. source names the wrapped
// calculator, usually its command line, so that switching calculators starts afresh.
func NewCachedCalculator(next contract.ModelineCalculator, store contract.CacheStore, source string) *CachedCalculator {
	return &CachedCalculator{next: next, store: store, source: source, now: time.Now}
}

// CalcModelineBulk implements the ModelineCalculator interface.
func (c *CachedCalculator) CalcModelineBulk(ctx context.Context, cfg schema.ModelineConfig, games []*schema.Game) (map[string]schema.ModelineCalculation, error) {
	out := make(map[string]schema.ModelineCalculation, len(games))
	keys := make(map[string]string, len(games))
	var misses []*schema.Game
	for _, g := range games {
		key := generateCacheKey(cfg, c.source, g)
		keys[g.Name] = key
		if calc, ok := c.checkCacheHit(key); ok {
			out[g.Name] = calc
			continue
		}
		misses = append(misses, g)
	}
	slog.Debug("modeline cache lookup", "preset", cfg.Preset, "hits", len(out), "misses", len(misses))

	if len(misses) == 0 {
		return out, nil
	}
	computed, err := c.next.CalcModelineBulk(ctx, cfg, misses)
	if err != nil {
		return nil, err
	}
	for _, g := range misses {
		calc, ok := computed[g.Name]
		if !ok {
			continue
		}
		out[g.Name] = calc
		if !calc.Success {
			continue
		}
		if data, err := json.Marshal(calc); err == nil {
			if err := c.store.Set(keys[g.Name], data, currentCacheVersion, c.now().Unix()); err != nil {
				slog.Debug("modeline cache write failed", "game", g.Name, "error", err)
			}
		}
	}
	return out, nil
}

// checkCacheHit returns a cached calculation when it is current and fresh.
func (c *CachedCalculator) checkCacheHit(key string) (schema.ModelineCalculation, bool) {
	var calc schema.ModelineCalculation
	data, version, ts, err := c.store.Get(key)
	if err != nil || version != currentCacheVersion {
		return calc, false
	}
	if c.now().Sub(time.Unix(ts, 0)) > cacheTTL {
		return calc, false
	}
	if err := json.Unmarshal(data, &calc); err != nil {
		return calc, false
	}
	return calc, true
}

// generateCacheKey creates a unique key for one game on one modeline config. The key
// covers everything the calculator is given, so a game redefined by an override with
// other displays misses the entry computed for the database version.
func generateCacheKey(cfg schema.ModelineConfig, source string, game *schema.Game) string {
	var displays []schema.MachineDisplay
	if game.Machine != nil {
		displays = game.Machine.Displays
	}
	encoded, err := json.Marshal(displays)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", displays))
	}
	key := fmt.Sprintf("%s:%s:%s:%s", cfg.Key(), source, game.Name, encoded)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
