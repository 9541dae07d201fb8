package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// generateCacheKey creates a unique key based on the task, the snapshot
// hash and the scoring parameters that affect the result.
func generateCacheKey(task, graphHash string, cfg *contract.Config) string {
	key := fmt.Sprintf("%s:%s:%s:%s:%s:%s",
		task,
		graphHash,
		cfg.Mode,
		cfg.TypeFilter,
		strings.Join(cfg.Excludes, ","),
		weightsFingerprint(cfg.ComputedWeights),
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// weightsFingerprint serializes the effective scoring weights in a
// deterministic order, so entries computed under different weight
// overrides never share a cache key. Map iteration order cannot leak
// into the fingerprint: modes follow schema.AllScoringModes and
// breakdown keys are sorted.
func weightsFingerprint(weights map[schema.ScoringMode]map[schema.BreakdownKey]float64) string {
	if len(weights) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, mode := range schema.AllScoringModes {
		modeWeights, ok := weights[mode]
		if !ok {
			continue
		}
		keys := make([]string, 0, len(modeWeights))
		for k := range modeWeights {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		sb.WriteString(string(mode))
		for _, k := range keys {
			fmt.Fprintf(&sb, "|%s=%g", k, modeWeights[schema.BreakdownKey(k)])
		}
		sb.WriteByte(';')
	}
	return sb.String()
}

// cacheHitStatus maps a stored result status to the status reported on a
// cache hit. Computed results are relabeled as cached; a degraded result
// keeps its label so the fallback is still visible when served from cache.
func cacheHitStatus(stored schema.ResultStatus) schema.ResultStatus {
	if stored == schema.DegradedStatus {
		return schema.DegradedStatus
	}
	return schema.CachedStatus
}

// checkCacheHit attempts to retrieve and validate a cached result.
// It returns nil on any miss: absent key, version mismatch, stale entry
// or undecodable payload.
func checkCacheHit[T any](store contract.CacheStore, key string) *T {
	if store == nil {
		return nil
	}

	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= contract.CacheTTL {
			var result T
			if err := json.Unmarshal(data, &result); err == nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// storeInCache serializes and stores a computed result. Storage failures
// are ignored; the computed result is still returned to the caller.
func storeInCache[T any](store contract.CacheStore, key string, value *T) {
	if store == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
}
