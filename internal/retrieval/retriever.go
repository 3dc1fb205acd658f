package retrieval

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/config"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/feature"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/routing"
)

// cacheEntry is a cached retrieval result with an expiry.
type cacheEntry struct {
	result    *models.RetrievalResult
	expiresAt time.Time
}

// Retriever orchestrates routing, matching, and fusion. It is stateless
// between calls apart from the query cache, and never fails for well-formed
// input: routing degrades to the heuristic and an empty candidate set is a
// valid terminal state, not an error.
type Retriever struct {
	router            routing.Router
	keyword           *KeywordMatcher
	semantic          *SemanticMatcher
	confidenceDivisor float64
	cacheTTL          time.Duration
	cache             *lru.Cache[[32]byte, *cacheEntry]
	cacheMu           sync.RWMutex
	logger            *zap.Logger
}

// NewRetriever builds a retriever. router must already compose its own
// fallback; cfg supplies matcher weights and cache sizing.
func NewRetriever(router routing.Router, cfg *config.SearchConfig, logger *zap.Logger) *Retriever {
	r := &Retriever{
		router:            router,
		keyword:           NewKeywordMatcher(cfg),
		semantic:          NewSemanticMatcher(cfg),
		confidenceDivisor: cfg.ConfidenceDivisor,
		cacheTTL:          time.Duration(cfg.CacheTTLSeconds) * time.Second,
		logger:            logger,
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[[32]byte, *cacheEntry](cfg.CacheSize)
		if err == nil {
			r.cache = cache
		}
	}
	return r
}

// Retrieve routes the query, runs the selected matcher(s), and fuses the
// results. The returned result is immutable; every property in it is drawn
// from the input set.
func (r *Retriever) Retrieve(ctx context.Context, query string, properties []models.Property) *models.RetrievalResult {
	key := r.cacheKey(query, len(properties))
	if cached := r.checkCache(key); cached != nil {
		return cached
	}

	strategy, err := r.router.Route(ctx, query)
	if err != nil {
		// Routers compose their own fallbacks, so this is unexpected;
		// hybrid is the safe recall-maximizing default.
		r.logger.Warn("routing returned error, defaulting to hybrid", zap.Error(err))
		strategy = models.StrategyHybrid
	}

	profile := feature.ParseQuery(query)
	var keywordMatches, semanticMatches []models.Property

	// Keyword and semantic matching are independent; in hybrid mode they run
	// concurrently and both complete before fusion.
	var wg sync.WaitGroup
	if strategy == models.StrategyKeyword || strategy == models.StrategyHybrid {
		wg.Add(1)
		go func() {
			defer wg.Done()
			keywordMatches = r.keyword.SearchProfile(profile, properties)
		}()
	}
	if strategy == models.StrategySemantic || strategy == models.StrategyHybrid {
		wg.Add(1)
		go func() {
			defer wg.Done()
			semanticMatches = r.semantic.SearchProfile(profile, properties)
		}()
	}
	wg.Wait()

	var final []models.Property
	switch strategy {
	case models.StrategyKeyword:
		final = keywordMatches
	case models.StrategySemantic:
		final = semanticMatches
	default:
		final = fuse(keywordMatches, semanticMatches)
	}

	confidence := float64(len(final)) / r.confidenceDivisor
	if confidence > 1.0 {
		confidence = 1.0
	}

	result := &models.RetrievalResult{
		Properties:      final,
		Strategy:        strategy,
		Confidence:      confidence,
		KeywordMatches:  keywordMatches,
		SemanticMatches: semanticMatches,
	}
	r.logger.Debug("retrieval complete",
		zap.String("strategy", string(strategy)),
		zap.Int("keyword", len(keywordMatches)),
		zap.Int("semantic", len(semanticMatches)),
		zap.Int("final", len(final)),
		zap.Float64("confidence", confidence),
	)
	r.storeInCache(key, result)
	return result
}

// fuse builds the hybrid union: keyword matches keep their positions, and a
// semantic match is appended only when its id was not already included.
// Keyword precedence is preserved for compatibility with the original
// ranking; it can drop semantically-better matches on id overlap and is a
// candidate for revisiting.
func fuse(keywordMatches, semanticMatches []models.Property) []models.Property {
	seen := make(map[string]struct{}, len(keywordMatches))
	merged := make([]models.Property, 0, len(keywordMatches)+len(semanticMatches))
	for _, p := range keywordMatches {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		merged = append(merged, p)
	}
	for _, p := range semanticMatches {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		merged = append(merged, p)
	}
	return merged
}

func (r *Retriever) cacheKey(query string, datasetSize int) [32]byte {
	return sha256.Sum256([]byte(fmt.Sprintf("%s|%d", query, datasetSize)))
}

func (r *Retriever) checkCache(key [32]byte) *models.RetrievalResult {
	if r.cache == nil {
		return nil
	}
	r.cacheMu.RLock()
	entry, ok := r.cache.Get(key)
	r.cacheMu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		r.cacheMu.Lock()
		r.cache.Remove(key)
		r.cacheMu.Unlock()
		return nil
	}
	return copyResult(entry.result)
}

func (r *Retriever) storeInCache(key [32]byte, result *models.RetrievalResult) {
	if r.cache == nil || len(result.Properties) == 0 {
		return
	}
	r.cacheMu.Lock()
	r.cache.Add(key, &cacheEntry{result: copyResult(result), expiresAt: time.Now().Add(r.cacheTTL)})
	r.cacheMu.Unlock()
}

// InvalidateCache drops all cached queries. Called when the property dataset
// reloads.
func (r *Retriever) InvalidateCache() {
	if r.cache == nil {
		return
	}
	r.cacheMu.Lock()
	r.cache.Purge()
	r.cacheMu.Unlock()
}

// copyResult clones the result so cached entries cannot be mutated by callers.
func copyResult(src *models.RetrievalResult) *models.RetrievalResult {
	dst := &models.RetrievalResult{
		Strategy:   src.Strategy,
		Confidence: src.Confidence,
	}
	dst.Properties = append([]models.Property(nil), src.Properties...)
	if src.KeywordMatches != nil {
		dst.KeywordMatches = append([]models.Property(nil), src.KeywordMatches...)
	}
	if src.SemanticMatches != nil {
		dst.SemanticMatches = append([]models.Property(nil), src.SemanticMatches...)
	}
	return dst
}
