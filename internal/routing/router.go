// Package routing classifies a rental query into a search strategy. The
// primary path asks the LLM; a deterministic heuristic with the same
// signature covers the no-LLM and LLM-failure cases.
package routing

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/feature"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// Router decides which matcher(s) a query should run.
type Router interface {
	Route(ctx context.Context, query string) (models.Strategy, error)
}

// amenityRe and semanticRe hold the literal trigger-word lists. Routing
// follows these lists exactly, not intuition: "near" is a proximity trigger
// for the keyword matcher but is not a semantic word here.
var (
	amenityRe  = regexp.MustCompile(`laundry|洗烘|gym|健身房|parking|停车`)
	semanticRe = regexp.MustCompile(`安静|quiet|舒适|comfortable|适合|学习|study|社交|social|氛围|atmosphere|交通|便利|convenient`)
)

// HeuristicRouter is the deterministic fallback classifier.
type HeuristicRouter struct{}

// NewHeuristicRouter returns a heuristic Router.
func NewHeuristicRouter() *HeuristicRouter { return &HeuristicRouter{} }

// Route never fails; the error is part of the Router contract only.
func (r *HeuristicRouter) Route(_ context.Context, query string) (models.Strategy, error) {
	profile := feature.ParseQuery(query)

	explicit := profile.HasPrice || profile.HasBedrooms || profile.HasBathrooms ||
		amenityRe.MatchString(profile.Lower)
	semantic := semanticRe.MatchString(profile.Lower)

	switch {
	case explicit && semantic:
		return models.StrategyHybrid, nil
	case explicit:
		return models.StrategyKeyword, nil
	case semantic:
		return models.StrategySemantic, nil
	default:
		// Neither signal: hybrid maximizes recall.
		return models.StrategyHybrid, nil
	}
}

// FallbackRouter tries a primary router and degrades to the fallback on any
// error. With a nil primary it is purely heuristic.
type FallbackRouter struct {
	primary  Router
	fallback Router
	logger   *zap.Logger
}

// NewFallbackRouter composes primary and fallback. primary may be nil.
func NewFallbackRouter(primary, fallback Router, logger *zap.Logger) *FallbackRouter {
	return &FallbackRouter{primary: primary, fallback: fallback, logger: logger}
}

// Route returns the primary router's strategy, or the fallback's when the
// primary is absent or fails. It never returns an error.
func (r *FallbackRouter) Route(ctx context.Context, query string) (models.Strategy, error) {
	if r.primary != nil {
		strategy, err := r.primary.Route(ctx, query)
		if err == nil {
			return strategy, nil
		}
		if r.logger != nil {
			r.logger.Warn("primary routing failed, using heuristic", zap.Error(err))
		}
	}
	return r.fallback.Route(ctx, query)
}
