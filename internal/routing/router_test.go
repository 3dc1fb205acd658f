package routing

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

func TestHeuristicRouter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.Strategy
	}{
		{"price only", "Under $2000", models.StrategyKeyword},
		{"amenity only", "有洗烘的房子", models.StrategyKeyword},
		{"proximity with amenity and price", "Near Wharton with gym under $2000", models.StrategyKeyword},
		{"semantic only", "安静适合学习的房子", models.StrategySemantic},
		{"semantic english", "a quiet place with nice atmosphere", models.StrategySemantic},
		{"mixed", "quiet 2b2b with laundry", models.StrategyHybrid},
		{"neither", "找房子", models.StrategyHybrid},
	}
	r := NewHeuristicRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Route(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Route error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Route(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}

type stubRouter struct {
	strategy models.Strategy
	err      error
}

func (s *stubRouter) Route(context.Context, string) (models.Strategy, error) {
	return s.strategy, s.err
}

func TestFallbackRouter(t *testing.T) {
	logger := zap.NewNop()

	t.Run("primary succeeds", func(t *testing.T) {
		r := NewFallbackRouter(&stubRouter{strategy: models.StrategySemantic}, NewHeuristicRouter(), logger)
		got, err := r.Route(context.Background(), "Under $2000")
		if err != nil {
			t.Fatalf("Route error: %v", err)
		}
		if got != models.StrategySemantic {
			t.Errorf("got %s, want primary's semantic", got)
		}
	})

	t.Run("primary fails", func(t *testing.T) {
		r := NewFallbackRouter(&stubRouter{err: errors.New("api down")}, NewHeuristicRouter(), logger)
		got, err := r.Route(context.Background(), "Under $2000")
		if err != nil {
			t.Fatalf("Route error: %v", err)
		}
		if got != models.StrategyKeyword {
			t.Errorf("got %s, want heuristic keyword", got)
		}
	})

	t.Run("nil primary", func(t *testing.T) {
		r := NewFallbackRouter(nil, NewHeuristicRouter(), logger)
		got, err := r.Route(context.Background(), "安静的房子")
		if err != nil {
			t.Fatalf("Route error: %v", err)
		}
		if got != models.StrategySemantic {
			t.Errorf("got %s, want semantic", got)
		}
	})
}

func TestParseStrategyLabel(t *testing.T) {
	tests := []struct {
		reply string
		want  models.Strategy
	}{
		{"keyword", models.StrategyKeyword},
		{"SEMANTIC", models.StrategySemantic},
		{"I would choose hybrid search", models.StrategyHybrid},
		{"The best choice is keyword matching", models.StrategyKeyword},
		{"no idea", models.StrategyHybrid},
		{"", models.StrategyHybrid},
	}
	for _, tt := range tests {
		if got := parseStrategyLabel(tt.reply); got != tt.want {
			t.Errorf("parseStrategyLabel(%q) = %s, want %s", tt.reply, got, tt.want)
		}
	}
}
