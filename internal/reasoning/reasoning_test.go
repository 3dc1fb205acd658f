package reasoning

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/llm"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

func testUserModel() *models.UserCognitiveModel {
	return &models.UserCognitiveModel{
		ExplicitPreferences: models.ExplicitPreferences{
			Budget:            &models.BudgetRange{Min: 1500, Max: 2000},
			MustHaveAmenities: []string{"Gym"},
		},
		ImplicitPreferences: models.ImplicitPreferences{
			ValueSensitivity: 0.5,
			CommuteTolerance: 0.5,
		},
	}
}

func TestRankAndExplainNilModel(t *testing.T) {
	e := NewEngine(nil, zap.NewNop())
	properties := []models.Property{
		{ID: "1", Name: "A", Price: 1800, Bedrooms: 2},
		{ID: "2", Name: "B", Price: 2500, Bedrooms: 1},
	}
	ranked := e.RankAndExplain(properties, nil)
	if len(ranked) != 2 {
		t.Fatalf("got %d ranked, want 2", len(ranked))
	}
	for _, r := range ranked {
		if r.MatchScore != 50 {
			t.Errorf("%s score = %f, want flat 50", r.Name, r.MatchScore)
		}
		if !strings.Contains(r.Explanation, "bedroom") {
			t.Errorf("%s explanation %q missing generic text", r.Name, r.Explanation)
		}
	}
}

func TestRankAndExplainOverBudget(t *testing.T) {
	e := NewEngine(nil, zap.NewNop())
	inBudget := models.Property{
		ID: "1", Name: "Affordable", Price: 1600,
		Amenities:                []string{"Gym"},
		WalkingDistanceToWharton: models.IntPtr(10),
	}
	overBudget := models.Property{
		ID: "2", Name: "Pricey", Price: 2600,
		WalkingDistanceToWharton: models.IntPtr(10),
	}
	ranked := e.RankAndExplain([]models.Property{overBudget, inBudget}, testUserModel())

	if ranked[0].Name != "Affordable" {
		t.Errorf("top = %s, want Affordable", ranked[0].Name)
	}
	if ranked[0].MatchScore <= ranked[1].MatchScore {
		t.Error("in-budget property should outscore over-budget")
	}
	// Over-budget listings never claim to be within budget.
	if strings.Contains(ranked[1].Explanation, "within your budget") {
		t.Errorf("over-budget explanation %q mentions budget fit", ranked[1].Explanation)
	}
	if !strings.Contains(ranked[0].Explanation, "within your budget") {
		t.Errorf("in-budget explanation %q missing budget fit", ranked[0].Explanation)
	}
}

func TestRankAndExplainDealBreaker(t *testing.T) {
	e := NewEngine(nil, zap.NewNop())
	model := testUserModel()
	model.ExplicitPreferences.DealBreakers = []string{"basement"}

	clean := models.Property{ID: "1", Name: "Clean", Price: 1600, Description: "Bright corner unit"}
	flagged := models.Property{ID: "2", Name: "Flagged", Price: 1600, Description: "Basement unit with low light"}
	ranked := e.RankAndExplain([]models.Property{flagged, clean}, model)
	if ranked[0].Name != "Clean" {
		t.Errorf("top = %s, want Clean", ranked[0].Name)
	}
}

func TestMatchScoreClamped(t *testing.T) {
	model := testUserModel()
	model.ExplicitPreferences.DealBreakers = []string{"loud", "dark", "old"}
	p := models.Property{ID: "1", Name: "Bad", Price: 3000, Description: "loud dark old building"}
	score := matchScore(&p, model)
	if score < 0 || score > 100 {
		t.Errorf("score %f outside [0,100]", score)
	}
	if score != 0 {
		t.Errorf("score = %f, want floor 0", score)
	}
}

func TestSelectSearchStrategy(t *testing.T) {
	tests := []struct {
		query string
		want  models.Strategy
	}{
		{"$1,800 2 bedroom", models.StrategyKeyword},
		{"my budget is around 1800", models.StrategyKeyword},
		{"somewhere near Wharton", models.StrategySemantic},
		{"a nice place close to campus", models.StrategySemantic},
		{"nice 2 bedroom under $2000", models.StrategyHybrid},
		{"随便看看", models.StrategySemantic},
	}
	e := NewEngine(nil, zap.NewNop())
	for _, tt := range tests {
		if got := e.SelectSearchStrategy(tt.query); got != tt.want {
			t.Errorf("SelectSearchStrategy(%q) = %s, want %s", tt.query, got, tt.want)
		}
	}
}

type stubClient struct {
	reply string
	err   error
}

func (s *stubClient) Complete(context.Context, llm.Request) (string, error) {
	return s.reply, s.err
}

func TestClarifyNeedsFailOpen(t *testing.T) {
	query := "2b2b near Wharton"

	t.Run("nil client", func(t *testing.T) {
		e := NewEngine(nil, zap.NewNop())
		result := e.ClarifyNeeds(context.Background(), query, nil)
		if result.NeedsClarification {
			t.Error("nil client should pass through")
		}
		if result.ClarifiedQuery != query {
			t.Errorf("ClarifiedQuery = %q, want original", result.ClarifiedQuery)
		}
	})

	t.Run("call failure", func(t *testing.T) {
		e := NewEngine(&stubClient{err: errors.New("timeout")}, zap.NewNop())
		result := e.ClarifyNeeds(context.Background(), query, nil)
		if result.NeedsClarification {
			t.Error("failed call should pass through")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		e := NewEngine(&stubClient{reply: "sure, happy to help!"}, zap.NewNop())
		result := e.ClarifyNeeds(context.Background(), query, nil)
		if result.NeedsClarification {
			t.Error("unparseable reply should pass through")
		}
	})

	t.Run("valid response", func(t *testing.T) {
		e := NewEngine(&stubClient{reply: `{"needsClarification": true, "clarificationQuestions": ["What is your budget?"]}`}, zap.NewNop())
		result := e.ClarifyNeeds(context.Background(), query, nil)
		if !result.NeedsClarification {
			t.Error("expected clarification request")
		}
		if result.ClarifiedQuery != query {
			t.Errorf("empty clarified query should backfill, got %q", result.ClarifiedQuery)
		}
	})
}
