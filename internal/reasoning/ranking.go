package reasoning

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
	"github.com/LuLu1016/ARLook-GoogleMap/pkg/utils"
)

// Score contributions of the personalized ranking model.
const (
	defaultScore       = 50
	budgetMaxPoints    = 30
	underBudgetBonus   = 10
	overBudgetPenalty  = 20
	commuteMaxPoints   = 30
	commuteHorizon     = 30 // minutes beyond which walking contributes nothing
	amenityBonus       = 20
	dealBreakerPenalty = 50
)

// RankAndExplain scores each property against the user model and returns
// them ordered by score with a per-property explanation. A nil model yields
// a flat default score and a generic explanation.
func (e *Engine) RankAndExplain(properties []models.Property, userModel *models.UserCognitiveModel) []models.RankedProperty {
	ranked := make([]models.RankedProperty, 0, len(properties))
	for _, p := range properties {
		ranked = append(ranked, models.RankedProperty{
			Property:    p,
			MatchScore:  matchScore(&p, userModel),
			Explanation: explanation(&p, userModel),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].MatchScore > ranked[j].MatchScore })
	return ranked
}

func matchScore(p *models.Property, userModel *models.UserCognitiveModel) float64 {
	if userModel == nil {
		return defaultScore
	}

	var score float64
	prefs := userModel.ExplicitPreferences
	implicit := userModel.ImplicitPreferences

	if budget := prefs.Budget; budget != nil {
		switch {
		case p.Price >= budget.Min && p.Price <= budget.Max:
			// Closer to the lower end scores higher for value-sensitive users.
			span := budget.Max - budget.Min
			position := 0.0
			if span > 0 {
				position = (p.Price - budget.Min) / span
			}
			score += budgetMaxPoints * (1 - position*implicit.ValueSensitivity)
		case p.Price < budget.Min:
			score += underBudgetBonus
		default:
			score -= overBudgetPenalty
		}
	}

	if d, ok := p.WalkingDistance(); ok {
		score += float64(commuteHorizon-d) / commuteHorizon * implicit.CommuteTolerance * commuteMaxPoints
	}

	for _, amenity := range prefs.MustHaveAmenities {
		if p.HasAmenity(amenity) {
			score += amenityBonus
		}
	}

	desc := strings.ToLower(p.Description)
	for _, breaker := range prefs.DealBreakers {
		if p.HasAmenity(breaker) || strings.Contains(desc, strings.ToLower(breaker)) {
			score -= dealBreakerPenalty
		}
	}

	return utils.Clamp(score, 0, 100)
}

func explanation(p *models.Property, userModel *models.UserCognitiveModel) string {
	generic := fmt.Sprintf("Modern apartment with %.0f bedroom(s)", p.Bedrooms)
	if userModel == nil {
		return generic
	}

	var reasons []string
	prefs := userModel.ExplicitPreferences

	if budget := prefs.Budget; budget != nil && p.Price <= budget.Max {
		reasons = append(reasons, fmt.Sprintf("within your budget at $%.0f/person", p.Price))
	}
	if d, ok := p.WalkingDistance(); ok {
		reasons = append(reasons, fmt.Sprintf("%d minutes walk to Wharton", d))
	}
	var matched []string
	for _, amenity := range prefs.MustHaveAmenities {
		if p.HasAmenity(amenity) {
			matched = append(matched, amenity)
		}
	}
	if len(matched) > 0 {
		reasons = append(reasons, "includes "+strings.Join(matched, " and "))
	}

	if len(reasons) == 0 {
		return generic
	}
	return strings.Join(reasons, ", ")
}
