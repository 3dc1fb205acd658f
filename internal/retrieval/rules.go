// Package retrieval implements keyword and semantic property matching and
// the hybrid retriever that fuses them.
package retrieval

import (
	"math"
	"strings"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/config"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/feature"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// keywordRule is one declarative scoring rule: it contributes weight points
// when its trigger fires on the query AND its test passes on the property.
type keywordRule struct {
	name    string
	trigger func(q *feature.QueryProfile) bool
	test    func(q *feature.QueryProfile, p *models.Property) bool
	weight  int
}

// keywordRules builds the rule table from config weights. Rules are
// independent; a property's score is the sum of all that fire.
func keywordRules(kw *config.KeywordConfig) []keywordRule {
	return []keywordRule{
		{
			name:    "price-under",
			trigger: func(q *feature.QueryProfile) bool { return q.HasPrice && q.PriceUnder },
			test:    func(q *feature.QueryProfile, p *models.Property) bool { return p.Price <= q.Price },
			weight:  kw.PriceWeight,
		},
		{
			name:    "price-over",
			trigger: func(q *feature.QueryProfile) bool { return q.HasPrice && q.PriceOver },
			test:    func(q *feature.QueryProfile, p *models.Property) bool { return p.Price >= q.Price },
			weight:  kw.PriceWeight,
		},
		{
			name: "budget-range",
			trigger: func(q *feature.QueryProfile) bool {
				return q.HasPrice && !q.PriceUnder && !q.PriceOver && q.HasBudgetWord && q.HasBudgetRange
			},
			test: func(q *feature.QueryProfile, p *models.Property) bool {
				return p.Price >= q.BudgetMin && p.Price <= q.BudgetMax
			},
			weight: kw.PriceWeight,
		},
		{
			name: "budget-approx",
			trigger: func(q *feature.QueryProfile) bool {
				return q.HasPrice && !q.PriceUnder && !q.PriceOver && q.HasBudgetWord && !q.HasBudgetRange
			},
			test: func(q *feature.QueryProfile, p *models.Property) bool {
				return math.Abs(p.Price-q.Price) <= kw.PriceTolerance
			},
			weight: kw.BudgetApproxWeight,
		},
		{
			name: "price-approx",
			trigger: func(q *feature.QueryProfile) bool {
				return q.HasPrice && !q.PriceUnder && !q.PriceOver && !q.HasBudgetWord
			},
			test: func(q *feature.QueryProfile, p *models.Property) bool {
				return math.Abs(p.Price-q.Price) <= kw.PriceTolerance
			},
			weight: kw.PriceWeight,
		},
		{
			name:    "bedrooms",
			trigger: func(q *feature.QueryProfile) bool { return q.HasBedrooms },
			test:    func(q *feature.QueryProfile, p *models.Property) bool { return p.Bedrooms == q.Bedrooms },
			weight:  kw.RoomWeight,
		},
		{
			name:    "bathrooms",
			trigger: func(q *feature.QueryProfile) bool { return q.HasBathrooms },
			test:    func(q *feature.QueryProfile, p *models.Property) bool { return p.Bathrooms == q.Bathrooms },
			weight:  kw.RoomWeight,
		},
		{
			name:    "laundry",
			trigger: queryMentions("laundry", "洗烘"),
			test:    propertyHasAmenity("laundry"),
			weight:  kw.AmenityWeight,
		},
		{
			name:    "gym",
			trigger: queryMentions("gym", "健身房"),
			test:    propertyHasAmenity("gym"),
			weight:  kw.AmenityWeight,
		},
		{
			name:    "parking",
			trigger: queryMentions("parking", "停车"),
			test:    propertyHasAmenity("parking"),
			weight:  kw.ParkingWeight,
		},
		{
			name:    "nearby",
			trigger: func(q *feature.QueryProfile) bool { return q.NearbyAsk },
			test: func(q *feature.QueryProfile, p *models.Property) bool {
				d, ok := p.WalkingDistance()
				return ok && d <= kw.NearbyMaxDistance
			},
			weight: kw.ProximityWeight,
		},
		{
			name:    "walk-time",
			trigger: func(q *feature.QueryProfile) bool { return q.HasDistance },
			test: func(q *feature.QueryProfile, p *models.Property) bool {
				d, ok := p.WalkingDistance()
				if !ok {
					return false
				}
				diff := d - q.Distance
				if diff < 0 {
					diff = -diff
				}
				return diff <= kw.DistanceTolerance
			},
			weight: kw.DistanceWeight,
		},
	}
}

func queryMentions(words ...string) func(q *feature.QueryProfile) bool {
	return func(q *feature.QueryProfile) bool {
		for _, w := range words {
			if strings.Contains(q.Lower, w) {
				return true
			}
		}
		return false
	}
}

func propertyHasAmenity(tag string) func(q *feature.QueryProfile, p *models.Property) bool {
	return func(_ *feature.QueryProfile, p *models.Property) bool {
		return p.HasAmenity(tag)
	}
}
