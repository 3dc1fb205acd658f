// Package feature turns queries and properties into fixed-length feature
// vectors and provides the similarity math used by the semantic matcher.
package feature

import (
	"regexp"
	"strconv"
	"strings"
)

// Default values used when a query does not state a constraint.
const (
	DefaultPrice      = 2000
	DefaultBedrooms   = 1.5
	DefaultBathrooms  = 1
	DefaultNearbyDist = 10
	DefaultDistance   = 15
	// UnknownPropertyDistance stands in for listings without a known walk time.
	UnknownPropertyDistance = 20
)

var (
	priceRe    = regexp.MustCompile(`\$?(\d{3,5})`)
	rangeRe    = regexp.MustCompile(`(\d+)\s*[-~–]\s*(\d+)`)
	bedroomRe  = regexp.MustCompile(`(\d+)\s*(b|bed|bedroom|卧|室)`)
	bathroomRe = regexp.MustCompile(`(\d+)\s*(bath|bathroom|卫)`)
	distanceRe = regexp.MustCompile(`(\d+)\s*(分钟|min|minute|walk)`)
)

// QueryProfile is the structured reading of a free-text rental query. All
// matchers and routers parse the query once through ParseQuery and share the
// result instead of re-running regexes.
type QueryProfile struct {
	Raw   string
	Lower string

	Price     float64 // raw parsed price; 0 when HasPrice is false
	HasPrice  bool
	PriceUnder bool // "under"/"below"/"以下"
	PriceOver  bool // "over"/"above"/"以上"

	HasBudgetWord  bool // "预算"/"budget"
	BudgetMin      float64
	BudgetMax      float64
	HasBudgetRange bool

	Bedrooms    float64
	HasBedrooms bool

	Bathrooms    float64
	HasBathrooms bool

	Distance    int
	HasDistance bool
	// Proximity relaxes the walk-distance default ("附近", "near", "close").
	Proximity bool
	// NearbyAsk fires the weight-3 nearby keyword rule ("附近", "near",
	// "wharton"). The word lists differ on purpose: "close" softens the
	// distance target but is not a rule trigger, and naming the school is a
	// rule trigger without changing the target.
	NearbyAsk bool
}

// ParseQuery extracts the structured constraints of a query.
func ParseQuery(query string) *QueryProfile {
	lower := strings.ToLower(query)
	p := &QueryProfile{Raw: query, Lower: lower}

	if m := priceRe.FindStringSubmatch(query); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.Price = v
			p.HasPrice = true
		}
	}
	p.PriceUnder = containsAny(lower, "以下", "below", "under")
	p.PriceOver = containsAny(lower, "以上", "above", "over")
	p.HasBudgetWord = strings.Contains(lower, "预算") || strings.Contains(lower, "budget")
	if m := rangeRe.FindStringSubmatch(query); m != nil {
		min, err1 := strconv.ParseFloat(m[1], 64)
		max, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			p.BudgetMin, p.BudgetMax = min, max
			p.HasBudgetRange = true
		}
	}

	if m := bedroomRe.FindStringSubmatch(query); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.Bedrooms = v
			p.HasBedrooms = true
		}
	} else {
		switch {
		case strings.Contains(query, "一卧"):
			p.Bedrooms, p.HasBedrooms = 1, true
		case strings.Contains(query, "二卧"):
			p.Bedrooms, p.HasBedrooms = 2, true
		case strings.Contains(query, "三卧"):
			p.Bedrooms, p.HasBedrooms = 3, true
		}
	}

	if m := bathroomRe.FindStringSubmatch(query); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.Bathrooms = v
			p.HasBathrooms = true
		}
	} else {
		switch {
		case strings.Contains(query, "一卫"):
			p.Bathrooms, p.HasBathrooms = 1, true
		case strings.Contains(query, "二卫"):
			p.Bathrooms, p.HasBathrooms = 2, true
		}
	}

	if m := distanceRe.FindStringSubmatch(query); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			p.Distance = v
			p.HasDistance = true
		}
	}
	p.Proximity = containsAny(lower, "附近", "near", "close")
	p.NearbyAsk = containsAny(lower, "附近", "near", "wharton")

	return p
}

// EffectivePrice is the price target used for vector building. Directional
// words widen the acceptance window: "under $1500" matches best slightly
// below the cap, so the target is shifted rather than treated as exact.
func (p *QueryProfile) EffectivePrice() float64 {
	if !p.HasPrice {
		return DefaultPrice
	}
	if p.PriceUnder {
		return p.Price * 1.2
	}
	if p.PriceOver {
		return p.Price * 0.8
	}
	return p.Price
}

// EffectiveBedrooms returns the bedroom target, defaulting to the market
// average when unstated.
func (p *QueryProfile) EffectiveBedrooms() float64 {
	if p.HasBedrooms {
		return p.Bedrooms
	}
	return DefaultBedrooms
}

// EffectiveBathrooms returns the bathroom target.
func (p *QueryProfile) EffectiveBathrooms() float64 {
	if p.HasBathrooms {
		return p.Bathrooms
	}
	return DefaultBathrooms
}

// EffectiveDistance returns the walk-time target in minutes.
func (p *QueryProfile) EffectiveDistance() float64 {
	if p.HasDistance {
		return float64(p.Distance)
	}
	if p.Proximity {
		return DefaultNearbyDist
	}
	return DefaultDistance
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
