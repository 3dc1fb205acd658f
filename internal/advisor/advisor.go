// Package advisor derives temporal/market/urgency context and produces
// proactive guidance text over already-ranked properties.
package advisor

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
	"github.com/LuLu1016/ARLook-GoogleMap/pkg/utils"
)

// Season labels for the rental market.
const (
	SeasonPeak    = "peak"
	SeasonOffPeak = "off-peak"
)

// Urgency levels derived from the user's move-in timeline.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// TemporalContext describes where the current date falls in the rental cycle.
type TemporalContext struct {
	Season       string `json:"season"`
	Month        int    `json:"month"`
	IsRushSeason bool   `json:"isRushSeason"`
}

// MarketContext describes price and availability conditions. Values are
// static for University City; a real data feed would replace them.
type MarketContext struct {
	PriceTrend        string  `json:"priceTrend"`
	Availability      string  `json:"availability"`
	RecentPriceChange float64 `json:"recentPriceChange"`
}

// UserContext captures where the user is in their search and how urgent it is.
type UserContext struct {
	Stage    string `json:"stage"`
	Timeline string `json:"timeline,omitempty"`
	Urgency  string `json:"urgency"`
}

// GeographicContext describes supply and competition in the target area.
type GeographicContext struct {
	Area             string `json:"area"`
	SupplyLevel      string `json:"supplyLevel"`
	CompetitionLevel string `json:"competitionLevel"`
}

// ContextualInformation is the full derived context.
type ContextualInformation struct {
	Temporal   TemporalContext   `json:"temporalContext"`
	Market     MarketContext     `json:"marketContext"`
	User       UserContext       `json:"userContext"`
	Geographic GeographicContext `json:"geographicContext"`
}

// Advisor computes context and guidance. The clock is injectable for tests.
type Advisor struct {
	now func() time.Time
}

// New returns an Advisor using the wall clock.
func New() *Advisor {
	return &Advisor{now: time.Now}
}

// NewWithClock returns an Advisor with a fixed clock source.
func NewWithClock(now func() time.Time) *Advisor {
	return &Advisor{now: now}
}

var monthRe = regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)`)

var monthIndex = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// UnderstandContext derives the contextual information for the current date
// and the user's optional move-in timeline (e.g. "September 2026").
func (a *Advisor) UnderstandContext(timeline string) *ContextualInformation {
	month := int(a.now().Month())

	season := SeasonOffPeak
	rush := false
	if month >= 4 && month <= 8 {
		// April-August is the student rental rush.
		season = SeasonPeak
		rush = true
	}

	return &ContextualInformation{
		Temporal: TemporalContext{Season: season, Month: month, IsRushSeason: rush},
		Market: MarketContext{
			PriceTrend:        "rising",
			Availability:      "tight",
			RecentPriceChange: 5,
		},
		User: UserContext{
			Stage:    "exploring",
			Timeline: timeline,
			Urgency:  urgency(timeline, month),
		},
		Geographic: GeographicContext{
			Area:             "University City",
			SupplyLevel:      "tight",
			CompetitionLevel: "high",
		},
	}
}

// urgency maps a timeline to a level: within 2 months is high, within 4 is
// medium, otherwise low. No timeline means low; an unparseable one medium.
func urgency(timeline string, currentMonth int) string {
	if timeline == "" {
		return UrgencyLow
	}
	m := monthRe.FindString(timeline)
	if m == "" {
		return UrgencyMedium
	}
	target := monthIndex[strings.ToLower(m)]
	monthsUntil := target - currentMonth
	if monthsUntil < 0 {
		monthsUntil += 12
	}
	switch {
	case monthsUntil <= 2:
		return UrgencyHigh
	case monthsUntil <= 4:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// ProvideProactiveSuggestions returns situational guidance strings for the
// given context and result set.
func (a *Advisor) ProvideProactiveSuggestions(ctx *ContextualInformation, properties []models.Property) []string {
	var suggestions []string

	if ctx.Temporal.IsRushSeason {
		suggestions = append(suggestions, fmt.Sprintf(
			"This is peak rental season (%s). Properties tend to get rented quickly, so I recommend starting your search early.",
			time.Month(ctx.Temporal.Month).String()))
	}
	if ctx.Market.PriceTrend == "rising" {
		suggestions = append(suggestions, fmt.Sprintf(
			"Rental prices in this area have been trending upward (%.0f%% increase recently). Consider locking in a property soon if you find a good match.",
			ctx.Market.RecentPriceChange))
	}
	if ctx.User.Urgency == UrgencyHigh {
		suggestions = append(suggestions,
			"Based on your timeline, you'll need to move soon. I recommend prioritizing properties that are available immediately and can accommodate a quick move-in.")
	}
	if ctx.Geographic.SupplyLevel == "tight" {
		suggestions = append(suggestions, fmt.Sprintf(
			"University City has limited availability, especially for properties near Wharton. The %d options I found are competitive - I suggest reviewing them promptly.",
			len(properties)))
	}

	return suggestions
}

// GenerateComparativeAnalysis summarizes the top three properties: price
// range, average commute, and the best price-per-minute-of-commute value.
// Returns an empty string for fewer than two properties.
func (a *Advisor) GenerateComparativeAnalysis(properties []models.Property) string {
	if len(properties) < 2 {
		return ""
	}
	top := properties
	if len(top) > 3 {
		top = top[:3]
	}

	minPrice, maxPrice := top[0].Price, top[0].Price
	var priceSum float64
	for _, p := range top {
		priceSum += p.Price
		if p.Price < minPrice {
			minPrice = p.Price
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}
	avgPrice := priceSum / float64(len(top))

	var distances []float64
	for _, p := range top {
		if d, ok := p.WalkingDistance(); ok {
			distances = append(distances, float64(d))
		}
	}

	var b strings.Builder
	b.WriteString("Comparative Analysis:\n\n")
	fmt.Fprintf(&b, "Price Range: $%.0f - $%.0f per person (average: $%.0f)\n", minPrice, maxPrice, math.Round(avgPrice))
	if len(distances) > 0 {
		fmt.Fprintf(&b, "Average walking distance: %.0f minutes\n", math.Round(utils.Mean(distances)))
	}

	leader := valueLeader(top)
	if d, ok := leader.WalkingDistance(); ok {
		fmt.Fprintf(&b, "\nBest value: %s offers the best price-to-distance ratio at $%.0f/person, %d minutes walk.\n",
			leader.Name, leader.Price, d)
	} else {
		fmt.Fprintf(&b, "\nBest value: %s at $%.0f/person.\n", leader.Name, leader.Price)
	}
	return b.String()
}

// valueLeader picks the property with the lowest price-to-walk-minute ratio;
// listings with unknown distance compare by raw price.
func valueLeader(properties []models.Property) models.Property {
	best := properties[0]
	bestValue := valueRatio(&best)
	for _, p := range properties[1:] {
		if v := valueRatio(&p); v < bestValue {
			best = p
			bestValue = v
		}
	}
	return best
}

func valueRatio(p *models.Property) float64 {
	if d, ok := p.WalkingDistance(); ok && d > 0 {
		return p.Price / float64(d)
	}
	return p.Price
}
