package retrieval

import (
	"sort"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/config"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/feature"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// scoredProperty pairs a property with its transient matcher score. The
// score never leaves this package; domain entities stay unmodified.
type scoredProperty struct {
	property models.Property
	score    float64
}

// KeywordMatcher scores properties against the structured constraints of a
// query using the declarative rule table.
type KeywordMatcher struct {
	rules      []keywordRule
	maxResults int
}

// NewKeywordMatcher builds a matcher from search config.
func NewKeywordMatcher(cfg *config.SearchConfig) *KeywordMatcher {
	return &KeywordMatcher{
		rules:      keywordRules(&cfg.Keyword),
		maxResults: cfg.MaxResults,
	}
}

// Search returns up to maxResults properties ordered by accumulated rule
// score. Properties scoring zero are excluded; ties keep input order.
func (m *KeywordMatcher) Search(query string, properties []models.Property) []models.Property {
	return m.SearchProfile(feature.ParseQuery(query), properties)
}

// SearchProfile is Search with an already-parsed query profile.
func (m *KeywordMatcher) SearchProfile(profile *feature.QueryProfile, properties []models.Property) []models.Property {
	scored := make([]scoredProperty, 0, len(properties))
	for _, p := range properties {
		score := m.scoreProperty(profile, &p)
		if score > 0 {
			scored = append(scored, scoredProperty{property: p, score: float64(score)})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	return stripScores(scored, m.maxResults)
}

func (m *KeywordMatcher) scoreProperty(profile *feature.QueryProfile, p *models.Property) int {
	score := 0
	for _, rule := range m.rules {
		if rule.trigger(profile) && rule.test(profile, p) {
			score += rule.weight
		}
	}
	return score
}

// stripScores returns the top-n properties with internal scores dropped.
func stripScores(scored []scoredProperty, n int) []models.Property {
	if n > len(scored) {
		n = len(scored)
	}
	out := make([]models.Property, 0, n)
	for _, s := range scored[:n] {
		out = append(out, s.property)
	}
	return out
}
