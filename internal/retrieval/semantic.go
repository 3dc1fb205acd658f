package retrieval

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/config"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/feature"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// SemanticMatcher ranks properties by a blend of feature-vector cosine
// similarity and lexical overlap between the query and the listing text.
type SemanticMatcher struct {
	vectorWeight float64
	textWeight   float64
	cutoff       float64
	maxResults   int
}

// NewSemanticMatcher builds a matcher from search config.
func NewSemanticMatcher(cfg *config.SearchConfig) *SemanticMatcher {
	return &SemanticMatcher{
		vectorWeight: cfg.VectorWeight,
		textWeight:   cfg.TextWeight,
		cutoff:       cfg.SemanticCutoff,
		maxResults:   cfg.MaxResults,
	}
}

// Search returns up to maxResults properties whose combined similarity
// exceeds the cutoff, ordered by similarity descending.
func (m *SemanticMatcher) Search(query string, properties []models.Property) []models.Property {
	return m.SearchProfile(feature.ParseQuery(query), properties)
}

// SearchProfile is Search with an already-parsed query profile.
func (m *SemanticMatcher) SearchProfile(profile *feature.QueryProfile, properties []models.Property) []models.Property {
	queryVec := feature.ExtractProfileFeatures(profile)
	tokens := strings.Fields(profile.Lower)

	scored := make([]scoredProperty, 0, len(properties))
	for _, p := range properties {
		vectorSim := feature.CosineSimilarity(queryVec, feature.ExtractPropertyFeatures(&p))
		textSim := textSimilarity(tokens, &p)
		combined := m.vectorWeight*vectorSim + m.textWeight*textSim
		if combined > m.cutoff {
			scored = append(scored, scoredProperty{property: p, score: combined})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	return stripScores(scored, m.maxResults)
}

// textSimilarity is the fraction of query tokens (longer than 2 runes) that
// appear as substrings of the listing's description or name.
func textSimilarity(tokens []string, p *models.Property) float64 {
	if len(tokens) == 0 {
		return 0
	}
	desc := strings.ToLower(p.Description)
	name := strings.ToLower(p.Name)
	matching := 0
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		if strings.Contains(desc, tok) || strings.Contains(name, tok) {
			matching++
		}
	}
	return float64(matching) / float64(len(tokens))
}
