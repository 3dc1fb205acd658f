package feature

import (
	"math"
	"strings"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// Normalization divisors for the numeric vector slots. Query-derived and
// property-derived vectors must use the same divisors or cosine similarity
// is meaningless.
const (
	priceDivisor    = 3000
	bedroomDivisor  = 3
	bathroomDivisor = 3
	distanceDivisor = 20
)

// binaryFlag is one amenity/sentiment slot of the feature vector, true when
// any synonym appears in the text it is matched against.
type binaryFlag struct {
	name          string
	querySynonyms []string // matched against the lowercased query
	amenity       string   // matched against property amenity tags; "" = description only
	descWords     []string // matched against the lowercased description
}

// vectorFlags fixes the order of the binary slots. Both extraction paths
// iterate this table, so query and property vectors always line up.
var vectorFlags = []binaryFlag{
	{name: "laundry", querySynonyms: []string{"laundry", "洗烘"}, amenity: "laundry"},
	{name: "gym", querySynonyms: []string{"gym", "健身房"}, amenity: "gym"},
	{name: "parking", querySynonyms: []string{"parking", "停车"}, amenity: "parking"},
	{name: "modern", querySynonyms: []string{"modern", "现代"}, descWords: []string{"modern"}},
	{name: "luxury", querySynonyms: []string{"luxury", "豪华"}, descWords: []string{"luxury"}},
	{name: "quiet", querySynonyms: []string{"quiet", "安静", "学习"}, descWords: []string{"quiet"}},
}

// VectorLength is the fixed length of every feature vector.
var VectorLength = 4 + len(vectorFlags)

// ExtractPropertyFeatures builds the feature vector of a listing.
func ExtractPropertyFeatures(p *models.Property) []float64 {
	distance := float64(UnknownPropertyDistance)
	if d, ok := p.WalkingDistance(); ok {
		distance = float64(d)
	}
	v := make([]float64, 0, VectorLength)
	v = append(v,
		p.Price/priceDivisor,
		p.Bedrooms/bedroomDivisor,
		p.Bathrooms/bathroomDivisor,
		distance/distanceDivisor,
	)
	desc := strings.ToLower(p.Description)
	for _, f := range vectorFlags {
		on := false
		if f.amenity != "" && p.HasAmenity(f.amenity) {
			on = true
		}
		for _, w := range f.descWords {
			if strings.Contains(desc, w) {
				on = true
			}
		}
		v = append(v, boolToFloat(on))
	}
	return v
}

// ExtractQueryFeatures builds the feature vector implied by a free-text query.
func ExtractQueryFeatures(query string) []float64 {
	return ExtractProfileFeatures(ParseQuery(query))
}

// ExtractProfileFeatures builds the query vector from an already-parsed profile.
func ExtractProfileFeatures(p *QueryProfile) []float64 {
	v := make([]float64, 0, VectorLength)
	v = append(v,
		p.EffectivePrice()/priceDivisor,
		p.EffectiveBedrooms()/bedroomDivisor,
		p.EffectiveBathrooms()/bathroomDivisor,
		p.EffectiveDistance()/distanceDivisor,
	)
	for _, f := range vectorFlags {
		on := false
		for _, syn := range f.querySynonyms {
			if strings.Contains(p.Lower, syn) {
				on = true
				break
			}
		}
		v = append(v, boolToFloat(on))
	}
	return v
}

// CosineSimilarity returns the cosine of the angle between a and b.
// Returns 0 when the lengths differ or either norm is zero.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
