// Package verification cross-checks generated responses against the
// retrieved property set: unverifiable property mentions, numeric
// inconsistencies, quality metrics, and response sanitization.
package verification

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

var (
	// titleCaseRe finds 1-4 consecutive title-case words, candidates for
	// property-name mentions.
	titleCaseRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,3}\b`)
	addressRe   = regexp.MustCompile(`(?i)\d+\s*(st|street|ave|avenue|rd|road|blvd|boulevard)`)
	dollarRe    = regexp.MustCompile(`\$(\d{3,5})`)
	minutesRe   = regexp.MustCompile(`(?i)(\d+)\s*(?:分钟|min)`)
)

// stopWords are common location/campus words that look like property names
// but never are.
var stopWords = map[string]struct{}{
	"Wharton": {}, "Penn": {}, "University": {}, "Philadelphia": {},
	"Chestnut": {}, "Walnut": {}, "Market": {}, "Lancaster": {},
	"School": {}, "Campus": {}, "City": {},
}

// MentionVerification reports which retrieved properties a response mentions
// and which mentions could not be verified.
type MentionVerification struct {
	IsValid             bool
	MentionedProperties []string
	VerifiedProperties  []models.Property
	InvalidMentions     []string
}

// VerifyPropertyMentions scans a generated response for property references.
// A property counts as mentioned when its full name appears (case-insensitive)
// or every name token longer than 2 runes appears somewhere in the response.
// Unverified title-case phrases are flagged only when at least one property
// verified, which keeps generic replies from producing false positives.
func VerifyPropertyMentions(response string, retrieved []models.Property) *MentionVerification {
	result := &MentionVerification{
		MentionedProperties: []string{},
		VerifiedProperties:  []models.Property{},
		InvalidMentions:     []string{},
	}
	responseLower := strings.ToLower(response)

	for _, p := range retrieved {
		nameLower := strings.ToLower(p.Name)
		if strings.Contains(responseLower, nameLower) || allNameTokensPresent(nameLower, responseLower) {
			result.MentionedProperties = append(result.MentionedProperties, p.Name)
			result.VerifiedProperties = append(result.VerifiedProperties, p)
		}
	}

	if len(result.VerifiedProperties) > 0 {
		for _, match := range titleCaseRe.FindAllString(response, -1) {
			if isKnownName(match, retrieved) {
				continue
			}
			if _, ok := stopWords[match]; ok {
				continue
			}
			if addressRe.MatchString(match) {
				continue
			}
			// At least 2 words, or one word long enough to look like a name.
			words := strings.Fields(match)
			if len(words) >= 2 || len(match) > 6 {
				result.InvalidMentions = append(result.InvalidMentions, match)
			}
		}
	}

	result.IsValid = len(result.InvalidMentions) == 0
	return result
}

// allNameTokensPresent reports whether every token of the name longer than 2
// runes appears in the response. Names containing a short token never match
// through this path.
func allNameTokensPresent(nameLower, responseLower string) bool {
	tokens := strings.Fields(nameLower)
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= 2 || !strings.Contains(responseLower, tok) {
			return false
		}
	}
	return true
}

// isKnownName reports whether the phrase matches a retrieved property name
// in either containment direction.
func isKnownName(phrase string, retrieved []models.Property) bool {
	phraseLower := strings.ToLower(phrase)
	for _, p := range retrieved {
		nameLower := strings.ToLower(p.Name)
		if nameLower == phraseLower ||
			strings.Contains(nameLower, phraseLower) ||
			strings.Contains(phraseLower, nameLower) {
			return true
		}
	}
	return false
}

// Inconsistency is a numeric mismatch between the response text and the
// source data of a verified property.
type Inconsistency struct {
	Property    string `json:"property"`
	Field       string `json:"field"`
	AIValue     string `json:"aiValue"`
	ActualValue string `json:"actualValue"`
}

// VerifyDataConsistency checks that prices and walking distances stated in
// the response agree with the data of each verified property: at least one
// mentioned dollar amount within ±200 of the actual price, and the first
// mentioned walk time within ±5 minutes of the actual distance.
func VerifyDataConsistency(response string, verified []models.Property) (bool, []Inconsistency) {
	var inconsistencies []Inconsistency
	responseLower := strings.ToLower(response)

	for _, p := range verified {
		if !strings.Contains(responseLower, strings.ToLower(p.Name)) {
			continue
		}

		if prices := mentionedPrices(response); len(prices) > 0 {
			matched := false
			for _, price := range prices {
				if abs(price-p.Price) <= 200 {
					matched = true
					break
				}
			}
			if !matched {
				inconsistencies = append(inconsistencies, Inconsistency{
					Property:    p.Name,
					Field:       "price",
					AIValue:     fmt.Sprintf("$%.0f", prices[0]),
					ActualValue: fmt.Sprintf("$%.0f", p.Price),
				})
			}
		}

		if actual, ok := p.WalkingDistance(); ok {
			if m := minutesRe.FindStringSubmatch(response); m != nil {
				if stated, err := strconv.Atoi(m[1]); err == nil {
					diff := stated - actual
					if diff < 0 {
						diff = -diff
					}
					if diff > 5 {
						inconsistencies = append(inconsistencies, Inconsistency{
							Property:    p.Name,
							Field:       "walkingDistance",
							AIValue:     fmt.Sprintf("%d min", stated),
							ActualValue: fmt.Sprintf("%d min", actual),
						})
					}
				}
			}
		}
	}

	return len(inconsistencies) == 0, inconsistencies
}

func mentionedPrices(response string) []float64 {
	var prices []float64
	for _, m := range dollarRe.FindAllStringSubmatch(response, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			prices = append(prices, v)
		}
	}
	return prices
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
