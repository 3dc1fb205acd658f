package verification

import (
	"regexp"
	"strings"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// SanitizeResponse removes every unverifiable property mention together with
// the remainder of its containing sentence, up to the next sentence-ending
// punctuation (English or Chinese).
func SanitizeResponse(response string, retrieved []models.Property) (string, []string) {
	verification := VerifyPropertyMentions(response, retrieved)
	sanitized := response
	var removed []string

	for _, mention := range verification.InvalidMentions {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(mention) + `\b[^。！？.!?]*[。！？.!?]?`)
		if err != nil {
			continue
		}
		for _, m := range re.FindAllString(sanitized, -1) {
			removed = append(removed, m)
		}
		sanitized = re.ReplaceAllString(sanitized, "")
	}

	return strings.TrimSpace(sanitized), removed
}

// FilterResult is the composed verification outcome consumed by the
// orchestration layer.
type FilterResult struct {
	VerifiedProperties []models.Property `json:"verifiedProperties"`
	Metrics            *RAGMetrics       `json:"metrics"`
	SanitizedResponse  string            `json:"sanitizedResponse"`
}

// VerifyAndFilterProperties composes mention verification, metrics, and
// sanitization. When no property verifies, the full retrieved set is
// returned unfiltered so downstream rendering is never starved by an overly
// strict name match; the same fallback applies when the generation filters
// would empty the set.
func VerifyAndFilterProperties(response string, retrieved []models.Property, filters *models.PropertyFilters) *FilterResult {
	mentions := VerifyPropertyMentions(response, retrieved)

	verified := mentions.VerifiedProperties
	if len(verified) == 0 {
		verified = retrieved
	}

	if filters != nil {
		if filtered := filters.Apply(verified); len(filtered) > 0 {
			verified = filtered
		}
	}

	metrics := CalculateRAGMetrics(response, retrieved, verified)
	sanitized, _ := SanitizeResponse(response, retrieved)

	return &FilterResult{
		VerifiedProperties: verified,
		Metrics:            metrics,
		SanitizedResponse:  sanitized,
	}
}
