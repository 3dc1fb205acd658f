package verification

import (
	"fmt"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// RAGMetrics are quality metrics for one generated response, computed fresh
// per verification call. All scores are 0-1 except the counts.
type RAGMetrics struct {
	RetrievalAccuracy float64 `json:"retrievalAccuracy"`
	ResponseAccuracy  float64 `json:"responseAccuracy"`
	// HallucinationScore is 0 only when every confidently-identified
	// property-like name resolves to a retrieved property. Lower is better.
	HallucinationScore     float64  `json:"hallucinationScore"`
	PropertyMentionedCount int      `json:"propertyMentionedCount"`
	PropertyVerifiedCount  int      `json:"propertyVerifiedCount"`
	DataConsistency        float64  `json:"dataConsistency"`
	Warnings               []string `json:"warnings"`
}

// CalculateRAGMetrics computes the full metric set for a response against
// the retrieved candidates. Problems are reported as warnings, never errors.
func CalculateRAGMetrics(response string, retrieved, final []models.Property) *RAGMetrics {
	warnings := []string{}

	mentions := VerifyPropertyMentions(response, retrieved)
	_, inconsistencies := VerifyDataConsistency(response, mentions.VerifiedProperties)

	retrievalAccuracy := 0.0
	if len(retrieved) > 0 {
		retrievalAccuracy = float64(len(retrieved)) / 10
		if retrievalAccuracy > 1 {
			retrievalAccuracy = 1
		}
	}

	responseAccuracy := 1.0 // nothing mentioned counts as accurate
	if len(mentions.MentionedProperties) > 0 {
		responseAccuracy = float64(len(mentions.VerifiedProperties)) / float64(len(mentions.MentionedProperties))
	}

	hallucinationScore := 0.0
	if len(mentions.InvalidMentions) > 0 {
		hallucinationScore = float64(len(mentions.InvalidMentions)) / 5
		if hallucinationScore > 1 {
			hallucinationScore = 1
		}
	}

	dataConsistency := 1.0
	if len(inconsistencies) > 0 {
		dataConsistency = 1 - float64(len(inconsistencies))/float64(len(mentions.VerifiedProperties))
		if dataConsistency < 0 {
			dataConsistency = 0
		}
	}

	if n := len(mentions.InvalidMentions); n > 0 {
		warnings = append(warnings, fmt.Sprintf("detected %d unverified property mention(s)", n))
	}
	if n := len(inconsistencies); n > 0 {
		warnings = append(warnings, fmt.Sprintf("detected %d data inconsistency(ies)", n))
	}
	if len(mentions.MentionedProperties) == 0 && len(retrieved) > 0 {
		warnings = append(warnings, "response does not mention any retrieved property")
	}
	if len(retrieved) == 0 {
		warnings = append(warnings, "no properties were retrieved")
	}

	return &RAGMetrics{
		RetrievalAccuracy:      retrievalAccuracy,
		ResponseAccuracy:       responseAccuracy,
		HallucinationScore:     hallucinationScore,
		PropertyMentionedCount: len(mentions.MentionedProperties),
		PropertyVerifiedCount:  len(mentions.VerifiedProperties),
		DataConsistency:        dataConsistency,
		Warnings:               warnings,
	}
}
