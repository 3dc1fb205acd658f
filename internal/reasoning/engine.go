// Package reasoning implements the multi-stage reasoning pipeline:
// clarification, strategy selection, and personalized ranking.
package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/llm"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// ClarificationResult reports whether a query needs follow-up questions
// before retrieval is worthwhile.
type ClarificationResult struct {
	NeedsClarification     bool     `json:"needsClarification"`
	ClarifiedQuery         string   `json:"clarifiedQuery"`
	MissingInfo            []string `json:"missingInfo"`
	ClarificationQuestions []string `json:"clarificationQuestions,omitempty"`
}

// Engine runs the reasoning stages. The LLM client is optional; without one
// the engine is purely heuristic.
type Engine struct {
	client llm.Client
	logger *zap.Logger
}

// NewEngine returns a reasoning engine. client may be nil.
func NewEngine(client llm.Client, logger *zap.Logger) *Engine {
	return &Engine{client: client, logger: logger}
}

const clarifyPromptTemplate = `You are an experienced rental consultant. Analyze the user query and identify if critical information is MISSING.

User Query: "%s"

Previous conversation context:
%s

IMPORTANT: Only request clarification if information is TRULY MISSING and CRITICAL for the search. For example:
- "Apartments near Wharton" - has location, NO clarification needed
- "Budget $1500-2000 near Wharton" - has location and budget, NO clarification needed
- "Apartments" - very vague, clarification needed

Aspects to check:
1. Budget range (ONLY if completely missing AND user seems budget-conscious)
2. Room type preference (ONLY if critical for filtering)
3. Commute preference (ONLY if location is vague)
4. Must-have amenities (ONLY if user has specific needs mentioned)
5. Timeline (ONLY if urgent timing matters)

Return JSON format:
{
  "needsClarification": boolean (true ONLY if information is truly missing),
  "clarifiedQuery": "the refined query (use original if clarification not needed)",
  "missingInfo": ["list of missing information types"],
  "clarificationQuestions": ["specific questions to ask ONLY if clarification needed"]
}

If the query contains location (Wharton, University City, etc.) and some basic criteria, set needsClarification to false.`

// ClarifyNeeds asks the LLM whether the query is underspecified. It fails
// open: on any call or parse failure the query is used as-is.
func (e *Engine) ClarifyNeeds(ctx context.Context, query string, history []models.ChatTurn) *ClarificationResult {
	passThrough := &ClarificationResult{
		NeedsClarification: false,
		ClarifiedQuery:     query,
		MissingInfo:        []string{},
	}
	if e.client == nil {
		return passThrough
	}

	reply, err := e.client.Complete(ctx, llm.Request{
		System:   fmt.Sprintf(clarifyPromptTemplate, query, formatHistory(history)),
		User:     query,
		JSONMode: true,
	})
	if err != nil {
		e.logger.Warn("clarification call failed, proceeding without", zap.Error(err))
		return passThrough
	}

	var result ClarificationResult
	if err := json.Unmarshal([]byte(reply), &result); err != nil {
		e.logger.Warn("clarification reply was not valid JSON", zap.Error(err))
		return passThrough
	}
	if result.ClarifiedQuery == "" {
		result.ClarifiedQuery = query
	}
	return &result
}

// formatHistory renders the last three turns for the clarification prompt.
func formatHistory(history []models.ChatTurn) string {
	if len(history) == 0 {
		return "None"
	}
	start := len(history) - 3
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, 3)
	for _, turn := range history[start:] {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
	}
	return strings.Join(lines, "\n")
}

var (
	strategyKeywordRe  = regexp.MustCompile(`(?i)\$[\d,]+|\d+\s*(bed|bedroom|bath|bathroom|min|minute|walk)`)
	strategySemanticRe = regexp.MustCompile(`near|close to|convenient|nice|good`)
)

// SelectSearchStrategy is the engine's own heuristic strategy picker, usable
// without retrieval. It deliberately differs from routing.HeuristicRouter:
// its semantic signal includes proximity words like "near".
func (e *Engine) SelectSearchStrategy(query string) models.Strategy {
	lower := strings.ToLower(query)

	hasKeywords := strategyKeywordRe.MatchString(query) ||
		strings.Contains(lower, "budget") || strings.Contains(lower, "price")
	isSemantic := strategySemanticRe.MatchString(lower)

	switch {
	case hasKeywords && isSemantic:
		return models.StrategyHybrid
	case hasKeywords:
		return models.StrategyKeyword
	default:
		return models.StrategySemantic
	}
}
