// Package pipeline orchestrates the full chat flow: clarification, retrieval,
// generation, verification, ranking, and contextual guidance.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/advisor"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/llm"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/reasoning"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/retrieval"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/store"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/verification"
)

// MaxMessageLength bounds a single chat message.
const MaxMessageLength = 5000

// Sanitized text replaces the raw reply only past this hallucination score.
const sanitizeThreshold = 0.5

// suggestions and analysis are appended only to substantial replies.
const enhanceMinLength = 200

// ChatRequest is one turn of the conversation.
type ChatRequest struct {
	Message   string                     `json:"message"`
	History   []models.ChatTurn          `json:"conversationHistory,omitempty"`
	UserModel *models.UserCognitiveModel `json:"userModel,omitempty"`
}

// ChatResponse carries the reply plus the retrieval and verification
// metadata the caller may surface.
type ChatResponse struct {
	Response            string                   `json:"response"`
	Properties          []models.RankedProperty  `json:"properties"`
	Count               int                      `json:"count"`
	Filters             *models.PropertyFilters  `json:"filters,omitempty"`
	RetrievedProperties []models.Property        `json:"retrieved_properties,omitempty"`
	VerifiedProperties  []models.Property        `json:"verified_properties,omitempty"`
	SearchStrategy      models.Strategy          `json:"search_strategy,omitempty"`
	Confidence          float64                  `json:"confidence"`
	Metrics             *verification.RAGMetrics `json:"rag_metrics,omitempty"`
	Suggestions         []string                 `json:"suggestions,omitempty"`
	NeedsMoreInfo       bool                     `json:"needs_more_info,omitempty"`
}

// Pipeline wires the RAG components together. A nil LLM client degrades to
// retrieval-only replies.
type Pipeline struct {
	store     store.Store
	retriever *retrieval.Retriever
	engine    *reasoning.Engine
	assistant *advisor.Advisor
	client    llm.Client
	logger    *zap.Logger
}

// New assembles a pipeline. client may be nil when no API key is configured.
func New(st store.Store, retriever *retrieval.Retriever, engine *reasoning.Engine, assistant *advisor.Advisor, client llm.Client, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		store:     st,
		retriever: retriever,
		engine:    engine,
		assistant: assistant,
		client:    client,
		logger:    logger,
	}
}

// Chat runs one conversation turn end to end.
func (p *Pipeline) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}
	if len(message) > MaxMessageLength {
		return nil, fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	}

	properties, err := p.store.GetAllProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}
	if len(properties) == 0 {
		return nil, fmt.Errorf("no property data available")
	}

	if p.client == nil {
		return p.retrievalOnly(ctx, message, properties), nil
	}

	clarification := p.engine.ClarifyNeeds(ctx, message, req.History)
	if clarification.NeedsClarification && len(clarification.ClarificationQuestions) > 0 {
		return clarificationResponse(clarification), nil
	}
	query := clarification.ClarifiedQuery
	if query == "" {
		query = message
	}

	result := p.retriever.Retrieve(ctx, query, properties)
	retrieved := result.Properties
	if len(retrieved) == 0 {
		// An empty retrieval still gets an answer grounded in the full set.
		retrieved = properties
	}

	raw, err := p.client.Complete(ctx, llm.Request{
		System: llm.BuildSystemPrompt(retrieved, req.History),
		User:   message,
	})
	if err != nil {
		p.logger.Warn("Generation failed, falling back to retrieval-only reply", zap.Error(err))
		return p.retrievalOnly(ctx, message, properties), nil
	}

	reply, filters := llm.ParseResponse(raw)
	if reply == "" {
		reply = raw
	}

	verified := verification.VerifyAndFilterProperties(reply, result.Properties, filters)
	if verified.Metrics.HallucinationScore > 0 {
		p.logger.Warn("Hallucination detected in generated reply",
			zap.Float64("score", verified.Metrics.HallucinationScore),
			zap.Strings("warnings", verified.Metrics.Warnings))
	}

	final := verified.VerifiedProperties
	ranked := p.engine.RankAndExplain(final, req.UserModel)

	info := p.assistant.UnderstandContext("")
	suggestions := p.assistant.ProvideProactiveSuggestions(info, final)
	analysis := p.assistant.GenerateComparativeAnalysis(final)

	response := reply
	if verified.Metrics.HallucinationScore > sanitizeThreshold {
		response = verified.SanitizedResponse
	}
	if len(response) > enhanceMinLength {
		if len(suggestions) > 0 {
			var b strings.Builder
			b.WriteString(response)
			b.WriteString("\n\nProactive Tips:\n")
			for i, s := range suggestions {
				fmt.Fprintf(&b, "%d. %s\n", i+1, s)
			}
			response = b.String()
		}
		if analysis != "" {
			response += "\n\n" + analysis
		}
	}

	p.logger.Info("Chat turn complete",
		zap.String("strategy", string(result.Strategy)),
		zap.Float64("confidence", result.Confidence),
		zap.Int("retrieved", len(result.Properties)),
		zap.Int("verified", len(verified.VerifiedProperties)),
		zap.Float64("hallucination_score", verified.Metrics.HallucinationScore))

	return &ChatResponse{
		Response:            response,
		Properties:          ranked,
		Count:               len(ranked),
		Filters:             filters,
		RetrievedProperties: result.Properties,
		VerifiedProperties:  verified.VerifiedProperties,
		SearchStrategy:      result.Strategy,
		Confidence:          result.Confidence,
		Metrics:             verified.Metrics,
		Suggestions:         suggestions,
	}, nil
}

// Search runs retrieval and ranking without generation. Used by the search
// endpoint and the CLI.
func (p *Pipeline) Search(ctx context.Context, query string, userModel *models.UserCognitiveModel) (*ChatResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	properties, err := p.store.GetAllProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}

	result := p.retriever.Retrieve(ctx, query, properties)
	ranked := p.engine.RankAndExplain(result.Properties, userModel)

	return &ChatResponse{
		Response:            fmt.Sprintf("Found %d matching properties", len(ranked)),
		Properties:          ranked,
		Count:               len(ranked),
		RetrievedProperties: result.Properties,
		SearchStrategy:      result.Strategy,
		Confidence:          result.Confidence,
	}, nil
}

// retrievalOnly answers without a language model: retrieve, rank, and build
// a short templated reply.
func (p *Pipeline) retrievalOnly(ctx context.Context, message string, properties []models.Property) *ChatResponse {
	result := p.retriever.Retrieve(ctx, message, properties)
	ranked := p.engine.RankAndExplain(result.Properties, nil)

	lower := strings.ToLower(message)
	var response string
	switch {
	case strings.Contains(lower, "wharton") || strings.Contains(lower, "附近"):
		response = fmt.Sprintf("Found %d properties near Wharton, highlighted on the map", len(ranked))
	case strings.Contains(lower, "洗烘") || strings.Contains(lower, "laundry"):
		response = fmt.Sprintf("Found %d properties with in-unit laundry, highlighted on the map", len(ranked))
	case strings.Contains(lower, "预算") || strings.Contains(lower, "1500") || strings.Contains(lower, "2000"):
		response = fmt.Sprintf("Found %d properties in your price range, highlighted on the map", len(ranked))
	default:
		response = fmt.Sprintf("Found %d matching properties, highlighted on the map", len(ranked))
	}

	return &ChatResponse{
		Response:            response,
		Properties:          ranked,
		Count:               len(ranked),
		RetrievedProperties: result.Properties,
		SearchStrategy:      result.Strategy,
		Confidence:          result.Confidence,
	}
}

func clarificationResponse(c *reasoning.ClarificationResult) *ChatResponse {
	var b strings.Builder
	b.WriteString("To help you find the best match, I need a bit more information:\n\n")
	for i, q := range c.ClarificationQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	b.WriteString("\nPlease provide these details so I can tailor my recommendations.")
	return &ChatResponse{
		Response:      b.String(),
		Properties:    []models.RankedProperty{},
		NeedsMoreInfo: true,
	}
}
