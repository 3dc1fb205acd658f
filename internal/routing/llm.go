package routing

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/llm"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

const routeSystemPrompt = "你是一个查询分类器，只返回一个词：keyword、semantic 或 hybrid。"

const routePromptTemplate = `你是一个查询分类器。请分析用户的租房查询，判断最适合的检索方式：

查询类型：
- keyword: 明确的条件（"$1500以下 2b2b 带洗烘"、"预算$1800-2000"、"1卧1卫"）
- semantic: 模糊/语义需求（"安静的学习环境"、"社交氛围好的"、"适合研究生的"、"交通便利的"）
- hybrid: 混合型（"离学校近的舒适公寓"、"Wharton附近带健身房的"）

用户查询：%s

只返回 keyword、semantic 或 hybrid 中的一个词，不要其他内容。`

// LLMRouter classifies queries with a single short completion.
type LLMRouter struct {
	client llm.Client
	logger *zap.Logger
}

// NewLLMRouter returns a Router backed by the completion client.
func NewLLMRouter(client llm.Client, logger *zap.Logger) *LLMRouter {
	return &LLMRouter{client: client, logger: logger}
}

// Route asks the model for a single label. An unrecognized reply is treated
// as hybrid; only a failed call is an error (so the fallback can take over).
func (r *LLMRouter) Route(ctx context.Context, query string) (models.Strategy, error) {
	reply, err := r.client.Complete(ctx, llm.Request{
		System:    routeSystemPrompt,
		User:      fmt.Sprintf(routePromptTemplate, query),
		MaxTokens: 10,
	})
	if err != nil {
		return "", fmt.Errorf("route classification failed: %w", err)
	}
	strategy := parseStrategyLabel(reply)
	r.logger.Debug("llm routed query",
		zap.String("query", query),
		zap.String("reply", reply),
		zap.String("strategy", string(strategy)),
	)
	return strategy, nil
}

// parseStrategyLabel finds the first strategy label in the reply, defaulting
// to hybrid when none is present.
func parseStrategyLabel(reply string) models.Strategy {
	lower := strings.ToLower(strings.TrimSpace(reply))
	for _, s := range []models.Strategy{models.StrategyKeyword, models.StrategySemantic, models.StrategyHybrid} {
		if strings.Contains(lower, string(s)) {
			return s
		}
	}
	return models.StrategyHybrid
}
