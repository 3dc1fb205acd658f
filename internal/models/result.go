package models

// Strategy selects which matcher(s) a retrieval runs.
type Strategy string

const (
	StrategyKeyword  Strategy = "keyword"
	StrategySemantic Strategy = "semantic"
	StrategyHybrid   Strategy = "hybrid"
)

// ParseStrategy returns the strategy named by s and whether it is valid.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategyKeyword, StrategySemantic, StrategyHybrid:
		return Strategy(s), true
	}
	return "", false
}

// RetrievalResult is the outcome of one retrieve call. It is immutable once
// returned; Properties is deduplicated by id and drawn from the input set.
type RetrievalResult struct {
	Properties []Property `json:"properties"`
	Strategy   Strategy   `json:"strategy"`
	// Confidence is a heuristic 0-1 score reflecting how many candidates were
	// found, not a calibrated probability.
	Confidence      float64    `json:"confidence"`
	KeywordMatches  []Property `json:"keyword_matches,omitempty"`
	SemanticMatches []Property `json:"semantic_matches,omitempty"`
}

// RankedProperty pairs a property with its personalized score and explanation.
type RankedProperty struct {
	Property
	MatchScore  float64 `json:"matchScore"`
	Explanation string  `json:"explanation"`
}

// ChatTurn is one message of the caller-supplied conversation history.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
