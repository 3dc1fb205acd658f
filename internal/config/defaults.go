package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if len(cfg.Data.Paths) == 0 && cfg.Data.SQLitePath == "" {
		cfg.Data.UseSampleData = true
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-3.5-turbo"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 30
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 10
	}
	if cfg.Search.SemanticCutoff == 0 {
		cfg.Search.SemanticCutoff = 0.3
	}
	if cfg.Search.VectorWeight == 0 && cfg.Search.TextWeight == 0 {
		cfg.Search.VectorWeight = 0.7
		cfg.Search.TextWeight = 0.3
	}
	if cfg.Search.ConfidenceDivisor == 0 {
		cfg.Search.ConfidenceDivisor = 5
	}
	if cfg.Search.CacheSize == 0 {
		cfg.Search.CacheSize = 256
	}
	if cfg.Search.CacheTTLSeconds == 0 {
		cfg.Search.CacheTTLSeconds = 300
	}
	applyKeywordDefaults(&cfg.Search.Keyword)
}

func applyKeywordDefaults(kw *KeywordConfig) {
	if kw.PriceWeight == 0 {
		kw.PriceWeight = 3
	}
	if kw.BudgetApproxWeight == 0 {
		kw.BudgetApproxWeight = 2
	}
	if kw.RoomWeight == 0 {
		kw.RoomWeight = 2
	}
	if kw.AmenityWeight == 0 {
		kw.AmenityWeight = 2
	}
	if kw.ParkingWeight == 0 {
		kw.ParkingWeight = 1
	}
	if kw.ProximityWeight == 0 {
		kw.ProximityWeight = 3
	}
	if kw.DistanceWeight == 0 {
		kw.DistanceWeight = 2
	}
	if kw.PriceTolerance == 0 {
		kw.PriceTolerance = 200
	}
	if kw.DistanceTolerance == 0 {
		kw.DistanceTolerance = 3
	}
	if kw.NearbyMaxDistance == 0 {
		kw.NearbyMaxDistance = 10
	}
}

// DefaultSearchConfig returns a SearchConfig with all defaults applied.
// Used by callers that run retrieval without a config file.
func DefaultSearchConfig() *SearchConfig {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return &cfg.Search
}
