package models

// BudgetRange is an inclusive monthly per-person budget in dollars.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ExplicitPreferences are requirements the user has stated directly.
type ExplicitPreferences struct {
	Budget             *BudgetRange `json:"budget,omitempty"`
	LocationPriorities []string     `json:"locationPriorities,omitempty"`
	MustHaveAmenities  []string     `json:"mustHaveAmenities,omitempty"`
	DealBreakers       []string     `json:"dealBreakers,omitempty"`
}

// ImplicitPreferences are inferred weights on a 0-1 scale.
type ImplicitPreferences struct {
	// ValueSensitivity: higher means more price sensitive.
	ValueSensitivity float64 `json:"valueSensitivity"`
	// CommuteTolerance: higher means more willing to walk.
	CommuteTolerance  float64            `json:"commuteTolerance"`
	AmenityImportance map[string]float64 `json:"amenityImportance,omitempty"`
}

// UserCognitiveModel captures what is known about the user's preferences.
// It is supplied by the caller; a nil model degrades ranking to a flat
// default score.
type UserCognitiveModel struct {
	ExplicitPreferences ExplicitPreferences `json:"explicitPreferences"`
	ImplicitPreferences ImplicitPreferences `json:"implicitPreferences"`
}
