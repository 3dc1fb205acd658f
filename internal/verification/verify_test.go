package verification

import (
	"strings"
	"testing"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

func retrievedSet() []models.Property {
	return []models.Property{
		{ID: "1", Name: "The Axis", Price: 1800, WalkingDistanceToWharton: models.IntPtr(8)},
		{ID: "2", Name: "evo", Price: 1650, WalkingDistanceToWharton: models.IntPtr(5)},
		{ID: "3", Name: "Cira Green", Price: 2200, WalkingDistanceToWharton: models.IntPtr(7)},
	}
}

func TestVerifyPropertyMentionsFullName(t *testing.T) {
	response := "I recommend The Axis at $1800, about 8 min from campus."
	result := VerifyPropertyMentions(response, retrievedSet())
	if len(result.VerifiedProperties) != 1 || result.VerifiedProperties[0].Name != "The Axis" {
		t.Fatalf("verified = %v", result.MentionedProperties)
	}
	if !result.IsValid {
		t.Errorf("unexpected invalid mentions: %v", result.InvalidMentions)
	}
}

func TestVerifyPropertyMentionsHallucination(t *testing.T) {
	response := "The Axis is great, but Luxury Tower offers better views for $1900."
	result := VerifyPropertyMentions(response, retrievedSet())
	if len(result.VerifiedProperties) != 1 {
		t.Fatalf("verified count = %d, want 1", len(result.VerifiedProperties))
	}
	if result.IsValid {
		t.Fatal("expected invalid mentions")
	}
	found := false
	for _, m := range result.InvalidMentions {
		if strings.Contains(m, "Luxury Tower") {
			found = true
		}
	}
	if !found {
		t.Errorf("invalid mentions %v missing Luxury Tower", result.InvalidMentions)
	}
}

func TestVerifyPropertyMentionsNoVerifiedNoScan(t *testing.T) {
	// Without a single verified property the title-case scan stays off,
	// so generic replies do not produce false positives.
	response := "Happy Hunting! Let me know your Budget Range soon."
	result := VerifyPropertyMentions(response, retrievedSet())
	if len(result.VerifiedProperties) != 0 {
		t.Fatalf("verified count = %d, want 0", len(result.VerifiedProperties))
	}
	if !result.IsValid {
		t.Errorf("unexpected invalid mentions: %v", result.InvalidMentions)
	}
}

func TestVerifyPropertyMentionsStopWords(t *testing.T) {
	response := "The Axis sits right by Wharton on Chestnut in University City."
	result := VerifyPropertyMentions(response, retrievedSet())
	for _, m := range result.InvalidMentions {
		if m == "Wharton" || m == "Chestnut" {
			t.Errorf("stop word %q flagged as hallucination", m)
		}
	}
}

func TestVerifyDataConsistency(t *testing.T) {
	verified := retrievedSet()[:1] // The Axis, $1800, 8 min

	t.Run("consistent", func(t *testing.T) {
		ok, inconsistencies := VerifyDataConsistency("The Axis costs $1850 and is 10 min away.", verified)
		if !ok {
			t.Errorf("unexpected inconsistencies: %v", inconsistencies)
		}
	})

	t.Run("price off by more than 200", func(t *testing.T) {
		ok, inconsistencies := VerifyDataConsistency("The Axis costs $2500.", verified)
		if ok {
			t.Fatal("expected price inconsistency")
		}
		if inconsistencies[0].Field != "price" {
			t.Errorf("field = %s, want price", inconsistencies[0].Field)
		}
	})

	t.Run("walk time off by more than 5", func(t *testing.T) {
		ok, inconsistencies := VerifyDataConsistency("The Axis costs $1800 and is 20 min away.", verified)
		if ok {
			t.Fatal("expected distance inconsistency")
		}
		if inconsistencies[0].Field != "walkingDistance" {
			t.Errorf("field = %s, want walkingDistance", inconsistencies[0].Field)
		}
	})

	t.Run("unmentioned property skipped", func(t *testing.T) {
		ok, _ := VerifyDataConsistency("Prices start at $900 around here.", verified)
		if !ok {
			t.Error("properties not named in the response should not be checked")
		}
	})
}

func TestCalculateRAGMetrics(t *testing.T) {
	retrieved := retrievedSet()
	response := "The Axis at $1800 and evo at $1650 both fit."
	metrics := CalculateRAGMetrics(response, retrieved, retrieved[:2])

	if metrics.RetrievalAccuracy != 0.3 {
		t.Errorf("retrievalAccuracy = %f, want 0.3", metrics.RetrievalAccuracy)
	}
	if metrics.ResponseAccuracy != 1.0 {
		t.Errorf("responseAccuracy = %f, want 1.0", metrics.ResponseAccuracy)
	}
	if metrics.HallucinationScore != 0 {
		t.Errorf("hallucinationScore = %f, want 0", metrics.HallucinationScore)
	}
	if metrics.PropertyMentionedCount != 2 || metrics.PropertyVerifiedCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", metrics.PropertyMentionedCount, metrics.PropertyVerifiedCount)
	}
}

func TestCalculateRAGMetricsHallucination(t *testing.T) {
	retrieved := retrievedSet()
	response := "The Axis is fine but Grand Palace Suites is better."
	metrics := CalculateRAGMetrics(response, retrieved, retrieved)
	if metrics.HallucinationScore <= 0 {
		t.Errorf("hallucinationScore = %f, want > 0", metrics.HallucinationScore)
	}
	if len(metrics.Warnings) == 0 {
		t.Error("expected warnings")
	}
}

func TestSanitizeResponse(t *testing.T) {
	response := "The Axis is solid. Grand Palace Suites has a rooftop pool. Both are close."
	sanitized, removed := SanitizeResponse(response, retrievedSet())
	if strings.Contains(sanitized, "Grand Palace Suites") {
		t.Errorf("sanitized response still mentions hallucination: %q", sanitized)
	}
	if !strings.Contains(sanitized, "The Axis") {
		t.Error("sanitization dropped a verified mention")
	}
	if len(removed) == 0 {
		t.Error("expected removed mentions")
	}
}

func TestVerifyAndFilterNeverEmpty(t *testing.T) {
	retrieved := retrievedSet()

	t.Run("no verifiable mention falls back to retrieved", func(t *testing.T) {
		result := VerifyAndFilterProperties("Here are some great options for you!", retrieved, nil)
		if len(result.VerifiedProperties) != len(retrieved) {
			t.Errorf("got %d properties, want full retrieved set", len(result.VerifiedProperties))
		}
	})

	t.Run("filters that would empty the set are ignored", func(t *testing.T) {
		maxPrice := 100.0
		filters := &models.PropertyFilters{MaxPrice: &maxPrice}
		result := VerifyAndFilterProperties("The Axis at $1800 is my pick.", retrieved, filters)
		if len(result.VerifiedProperties) == 0 {
			t.Error("verification must never return an empty set")
		}
	})

	t.Run("filters applied when satisfiable", func(t *testing.T) {
		maxPrice := 1700.0
		filters := &models.PropertyFilters{MaxPrice: &maxPrice}
		result := VerifyAndFilterProperties("The Axis at $1800 or evo at $1650.", retrieved, filters)
		for _, p := range result.VerifiedProperties {
			if p.Price > maxPrice {
				t.Errorf("%s priced %f exceeds filter cap", p.Name, p.Price)
			}
		}
	})
}
