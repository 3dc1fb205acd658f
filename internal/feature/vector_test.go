package feature

import (
	"math"
	"testing"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

func sampleProperty() *models.Property {
	return &models.Property{
		ID:                       "p1",
		Name:                     "The Axis",
		Price:                    1800,
		Bedrooms:                 2,
		Bathrooms:                1,
		Amenities:                []string{"In-unit laundry", "Gym"},
		Description:              "Modern apartment near University of Pennsylvania",
		WalkingDistanceToWharton: models.IntPtr(8),
	}
}

func TestExtractPropertyFeatures(t *testing.T) {
	v := ExtractPropertyFeatures(sampleProperty())
	if len(v) != VectorLength {
		t.Fatalf("vector length = %d, want %d", len(v), VectorLength)
	}
	if v[0] != 1800.0/3000 {
		t.Errorf("price slot = %f, want %f", v[0], 1800.0/3000)
	}
	if v[1] != 2.0/3 {
		t.Errorf("bedroom slot = %f, want %f", v[1], 2.0/3)
	}
	if v[3] != 8.0/20 {
		t.Errorf("distance slot = %f, want %f", v[3], 8.0/20)
	}
	// laundry, gym amenity tags and "modern" in the description.
	if v[4] != 1 {
		t.Error("laundry flag should be set")
	}
	if v[5] != 1 {
		t.Error("gym flag should be set")
	}
	if v[6] != 0 {
		t.Error("parking flag should be clear")
	}
	if v[7] != 1 {
		t.Error("modern flag should be set from description")
	}
}

func TestExtractPropertyFeaturesUnknownDistance(t *testing.T) {
	p := sampleProperty()
	p.WalkingDistanceToWharton = nil
	v := ExtractPropertyFeatures(p)
	if v[3] != float64(UnknownPropertyDistance)/20 {
		t.Errorf("unknown distance slot = %f, want %f", v[3], float64(UnknownPropertyDistance)/20)
	}
}

func TestExtractQueryFeatures(t *testing.T) {
	v := ExtractQueryFeatures("2 bedroom with gym near Wharton under $2000")
	if len(v) != VectorLength {
		t.Fatalf("vector length = %d, want %d", len(v), VectorLength)
	}
	if v[0] != 2000*1.2/3000 {
		t.Errorf("price slot = %f, want %f", v[0], 2000*1.2/3000)
	}
	if v[1] != 2.0/3 {
		t.Errorf("bedroom slot = %f, want %f", v[1], 2.0/3)
	}
	if v[3] != 10.0/20 {
		t.Errorf("proximity distance slot = %f, want %f", v[3], 10.0/20)
	}
	if v[5] != 1 {
		t.Error("gym flag should be set")
	}
	if v[4] != 0 {
		t.Error("laundry flag should be clear")
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float64{0.5, 0.3, 0.2, 0.1, 1, 0}

	if got := CosineSimilarity(a, a); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("self similarity = %f, want 1.0", got)
	}
	if got := CosineSimilarity(a, []float64{0, 0, 0, 0, 0, 0}); got != 0 {
		t.Errorf("zero vector similarity = %f, want 0", got)
	}
	if got := CosineSimilarity(a, []float64{1, 2}); got != 0 {
		t.Errorf("length mismatch similarity = %f, want 0", got)
	}
	if got := CosineSimilarity([]float64{1, 0}, []float64{0, 1}); got != 0 {
		t.Errorf("orthogonal similarity = %f, want 0", got)
	}
}

func TestQueryPropertyVectorsAlign(t *testing.T) {
	q := ExtractQueryFeatures("有洗烘的两卧")
	p := ExtractPropertyFeatures(sampleProperty())
	if len(q) != len(p) {
		t.Fatalf("query and property vector lengths differ: %d vs %d", len(q), len(p))
	}
}
