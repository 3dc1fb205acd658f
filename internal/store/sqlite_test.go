package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "arlook.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	in := []models.Property{
		{
			ID: "p1", Name: "The Axis", Address: "3800 Chestnut St, Philadelphia, PA",
			Latitude: 39.9526, Longitude: -75.1652,
			Price: 1800, Bedrooms: 2, Bathrooms: 1,
			Amenities:                []string{"In-unit laundry", "Gym"},
			Description:              "Modern apartment near Penn",
			WalkingDistanceToWharton: models.IntPtr(8),
		},
		{
			// No id and no walking distance.
			Name: "evo", Address: "3401 Walnut St, Philadelphia, PA",
			Latitude: 39.9550, Longitude: -75.1920,
			Price: 1650, Bedrooms: 1, Bathrooms: 1,
		},
	}

	if err := s.ReplaceAll(ctx, in); err != nil {
		t.Fatal(err)
	}

	out, err := s.GetAllProperties(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d properties, want 2", len(out))
	}

	// Rows come back ordered by price.
	if out[0].Name != "evo" || out[1].Name != "The Axis" {
		t.Errorf("unexpected order: %s, %s", out[0].Name, out[1].Name)
	}
	if out[0].ID == "" {
		t.Error("expected a generated id for the nameless insert")
	}
	if _, ok := out[0].WalkingDistance(); ok {
		t.Error("missing walking distance should round trip as unknown")
	}

	axis := out[1]
	if d, ok := axis.WalkingDistance(); !ok || d != 8 {
		t.Errorf("walk = %d, %v; want 8, true", d, ok)
	}
	if len(axis.Amenities) != 2 || axis.Amenities[0] != "In-unit laundry" {
		t.Errorf("amenities did not round trip: %v", axis.Amenities)
	}

	if n, err := s.Count(ctx); err != nil || n != 2 {
		t.Errorf("Count() = %d, %v; want 2, nil", n, err)
	}
}

func TestSQLiteStoreReplaceAllClearsPrevious(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	if err := s.ReplaceAll(ctx, SampleProperties()); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceAll(ctx, SampleProperties()[:2]); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.Count(ctx); n != 2 {
		t.Errorf("Count() = %d after replace, want 2", n)
	}
}
