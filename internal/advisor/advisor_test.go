package advisor

import (
	"strings"
	"testing"
	"time"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

func fixedClock(month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(2026, month, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestUnderstandContextSeason(t *testing.T) {
	tests := []struct {
		name     string
		month    time.Month
		wantRush bool
	}{
		{name: "march is off-peak", month: time.March, wantRush: false},
		{name: "april opens the rush", month: time.April, wantRush: true},
		{name: "june mid rush", month: time.June, wantRush: true},
		{name: "august closes the rush", month: time.August, wantRush: true},
		{name: "november is off-peak", month: time.November, wantRush: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewWithClock(fixedClock(tt.month)).UnderstandContext("")
			if info.Temporal.IsRushSeason != tt.wantRush {
				t.Errorf("IsRushSeason = %v, want %v", info.Temporal.IsRushSeason, tt.wantRush)
			}
			wantSeason := SeasonOffPeak
			if tt.wantRush {
				wantSeason = SeasonPeak
			}
			if info.Temporal.Season != wantSeason {
				t.Errorf("Season = %q, want %q", info.Temporal.Season, wantSeason)
			}
			if info.Temporal.Month != int(tt.month) {
				t.Errorf("Month = %d, want %d", info.Temporal.Month, int(tt.month))
			}
		})
	}
}

func TestUnderstandContextStaticFields(t *testing.T) {
	info := NewWithClock(fixedClock(time.May)).UnderstandContext("")

	if info.Market.PriceTrend != "rising" || info.Market.Availability != "tight" {
		t.Errorf("unexpected market context: %+v", info.Market)
	}
	if info.Geographic.Area != "University City" || info.Geographic.CompetitionLevel != "high" {
		t.Errorf("unexpected geographic context: %+v", info.Geographic)
	}
	if info.User.Stage != "exploring" {
		t.Errorf("Stage = %q, want exploring", info.User.Stage)
	}
}

func TestUrgency(t *testing.T) {
	tests := []struct {
		name     string
		timeline string
		month    time.Month
		want     string
	}{
		{name: "no timeline", timeline: "", month: time.May, want: UrgencyLow},
		{name: "unparseable", timeline: "as soon as possible", month: time.May, want: UrgencyMedium},
		{name: "same month", timeline: "moving in May", month: time.May, want: UrgencyHigh},
		{name: "two months out", timeline: "July move-in", month: time.May, want: UrgencyHigh},
		{name: "four months out", timeline: "September 2026", month: time.May, want: UrgencyMedium},
		{name: "far out", timeline: "next January", month: time.May, want: UrgencyLow},
		{name: "wrap around year end", timeline: "January lease", month: time.December, want: UrgencyHigh},
		{name: "case insensitive", timeline: "AUGUST", month: time.July, want: UrgencyHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewWithClock(fixedClock(tt.month)).UnderstandContext(tt.timeline)
			if info.User.Urgency != tt.want {
				t.Errorf("urgency(%q) in %v = %q, want %q", tt.timeline, tt.month, info.User.Urgency, tt.want)
			}
		})
	}
}

func TestProvideProactiveSuggestions(t *testing.T) {
	a := NewWithClock(fixedClock(time.June))
	properties := []models.Property{{Name: "The Axis"}, {Name: "evo"}}

	t.Run("rush season with urgent timeline", func(t *testing.T) {
		info := a.UnderstandContext("July move-in")
		got := a.ProvideProactiveSuggestions(info, properties)
		if len(got) != 4 {
			t.Fatalf("got %d suggestions, want 4: %v", len(got), got)
		}
		if !strings.Contains(got[0], "June") {
			t.Errorf("season suggestion should name the month: %q", got[0])
		}
		if !strings.Contains(got[3], "2 options") {
			t.Errorf("supply suggestion should count the results: %q", got[3])
		}
	})

	t.Run("off-peak low urgency", func(t *testing.T) {
		offPeak := NewWithClock(fixedClock(time.November))
		info := offPeak.UnderstandContext("")
		got := offPeak.ProvideProactiveSuggestions(info, properties)
		// Price trend and tight supply still apply year round.
		if len(got) != 2 {
			t.Fatalf("got %d suggestions, want 2: %v", len(got), got)
		}
	})
}

func TestGenerateComparativeAnalysis(t *testing.T) {
	a := New()

	t.Run("fewer than two is empty", func(t *testing.T) {
		if got := a.GenerateComparativeAnalysis([]models.Property{{Name: "The Axis", Price: 1800}}); got != "" {
			t.Errorf("expected empty analysis, got %q", got)
		}
	})

	t.Run("top three only", func(t *testing.T) {
		properties := []models.Property{
			{Name: "The Axis", Price: 1800, WalkingDistanceToWharton: models.IntPtr(8)},
			{Name: "evo", Price: 1650, WalkingDistanceToWharton: models.IntPtr(5)},
			{Name: "Cira Green", Price: 2200, WalkingDistanceToWharton: models.IntPtr(7)},
			{Name: "Penn Park Residences", Price: 950},
		}
		got := a.GenerateComparativeAnalysis(properties)

		if !strings.Contains(got, "$1650 - $2200") {
			t.Errorf("price range should span the top three only: %q", got)
		}
		if !strings.Contains(got, "average: $1883") {
			t.Errorf("unexpected average price: %q", got)
		}
		if !strings.Contains(got, "Average walking distance: 7 minutes") {
			t.Errorf("unexpected average distance: %q", got)
		}
		// The Axis has the lowest price-per-walk-minute ratio of the top three.
		if !strings.Contains(got, "Best value: The Axis") {
			t.Errorf("unexpected value leader: %q", got)
		}
	})

	t.Run("unknown distance value leader", func(t *testing.T) {
		properties := []models.Property{
			{Name: "Penn Park Residences", Price: 120},
			{Name: "The Axis", Price: 1800, WalkingDistanceToWharton: models.IntPtr(8)},
		}
		got := a.GenerateComparativeAnalysis(properties)
		if !strings.Contains(got, "Best value: Penn Park Residences at $120/person.") {
			t.Errorf("unexpected value leader line: %q", got)
		}
	})
}
