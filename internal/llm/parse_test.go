package llm

import (
	"strings"
	"testing"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantReply    string
		wantFilters  bool
		wantMaxPrice float64
	}{
		{
			name:         "wrapped filter tag",
			raw:          "I found 2 great options for you.\n[DATA]{\"filters\": {\"maxPrice\": 2000, \"amenities\": [\"In-unit laundry\"]}}",
			wantReply:    "I found 2 great options for you.",
			wantFilters:  true,
			wantMaxPrice: 2000,
		},
		{
			name:         "bare filter object",
			raw:          "这里有两个符合的房源。\n[DATA]{\"maxPrice\": 1800}",
			wantReply:    "这里有两个符合的房源。",
			wantFilters:  true,
			wantMaxPrice: 1800,
		},
		{
			name:        "no tag",
			raw:         "Could you share your budget range?",
			wantReply:   "Could you share your budget range?",
			wantFilters: false,
		},
		{
			name:        "malformed payload keeps reply",
			raw:         "Here are the listings.\n[DATA]{not json",
			wantReply:   "Here are the listings.",
			wantFilters: false,
		},
		{
			name:        "empty filter tag",
			raw:         "Nothing matched.\n[DATA]{}",
			wantReply:   "Nothing matched.",
			wantFilters: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, filters := ParseResponse(tt.raw)
			if reply != tt.wantReply {
				t.Errorf("reply = %q, want %q", reply, tt.wantReply)
			}
			if (filters != nil) != tt.wantFilters {
				t.Fatalf("filters = %+v, want present=%v", filters, tt.wantFilters)
			}
			if tt.wantFilters {
				if filters.MaxPrice == nil || *filters.MaxPrice != tt.wantMaxPrice {
					t.Errorf("maxPrice = %v, want %v", filters.MaxPrice, tt.wantMaxPrice)
				}
			}
		})
	}
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bold stripped", in: "**The Axis** is a strong pick", want: "The Axis is a strong pick"},
		{name: "header stripped", in: "## Top Picks\nThe Axis", want: "Top Picks\nThe Axis"},
		{name: "list markers stripped", in: "- The Axis\n- evo", want: "The Axis\nevo"},
		{name: "code ticks stripped", in: "try `evo` downtown", want: "try evo downtown"},
		{name: "section marker stripped", in: "💬 自然语言总结：I found two places", want: "I found two places"},
		{name: "blank runs collapsed", in: "one\n\n\n\ntwo", want: "one\n\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanResponse(tt.in); got != tt.want {
				t.Errorf("CleanResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectStage(t *testing.T) {
	tests := []struct {
		name    string
		history []models.ChatTurn
		want    string
	}{
		{name: "no history", history: nil, want: "initial"},
		{name: "wharton", history: []models.ChatTurn{{Role: "user", Content: "How far is it from Wharton?"}}, want: "location_focused"},
		{name: "budget", history: []models.ChatTurn{{Role: "user", Content: "my budget is $1800"}}, want: "budget_focused"},
		{name: "amenity", history: []models.ChatTurn{{Role: "user", Content: "does it have in-unit laundry?"}}, want: "amenity_focused"},
		{name: "explore", history: []models.ChatTurn{{Role: "user", Content: "show me other options"}}, want: "exploring"},
		{name: "compare", history: []models.ChatTurn{{Role: "user", Content: "compare these two"}}, want: "comparing"},
		{name: "fallthrough", history: []models.ChatTurn{{Role: "user", Content: "something quieter please"}}, want: "refining"},
		{
			name: "last user turn wins",
			history: []models.ChatTurn{
				{Role: "user", Content: "near Wharton please"},
				{Role: "assistant", Content: "Sure, here are a few."},
				{Role: "user", Content: "what about the price?"},
			},
			want: "budget_focused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectStage(tt.history); got.stage != tt.want {
				t.Errorf("detectStage() stage = %q, want %q", got.stage, tt.want)
			}
		})
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	properties := []models.Property{
		{
			ID: "p1", Name: "The Axis", Address: "20 S 36th St, Philadelphia, PA",
			Price: 1800, Bedrooms: 2, Bathrooms: 1,
			Amenities:                []string{"In-unit laundry", "Gym"},
			WalkingDistanceToWharton: models.IntPtr(8),
		},
		{
			ID: "p2", Name: "evo", Address: "2116 Chestnut St, Philadelphia, PA",
			Price: 1650, Bedrooms: 1, Bathrooms: 1,
		},
	}
	history := []models.ChatTurn{{Role: "user", Content: "2 bedroom near Wharton"}}

	prompt := BuildSystemPrompt(properties, history)

	for _, want := range []string{"The Axis", "evo", "8分钟", "[DATA]", "location_focused"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.Contains(prompt, "N/A") {
		t.Error("unknown walking distance should render as N/A")
	}
	if !strings.Contains(prompt, "Previous messages:") {
		t.Error("prompt missing conversation context")
	}
}

func TestFormatPropertiesForPrompt_empty(t *testing.T) {
	if got := FormatPropertiesForPrompt(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
