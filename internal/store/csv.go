package store

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// Wharton-area base coordinates used when a listing carries no explicit ones.
const (
	baseLatitude  = 39.9526
	baseLongitude = -75.1652
)

var (
	walkRe     = regexp.MustCompile(`(\d+)\s*min`)
	walkPlusRe = regexp.MustCompile(`(\d+)\s*\+\s*min`)
	priceRnge  = regexp.MustCompile(`([\d,]+)\s*[–-]\s*([\d,]+)`)
	priceOne   = regexp.MustCompile(`([\d,]+)`)
)

// LoadCSV reads listings from a headered CSV file. Both the legacy layout
// ("Walk to Wharton", "Studio/1B1B Price Range", "Amenities/Notes") and the
// current one ("Walk Time to Wharton", "Studio/1B1B Price", "Amenities",
// separate review columns) are recognized by header name.
func LoadCSV(path string) ([]models.Property, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	col := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		col[strings.TrimSpace(h)] = i
	}

	field := func(row []string, names ...string) string {
		for _, name := range names {
			if i, ok := col[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	var properties []models.Property
	for idx, row := range records[1:] {
		name := field(row, "Apartment Name", "Name")
		if name == "" {
			name = fmt.Sprintf("Apartment %d", idx+1)
		}
		address := field(row, "Address")

		walk := parseWalkingDistance(field(row, "Walk Time to Wharton", "Walk to Wharton"))
		price := parsePriceRange(field(row, "Studio/1B1B Price", "Studio/1B1B Price Range", "Price"))

		amenitiesStr := field(row, "Amenities", "Amenities/Notes")
		reviews := joinNonEmpty(". ",
			field(row, "Good Reviews"),
			field(row, "Bad Reviews"),
			field(row, "Good & Bad Reviews (see sources)"))
		safety := field(row, "Safety")

		amenities := parseAmenities(amenitiesStr, reviews)
		if strings.EqualFold(field(row, "Furnished"), "yes") {
			amenities = append(amenities, "Furnished")
		}

		lat, lng := approximateCoordinates(address, walk)

		description := reviews
		if description == "" {
			description = amenitiesStr
		}
		if description == "" {
			if walk != nil {
				description = fmt.Sprintf("Modern apartment within %d minutes walk to Wharton", *walk)
			} else {
				description = "Modern apartment near University City"
			}
		}
		if safety != "" {
			description += ". Safety: " + safety
		}

		if !strings.HasSuffix(address, ", Philadelphia") && !strings.Contains(address, "Philadelphia, PA") {
			address += ", Philadelphia, PA"
		}

		properties = append(properties, models.Property{
			Name:                     name,
			Address:                  address,
			Latitude:                 lat,
			Longitude:                lng,
			Price:                    price,
			Bedrooms:                 1,
			Bathrooms:                1,
			Amenities:                amenities,
			Description:              description,
			WalkingDistanceToWharton: walk,
		})
	}
	return properties, nil
}

// parseWalkingDistance maps "8 min" to 8 and "25+ min" to 30; "-" or empty
// means unknown.
func parseWalkingDistance(s string) *int {
	if s == "" || s == "-" {
		return nil
	}
	if m := walkPlusRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return models.IntPtr(n + 5)
	}
	if m := walkRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return models.IntPtr(n)
	}
	return nil
}

// parsePriceRange maps "$951–2,300" to the rounded midpoint and "1,176+" to
// the single value; anything unparseable falls back to 2000.
func parsePriceRange(s string) float64 {
	if s == "" || s == "-" {
		return 2000
	}
	cleaned := strings.NewReplacer("$", "", "+", "").Replace(s)
	if m := priceRnge.FindStringSubmatch(cleaned); m != nil {
		min := parseThousands(m[1])
		max := parseThousands(m[2])
		return math.Round((min + max) / 2)
	}
	if m := priceOne.FindStringSubmatch(cleaned); m != nil {
		return parseThousands(m[1])
	}
	return 2000
}

func parseThousands(s string) float64 {
	n, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return float64(n)
}

// amenityPattern maps free-text markers to a canonical amenity label. Order
// matters for the laundry rules: in-unit wins over a shared laundry room.
type amenityPattern struct {
	label   string
	markers []string
}

var amenityPatterns = []amenityPattern{
	{"Gym", []string{"gym", "fitness"}},
	{"Parking", []string{"parking", "garage"}},
	{"Pool", []string{"pool"}},
	{"Pet friendly", []string{"pet-friendly", "pet friendly", "pet area"}},
	{"Furnished", []string{"furnished"}},
	{"Doorman", []string{"doorman", "concierge"}},
	{"Rooftop", []string{"rooftop"}},
	{"Study room", []string{"business", "study"}},
	{"Balcony", []string{"balcony", "balconies"}},
	{"Utilities included", []string{"utilities included"}},
	{"Media room", []string{"media room"}},
	{"Yoga studio", []string{"yoga studio"}},
	{"Fire pit", []string{"fire pit"}},
	{"Lounge", []string{"lounge"}},
	{"ZipCar", []string{"zipcar"}},
	{"Hardwood floors", []string{"hw floors", "hardwood floors"}},
	{"Modern appliances", []string{"modern appliances"}},
}

// parseAmenities extracts canonical amenity labels from the amenities column
// combined with review text.
func parseAmenities(amenitiesStr, notes string) []string {
	combined := strings.ToLower(amenitiesStr + " " + notes)

	var amenities []string
	if strings.Contains(combined, "in-unit") &&
		(strings.Contains(combined, "wd") || strings.Contains(combined, "washer") || strings.Contains(combined, "dryer")) {
		amenities = append(amenities, "In-unit laundry")
	} else if strings.Contains(combined, "laundry") {
		amenities = append(amenities, "Laundry room")
	}

	for _, p := range amenityPatterns {
		for _, marker := range p.markers {
			if strings.Contains(combined, marker) {
				amenities = append(amenities, p.label)
				break
			}
		}
	}
	return amenities
}

// approximateCoordinates places a listing near the Wharton campus, nudged by
// street name and walking distance. Real geocoding is out of scope.
func approximateCoordinates(address string, walk *int) (float64, float64) {
	var offsetLat, offsetLng float64

	streets := []struct {
		marker string
		dLat   float64
		dLng   float64
	}{
		{"31st", 0, -0.01},
		{"30th", 0, -0.008},
		{"39th", 0, 0.008},
		{"40th", 0, 0.01},
		{"41st", 0, 0.012},
		{"44th", 0, 0.014},
		{"Chestnut", 0.002, 0},
		{"Walnut", -0.001, 0},
		{"Market", -0.003, 0},
		{"Lancaster", 0.001, 0},
		{"Broad", 0, 0.02},
		{"Spruce", -0.005, 0},
		{"Locust", -0.006, 0},
	}
	for _, s := range streets {
		if strings.Contains(address, s.marker) {
			if s.dLat != 0 {
				offsetLat = s.dLat
			}
			if s.dLng != 0 {
				offsetLng = s.dLng
			}
		}
	}

	if walk != nil {
		factor := float64(*walk-10) * 0.0005
		offsetLat += factor
		offsetLng += factor
	}
	return baseLatitude + offsetLat, baseLongitude + offsetLng
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
