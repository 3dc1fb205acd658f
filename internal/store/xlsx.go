package store

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// LoadXLSX reads listings from the first sheet of an Excel workbook. The
// sheet uses the same headers as the CSV layout.
func LoadXLSX(path string) ([]models.Property, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %s", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
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
	for idx, row := range rows[1:] {
		name := field(row, "Apartment Name", "Name")
		if name == "" {
			name = fmt.Sprintf("Apartment %d", idx+1)
		}
		address := field(row, "Address")
		walk := parseWalkingDistance(field(row, "Walk Time to Wharton", "Walk to Wharton"))
		price := parsePriceRange(field(row, "Studio/1B1B Price", "Studio/1B1B Price Range", "Price"))

		amenitiesStr := field(row, "Amenities", "Amenities/Notes")
		reviews := joinNonEmpty(". ", field(row, "Good Reviews"), field(row, "Bad Reviews"))
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
			description = "Modern apartment near University City"
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
