package store

import "github.com/LuLu1016/ARLook-GoogleMap/internal/models"

// SampleProperties returns the built-in University City dataset used when no
// data files are configured. Callers get a fresh copy each time.
func SampleProperties() []models.Property {
	sample := []models.Property{
		{
			ID:                       "1",
			Name:                     "The Axis",
			Address:                  "3800 Chestnut St, Philadelphia, PA 19104",
			Latitude:                 39.9526,
			Longitude:                -75.1652,
			Price:                    1800,
			Bedrooms:                 2,
			Bathrooms:                1,
			Amenities:                []string{"In-unit laundry", "Gym", "Parking"},
			Description:              "Modern apartment near University of Pennsylvania",
			WalkingDistanceToWharton: models.IntPtr(8),
		},
		{
			ID:                       "2",
			Name:                     "evo",
			Address:                  "3401 Walnut St, Philadelphia, PA 19104",
			Latitude:                 39.9550,
			Longitude:                -75.1920,
			Price:                    1650,
			Bedrooms:                 1,
			Bathrooms:                1,
			Amenities:                []string{"In-unit laundry", "Furnished", "Utilities included"},
			Description:              "Furnished studio perfect for Wharton students",
			WalkingDistanceToWharton: models.IntPtr(5),
		},
		{
			ID:                       "3",
			Name:                     "Cira Green",
			Address:                  "3737 Chestnut St, Philadelphia, PA 19104",
			Latitude:                 39.9530,
			Longitude:                -75.1980,
			Price:                    2200,
			Bedrooms:                 2,
			Bathrooms:                2,
			Amenities:                []string{"In-unit laundry", "Dishwasher", "Central AC", "Parking"},
			Description:              "Spacious loft with modern amenities",
			WalkingDistanceToWharton: models.IntPtr(7),
		},
		{
			ID:                       "4",
			Name:                     "Drexel Campus View",
			Address:                  "3200 Market St, Philadelphia, PA 19104",
			Latitude:                 39.9540,
			Longitude:                -75.1880,
			Price:                    1500,
			Bedrooms:                 1,
			Bathrooms:                1,
			Amenities:                []string{"Laundry room", "Pet friendly", "Balcony"},
			Description:              "Affordable option near Drexel University",
			WalkingDistanceToWharton: models.IntPtr(15),
		},
		{
			ID:                       "5",
			Name:                     "Penn Park Residences",
			Address:                  "3131 Walnut St, Philadelphia, PA 19104",
			Latitude:                 39.9500,
			Longitude:                -75.1750,
			Price:                    1950,
			Bedrooms:                 2,
			Bathrooms:                1.5,
			Amenities:                []string{"In-unit laundry", "Gym", "Rooftop", "Parking"},
			Description:              "Luxury living with great views of Penn Park",
			WalkingDistanceToWharton: models.IntPtr(12),
		},
	}
	return sample
}
