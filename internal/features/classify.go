package features

import "github.com/yourorg/location-quote/internal/pricing"

// DefaultPropertyTypes maps geocoder place type tags to a property type.
func DefaultPropertyTypes() map[string]pricing.PropertyType {
	return map[string]pricing.PropertyType{
		"street_address": pricing.Residential,
		"premise":        pricing.Residential,
		"subpremise":     pricing.Residential,
		"neighborhood":   pricing.Residential,

		"store":         pricing.Commercial,
		"shopping_mall": pricing.Commercial,
		"restaurant":    pricing.Commercial,
		"lodging":       pricing.Commercial,
		"supermarket":   pricing.Commercial,
		"car_dealer":    pricing.Commercial,
		"school":        pricing.Commercial,
		"hospital":      pricing.Commercial,
		"church":        pricing.Commercial,

		"farm":        pricing.Agricultural,
		"ranch":       pricing.Agricultural,
		"vineyard":    pricing.Agricultural,
		"orchard":     pricing.Agricultural,
		"agriculture": pricing.Agricultural,

		"storage":        pricing.Industrial,
		"warehouse":      pricing.Industrial,
		"factory":        pricing.Industrial,
		"industrial":     pricing.Industrial,
		"moving_company": pricing.Industrial,
	}
}

// ClassifyPropertyType returns the mapping of the first known tag. Unknown or
// missing tags are residential. A nil table uses DefaultPropertyTypes.
func ClassifyPropertyType(table map[string]pricing.PropertyType, tags []string) pricing.PropertyType {
	if table == nil {
		table = DefaultPropertyTypes()
	}
	for _, t := range tags {
		if pt, ok := table[t]; ok && pt.Valid() {
			return pt
		}
	}
	return pricing.Residential
}

// PlaceRestrictions derives restrictions that the place type alone implies.
func PlaceRestrictions(tags []string) []string {
	out := []string{}
	for _, t := range tags {
		switch t {
		case "park":
			out = append(out, "protected_area")
		case "natural_feature":
			out = append(out, "natural_feature_buffer")
		}
	}
	return mergeUnique(out, nil)
}
