package gmaps

import (
	"encoding/json"
	"fmt"
)

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapGeocodePayload maps a geocode (forward or reverse) response to places.
// ZERO_RESULTS is reported as ErrZeroResults so callers can pick their own
// not-found error.
func MapGeocodePayload(raw []byte) ([]Place, error) {
	type gComponent struct {
		LongName  string   `json:"long_name"`
		ShortName string   `json:"short_name"`
		Types     []string `json:"types"`
	}
	type gResult struct {
		PlaceID          string       `json:"place_id"`
		FormattedAddress string       `json:"formatted_address"`
		Components       []gComponent `json:"address_components"`
		Geometry         struct {
			Location     latLng `json:"location"`
			LocationType string `json:"location_type"`
		} `json:"geometry"`
		Types        []string `json:"types"`
		PartialMatch bool     `json:"partial_match"`
	}
	var root struct {
		Status       string    `json:"status"`
		ErrorMessage string    `json:"error_message"`
		Results      []gResult `json:"results"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	if err := statusError(root.Status, root.ErrorMessage); err != nil {
		return nil, err
	}
	if len(root.Results) == 0 {
		return nil, ErrZeroResults
	}

	out := make([]Place, 0, len(root.Results))
	for _, r := range root.Results {
		p := Place{
			PlaceID:          r.PlaceID,
			FormattedAddress: r.FormattedAddress,
			Lat:              r.Geometry.Location.Lat,
			Lng:              r.Geometry.Location.Lng,
			LocationType:     r.Geometry.LocationType,
			Types:            append([]string(nil), r.Types...),
			PartialMatch:     r.PartialMatch,
		}
		for _, c := range r.Components {
			switch {
			case hasType(c.Types, "street_number"):
				p.StreetNumber = c.LongName
			case hasType(c.Types, "route"):
				p.Route = c.LongName
			case hasType(c.Types, "locality"):
				p.City = c.LongName
			case hasType(c.Types, "postal_town") && p.City == "":
				p.City = c.LongName
			case hasType(c.Types, "administrative_area_level_2"):
				p.County = c.LongName
			case hasType(c.Types, "administrative_area_level_1"):
				p.State = c.ShortName
			case hasType(c.Types, "postal_code"):
				p.PostalCode = c.LongName
			case hasType(c.Types, "country"):
				p.Country = c.ShortName
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// MapValidationPayload extracts the verdict block of an Address Validation response.
func MapValidationPayload(raw []byte) (Verdict, error) {
	var root struct {
		Result struct {
			Verdict Verdict `json:"verdict"`
		} `json:"result"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return Verdict{}, err
	}
	if root.Error != nil {
		return Verdict{}, fmt.Errorf("address validation %s: %s", root.Error.Status, root.Error.Message)
	}
	return root.Result.Verdict, nil
}

// Outcome collapses a verdict into VALID, AMBIGUOUS or INVALID.
//   - VALID: complete, nothing unconfirmed, validated to premise level or finer.
//   - INVALID: the provider could not validate any part of the address.
//   - AMBIGUOUS: everything in between.
func (v Verdict) Outcome() string {
	g := v.ValidationGranularity
	if g == "" || g == "OTHER" || g == "GRANULARITY_UNSPECIFIED" {
		if !v.AddressComplete {
			return "INVALID"
		}
	}
	if v.AddressComplete && !v.HasUnconfirmed && (g == "PREMISE" || g == "SUB_PREMISE") {
		return "VALID"
	}
	return "AMBIGUOUS"
}

// MapDistanceMatrixPayload maps the single element of a 1x1 distance matrix.
func MapDistanceMatrixPayload(raw []byte) (Route, error) {
	type value struct {
		Value int `json:"value"`
	}
	var root struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Rows         []struct {
			Elements []struct {
				Status   string `json:"status"`
				Distance value  `json:"distance"`
				Duration value  `json:"duration"`
			} `json:"elements"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return Route{}, err
	}
	if err := statusError(root.Status, root.ErrorMessage); err != nil {
		return Route{}, err
	}
	if len(root.Rows) == 0 || len(root.Rows[0].Elements) == 0 {
		return Route{}, ErrNoRoute
	}
	el := root.Rows[0].Elements[0]
	switch el.Status {
	case "OK":
		return Route{Meters: el.Distance.Value, DurationSeconds: el.Duration.Value}, nil
	case "ZERO_RESULTS", "NOT_FOUND":
		return Route{}, ErrNoRoute
	default:
		return Route{}, fmt.Errorf("distance matrix element status %s", el.Status)
	}
}

// MapElevationPayload maps an elevation response.
func MapElevationPayload(raw []byte) ([]ElevationSample, error) {
	var root struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Results      []struct {
			Elevation  float64 `json:"elevation"`
			Location   latLng  `json:"location"`
			Resolution float64 `json:"resolution"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	if err := statusError(root.Status, root.ErrorMessage); err != nil {
		return nil, err
	}
	out := make([]ElevationSample, 0, len(root.Results))
	for _, r := range root.Results {
		out = append(out, ElevationSample{
			Lat:        r.Location.Lat,
			Lng:        r.Location.Lng,
			Elevation:  r.Elevation,
			Resolution: r.Resolution,
		})
	}
	return out, nil
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
