package gmaps

type Place struct {
    PlaceID          string   `json:"placeId"`
    FormattedAddress string   `json:"formattedAddress"`
    Lat              float64  `json:"lat"`
    Lng              float64  `json:"lng"`
    LocationType     string   `json:"locationType"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
    Types            []string `json:"types"`
    PartialMatch     bool     `json:"partialMatch"`
    StreetNumber     string   `json:"streetNumber"`
    Route            string   `json:"route"`
    City             string   `json:"city"`
    County           string   `json:"county"`
    State            string   `json:"state"`
    PostalCode       string   `json:"postalCode"`
    Country          string   `json:"country"`
}

type Verdict struct {
    InputGranularity      string `json:"inputGranularity"`
    ValidationGranularity string `json:"validationGranularity"`
    GeocodeGranularity    string `json:"geocodeGranularity"`
    AddressComplete       bool   `json:"addressComplete"`
    HasUnconfirmed        bool   `json:"hasUnconfirmedComponents"`
    HasInferred           bool   `json:"hasInferredComponents"`
    HasReplaced           bool   `json:"hasReplacedComponents"`
}

type Route struct {
    Meters          int `json:"meters"`
    DurationSeconds int `json:"durationSeconds"`
}

type ElevationSample struct {
    Lat        float64 `json:"lat"`
    Lng        float64 `json:"lng"`
    Elevation  float64 `json:"elevation"`  // meters
    Resolution float64 `json:"resolution"` // meters between interpolated samples
}
