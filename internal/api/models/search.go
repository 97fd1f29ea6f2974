package models

// Search represents one recorded fare comparison.
type Search struct {
	ID              string    `json:"id"`
	Pickup          string    `json:"pickup"`
	Destination     string    `json:"destination"`
	DistanceKm      float64   `json:"distanceKm"`
	DurationMin     int       `json:"durationMin"`
	DistanceSource  string    `json:"distanceSource"`
	CheapestPrice   int       `json:"cheapestPrice"`
	CheapestService string    `json:"cheapestService"`
	OptionCount     int       `json:"optionCount"`
	SearchedAt      Timestamp `json:"searchedAt"`
}

// PagedSearches represents a paginated list of recorded searches.
type PagedSearches struct {
	Items []Search          `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}
