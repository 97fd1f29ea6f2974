package models

import "github.com/faredeck/faredeck/internal/fare"

// CityList is the response for GET /v1/metadata/cities.
type CityList struct {
	Items []fare.City `json:"items"`
}

// ProviderInfo describes one supported ride-hailing provider.
type ProviderInfo struct {
	Name  string `json:"name"`
	Logo  string `json:"logo"`
	Color string `json:"color"`
}

// ProviderList is the response for GET /v1/metadata/providers.
type ProviderList struct {
	Items []ProviderInfo `json:"items"`
}

// PopularRouteList is the response for GET /v1/metadata/popular-routes.
type PopularRouteList struct {
	Items []fare.PopularRoute `json:"items"`
}
