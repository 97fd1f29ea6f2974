package handler

import (
	"net/http"

	"github.com/faredeck/faredeck/internal/api/models"
	"github.com/faredeck/faredeck/internal/api/response"
	"github.com/faredeck/faredeck/internal/fare"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct{}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// ListCities handles GET /v1/metadata/cities - known cities with their
// pricing tier and bike availability.
func (h *MetadataHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.CityList{Items: fare.Cities()})
}

// ListProviders handles GET /v1/metadata/providers - supported providers
// with display metadata.
func (h *MetadataHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers := fare.Providers()
	items := make([]models.ProviderInfo, len(providers))
	for i, p := range providers {
		logo, color := fare.ProviderDisplay(p)
		items[i] = models.ProviderInfo{Name: string(p), Logo: logo, Color: color}
	}
	response.JSON(w, r, http.StatusOK, models.ProviderList{Items: items})
}

// ListPopularRoutes handles GET /v1/metadata/popular-routes - curated
// quick-search routes.
func (h *MetadataHandler) ListPopularRoutes(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.PopularRouteList{Items: fare.PopularRoutes()})
}
