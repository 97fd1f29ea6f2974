package models

// SavedRoute represents a saved pickup/destination pair.
type SavedRoute struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Pickup      string    `json:"pickup"`
	Destination string    `json:"destination"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// RouteCreateRequest is the request body for creating a saved route.
type RouteCreateRequest struct {
	Label       string  `json:"label"`
	Pickup      string  `json:"pickup"`
	Destination string  `json:"destination"`
	Notes       *string `json:"notes,omitempty"`
}

// RouteUpdateRequest is the request body for updating a saved route. Nil
// fields are left unchanged.
type RouteUpdateRequest struct {
	Label       *string `json:"label,omitempty"`
	Pickup      *string `json:"pickup,omitempty"`
	Destination *string `json:"destination,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// PagedRoutes represents a paginated list of saved routes.
type PagedRoutes struct {
	Items []SavedRoute      `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}
