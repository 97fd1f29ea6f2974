package models

// Me represents the authenticated user's account and rider profile.
type Me struct {
	UserID            string    `json:"userId"`
	Email             string    `json:"email"`
	DisplayName       string    `json:"displayName"`
	HomeCity          string    `json:"homeCity,omitempty"`
	DefaultPickup     string    `json:"defaultPickup,omitempty"`
	PreferredProvider string    `json:"preferredProvider,omitempty"`
	CreatedAt         Timestamp `json:"createdAt"`
}

// MeInput is the request body for updating the rider profile. Nil fields are
// left unchanged; an empty preferredProvider clears the preference.
type MeInput struct {
	DisplayName       *string `json:"displayName,omitempty"`
	HomeCity          *string `json:"homeCity,omitempty"`
	DefaultPickup     *string `json:"defaultPickup,omitempty"`
	PreferredProvider *string `json:"preferredProvider,omitempty"`
}
