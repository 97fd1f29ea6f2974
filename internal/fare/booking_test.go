package fare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/faredeck/faredeck/internal/fare"
)

func TestBookingURL(t *testing.T) {
	tests := []struct {
		name     string
		provider fare.Provider
		want     string
	}{
		{
			name:     "uber deep link",
			provider: fare.ProviderUber,
			want:     "https://m.uber.com/ul/?action=setPickup&pickup[formatted_address]=Mumbai+Central&dropoff[formatted_address]=Pune+Station",
		},
		{
			name:     "ola booking entry",
			provider: fare.ProviderOla,
			want:     "https://book.olacabs.com/?pickup=Mumbai+Central&destination=Pune+Station",
		},
		{
			name:     "rapido web entry",
			provider: fare.ProviderRapido,
			want:     "https://www.rapido.bike/?pickup=Mumbai+Central&destination=Pune+Station",
		},
		{
			name:     "indrive web entry",
			provider: fare.ProviderInDrive,
			want:     "https://indriver.com/?from=Mumbai+Central&to=Pune+Station",
		},
		{
			name:     "unknown provider falls back to search",
			provider: fare.Provider("Lyft"),
			want:     "https://www.google.com/search?q=book+lyft+from+Mumbai+Central+to+Pune+Station",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ride := fare.RideOption{Service: tt.provider}
			got := fare.BookingURL(ride, "Mumbai Central", "Pune Station")
			assert.Equal(t, tt.want, got)
		})
	}
}
