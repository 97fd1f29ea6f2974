package fare

import (
	"fmt"
	"net/url"
	"strings"
)

// BookingURL builds a best-effort link to the provider's web booking page
// with the route context encoded into query parameters. Providers use
// different deep-link formats; unknown providers fall back to a web search
// that lands the user near a booking page.
func BookingURL(ride RideOption, pickup, destination string) string {
	o := url.QueryEscape(pickup)
	d := url.QueryEscape(destination)

	switch ride.Service {
	case ProviderUber:
		return fmt.Sprintf("https://m.uber.com/ul/?action=setPickup&pickup[formatted_address]=%s&dropoff[formatted_address]=%s", o, d)
	case ProviderOla:
		return fmt.Sprintf("https://book.olacabs.com/?pickup=%s&destination=%s", o, d)
	case ProviderRapido:
		return fmt.Sprintf("https://www.rapido.bike/?pickup=%s&destination=%s", o, d)
	case ProviderInDrive:
		return fmt.Sprintf("https://indriver.com/?from=%s&to=%s", o, d)
	default:
		provider := strings.ToLower(string(ride.Service))
		return fmt.Sprintf("https://www.google.com/search?q=book+%s+from+%s+to+%s", provider, o, d)
	}
}
