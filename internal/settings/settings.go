// Package settings exposes the back-office app_settings key/value table to
// the booking flow as an explicit value, loaded per request. Nothing in here
// is ambient or global.
package settings

// BookingSettings are the switches the public wizard honors.
type BookingSettings struct {
	// ShowPrices controls whether treatment prices appear in the wizard.
	ShowPrices bool `json:"show_prices"`
	// WeeksAhead is how far into the future clients may book.
	WeeksAhead int `json:"weeks_ahead"`
}

// Defaults mirror the fallbacks the wizard uses when a key is absent.
func Defaults() BookingSettings {
	return BookingSettings{ShowPrices: false, WeeksAhead: 4}
}
