package catalog

// Category groups treatments in the booking wizard.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Treatment is a bookable service.
type Treatment struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	PriceCents      int    `json:"price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
	Active          bool   `json:"active"`
	CategoryID      int64  `json:"category_id"`
}

// Employee is a staff member who performs treatments.
type Employee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
