package domain

// TravelStats is the aggregate travel-history view shown on the analytics
// page. All figures are derived from the caller's trips and items at read
// time; nothing here is stored.
type TravelStats struct {
	// TotalKm is the summed great-circle distance of all flights whose
	// metadata carries departure and arrival coordinates.
	TotalKm float64 `json:"total_km"`

	// CountriesVisited and CitiesVisited count distinct destinations across
	// non-cancelled trips.
	CountriesVisited int `json:"countries_visited"`
	CitiesVisited    int `json:"cities_visited"`

	// HoursInTransport sums the durations of flight and transport items that
	// have both a parsable start and end time.
	HoursInTransport float64 `json:"hours_in_transport"`

	// FlightsPerYear counts flight items keyed by the year of their start time.
	FlightsPerYear map[int]int `json:"flights_per_year"`

	// TripsByStatus counts trips per lifecycle status, zero-filled over all
	// five statuses.
	TripsByStatus map[TripStatus]int `json:"trips_by_status"`
}
