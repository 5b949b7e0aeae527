package domain

// Airport describes one airport served by the dashboard.
type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Airports is the registry of airports the portal serves.
var Airports = map[string]Airport{
	"DEL": {Code: "DEL", Name: "Indira Gandhi International Airport", City: "New Delhi"},
	"BLR": {Code: "BLR", Name: "Kempegowda International Airport", City: "Bangalore"},
	"GOX": {Code: "GOX", Name: "Manohar International Airport", City: "Goa"},
	"PNY": {Code: "PNY", Name: "Puducherry Airport", City: "Puducherry"},
	"IXJ": {Code: "IXJ", Name: "Jammu Airport", City: "Jammu"},
	"SXR": {Code: "SXR", Name: "Sheikh ul-Alam International Airport", City: "Srinagar"},
}

// KnownAirport reports whether a code is in the registry.
func KnownAirport(code string) bool {
	_, ok := Airports[code]
	return ok
}
