package models

// LocationAddress is the address breakdown of a geocoding result.
type LocationAddress struct {
	City         string `json:"city,omitempty"`
	Town         string `json:"town,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

// Location is one candidate returned by the geocoding provider. Lat/Lon stay
// strings on the wire; the provider sends them that way.
type Location struct {
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	DisplayName string          `json:"display_name"`
	Address     LocationAddress `json:"address"`
	Importance  float64         `json:"importance"`
}
