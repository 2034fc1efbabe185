package models

// CountryName carries the display names of a country as reported by the
// metadata provider.
type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official,omitempty"`
}

type CountryFlags struct {
	PNG string `json:"png,omitempty"`
	SVG string `json:"svg,omitempty"`
}

// Country is a metadata record from the country metadata provider.
type Country struct {
	Name         CountryName            `json:"name"`
	CCA3         string                 `json:"cca3,omitempty"`
	Flags        CountryFlags           `json:"flags"`
	Capital      []string               `json:"capital,omitempty"`
	Region       string                 `json:"region,omitempty"`
	Population   int64                  `json:"population,omitempty"`
	Translations map[string]CountryName `json:"translations,omitempty"`
}

// DisplayName prefers the English translation over the provider's common
// name, matching what the card grid renders.
func (c Country) DisplayName() string {
	if t, ok := c.Translations["eng"]; ok && t.Common != "" {
		return t.Common
	}
	return c.Name.Common
}
