package models

// CostLineItem is one raw row of the cost-of-living table: a priced good or
// service attached to a country or city. Entity names are stored as-is
// (mixed casing and punctuation occur); the table is read-only.
type CostLineItem struct {
	Entity string  `json:"entity"`
	Item   string  `json:"item"`
	Price  float64 `json:"price"`
}

// PricedItem is an (item, price) pair inside one entity's grouped list.
type PricedItem struct {
	Item  string  `json:"item"`
	Price float64 `json:"price"`
}

// GroupedEntity is one entity with its deduplicated item list, built fresh
// per request. Items never contain two entries with the same normalized
// label; first occurrence wins.
type GroupedEntity struct {
	Name  string       `json:"name"`
	Items []PricedItem `json:"items"`
}

// CategorizedItem is a display item tagged with its category glyph.
type CategorizedItem struct {
	Glyph string  `json:"glyph"`
	Item  string  `json:"item"`
	Price float64 `json:"price"`
}

// PriorityItem is one of the headline items shown on compact cards.
type PriorityItem struct {
	Item  string  `json:"item"`
	Price float64 `json:"price"`
	Glyph string  `json:"glyph"`
}

// GlobalStatistics summarizes the whole cost-of-living table.
type GlobalStatistics struct {
	AverageRentCityCenter float64 `json:"averageRentCityCenter"`
	AverageInternetPrice  float64 `json:"averageInternetPrice"`
	MedianCoffeePrice     float64 `json:"medianCoffeePrice"`
	TotalEntities         int     `json:"totalEntities"`
}
