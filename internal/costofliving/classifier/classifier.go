// Package classifier maps free-text cost-of-living line items onto the
// human-facing display categories. Classification is inferred at read time;
// the table has no controlled vocabulary to join against.
package classifier

import (
	"regexp"
	"strings"
)

// Assignment is the (glyph, category) pair a line item classifies into.
type Assignment struct {
	Glyph    string `json:"glyph"`
	Category string `json:"category"`
}

type synonymEntry struct {
	key      string
	glyph    string
	category string
}

// synonymTable is an ordered slice, not a map: the first entry whose
// normalized key is contained in the normalized label wins, so iteration
// order is part of the contract. Specific keys are declared before broad
// ones.
var synonymTable = []synonymEntry{
	// Housing
	{"apartment 1 bedroom in city centre", "🏙️", "Housing"},
	{"apartment 1 bedroom outside of centre", "🏡", "Housing"},
	{"apartment 3 bedrooms in city centre", "🏢", "Housing"},
	{"apartment 3 bedrooms outside of centre", "🏠", "Housing"},

	// Food & Drinks
	{"milk", "🥛", "Food & Drinks"},
	{"cappuccino", "☕", "Food & Drinks"},
	{"bottle of wine", "🍷", "Food & Drinks"},
	{"meal inexpensive restaurant", "🍽️", "Food & Drinks"},
	{"meal for 2 people mid-range restaurant", "🍷🍴", "Food & Drinks"},

	// Transportation
	{"one-way ticket", "🚌", "Transportation"},
	{"gasoline", "⛽", "Transportation"},
	{"taxi start", "🚕", "Transportation"},
	{"monthly pass", "🛴", "Transportation"},

	// Utilities
	{"internet", "🌐", "Utilities"},
	{"basic electricity heating cooling water garbage", "💡", "Utilities"},

	// Entertainment & Fitness
	{"fitness club", "🏋️", "Entertainment & Fitness"},
	{"cinema international release", "🎬", "Entertainment & Fitness"},

	// Other Costs
	{"1 pair of jeans", "👖", "Other Costs"},
	{"1 pair of nike running shoes", "👟", "Other Costs"},
	{"1 summer dress in a chain store", "👗", "Other Costs"},
	{"mobile phone monthly plan", "📱", "Other Costs"},
}

// DefaultAssignment is returned when nothing in the table matches.
var DefaultAssignment = Assignment{Glyph: "📦", Category: "Other Costs"}

// CategoryOrder is the display order of categories on detail cards.
var CategoryOrder = []string{
	"Housing",
	"Food & Drinks",
	"Transportation",
	"Utilities",
	"Entertainment & Fitness",
	"Other Costs",
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
var multiSpace = regexp.MustCompile(`\s+`)

// Normalize lowercases, strips everything outside [a-z0-9\s], collapses
// whitespace and trims. Both classifier keys and item labels go through the
// same normalization before matching.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Classify returns the category assignment for a raw item label. It is
// total: an unmatched or empty label yields DefaultAssignment.
func Classify(itemLabel string) Assignment {
	normalized := Normalize(itemLabel)
	if normalized == "" {
		return DefaultAssignment
	}
	for _, entry := range synonymTable {
		if strings.Contains(normalized, Normalize(entry.key)) {
			return Assignment{Glyph: entry.glyph, Category: entry.category}
		}
	}
	return DefaultAssignment
}
