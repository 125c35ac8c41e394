package domain

// positionLabels holds the canonical position meanings for the fixed spread
// layouts. Freeform spreads have no canonical positions.
var positionLabels = map[SpreadType][]string{
	SpreadOneCard:      {"Essence"},
	SpreadThreeCard:    {"Past", "Present", "Future"},
	SpreadRelationship: {"You", "The Other", "The Bond"},
	SpreadElements:     {"Water", "Fire", "Earth", "Air"},
	SpreadMoon:         {"Waxing", "Full", "Waning"},
	SpreadCelticCross: {
		"Present", "Challenge", "Foundation", "Recent Past", "Crown",
		"Near Future", "Self", "Environment", "Hopes and Fears", "Outcome",
	},
	SpreadShadow: {"The Mask", "The Shadow", "The Root", "The Gift", "Integration"},
}

// PositionLabel returns the canonical label for the i-th position (0-based)
// of a spread, or "" when the spread defines none.
func PositionLabel(spread SpreadType, i int) string {
	labels := positionLabels[spread]
	if i < 0 || i >= len(labels) {
		return ""
	}
	return labels[i]
}
