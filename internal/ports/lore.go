package ports

// CardLore is background knowledge about a named card, folded into the
// prompt when the card is recognized.
type CardLore struct {
	Keywords []string
	Short    string
}

// LoreStore looks up card lore by display name.
type LoreStore interface {
	Lookup(name string) (CardLore, bool)
}
