package card

import "strings"

// Rarity is the closed set of card rarities.
type Rarity int

// Rarities. RarityUnknown marks a value that did not parse; it keeps the
// theme's default accent.
const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityVeryRare
	RarityLegendary
	RarityQuest
	RarityUnknown
)

var rarityNames = [...]string{
	RarityCommon:    "Common",
	RarityUncommon:  "Uncommon",
	RarityRare:      "Rare",
	RarityVeryRare:  "Very Rare",
	RarityLegendary: "Legendary",
	RarityQuest:     "Quest",
	RarityUnknown:   "Unknown",
}

// ParseRarity parses a rarity name. Matching ignores case and spaces, so
// "Very Rare", "veryrare" and "VERY RARE" are equal. An empty string is
// RarityCommon; anything unrecognised is RarityUnknown.
func ParseRarity(s string) Rarity {
	key := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if key == "" {
		return RarityCommon
	}
	for r, name := range rarityNames[:RarityUnknown] {
		if key == strings.ToLower(strings.ReplaceAll(name, " ", "")) {
			return Rarity(r)
		}
	}
	return RarityUnknown
}

// String returns the display name of the rarity.
func (r Rarity) String() string {
	if r < 0 || int(r) >= len(rarityNames) {
		return rarityNames[RarityUnknown]
	}
	return rarityNames[r]
}

// Known reports whether r is one of the recognised rarities.
func (r Rarity) Known() bool { return r >= RarityCommon && r < RarityUnknown }

// Rarities returns all recognised rarities in ascending order.
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityVeryRare, RarityLegendary, RarityQuest}
}
