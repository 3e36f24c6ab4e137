// Package card defines the card content model consumed by the layout engine.
//
// # Core Types
//
//   - [Card]: one card definition as read from JSON, YAML or MongoDB
//   - [Rarity]: closed set of rarities that select the frame accent color
//   - [Text]: rules text given either as a string or as a list of paragraphs
//
// A [Card] is an immutable value. [Card.WithDefaults] fills in the fields a
// definition may omit, and the layout engine only ever reads the result:
//
//	c := card.Card{Name: "Potion of Brightmind", Rarity: "Uncommon"}.WithDefaults()
//	doc, err := layout.Build(c)
//
// # File Names
//
// [Slug] turns a card name into a file stem. Accents are folded to their base
// letters first, then every run of characters outside [A-Za-z0-9_-] becomes a
// single underscore:
//
//	card.Slug("Sword of the Autumn Wolf") // "Sword_of_the_Autumn_Wolf"
package card
