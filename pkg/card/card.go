package card

import (
	"strings"
)

// Defaults applied by [Card.WithDefaults] to fields a definition leaves empty.
const (
	DefaultName      = "Unnamed Item"
	DefaultRarity    = "Common"
	DefaultTypeLine  = "Item — Wondrous"
	DefaultRules     = "—"
	DefaultSetCode   = "DND"
	DefaultCollector = "001/001"
	DefaultCopyright = "© 2025"
)

// =============================================================================
// Card
// =============================================================================

// Card is one card definition.
//
// Stat fields (PT, Price, Weight) are optional and only rendered when
// non-empty. Theme holds per-card overrides that are merged onto the base
// theme named by ThemeName (or the default theme when empty).
type Card struct {
	Name       string `json:"name" yaml:"name" bson:"name"`
	Rarity     string `json:"rarity,omitempty" yaml:"rarity,omitempty" bson:"rarity,omitempty"`
	TypeLine   string `json:"type_line,omitempty" yaml:"type_line,omitempty" bson:"type_line,omitempty"`
	RulesText  Text   `json:"rules_text,omitempty" yaml:"rules_text,omitempty" bson:"rules_text,omitempty"`
	FlavorText string `json:"flavor_text,omitempty" yaml:"flavor_text,omitempty" bson:"flavor_text,omitempty"`

	PT     string `json:"pt,omitempty" yaml:"pt,omitempty" bson:"pt,omitempty"`             // Power/toughness
	Price  string `json:"price,omitempty" yaml:"price,omitempty" bson:"price,omitempty"`    // Display price
	Weight string `json:"weight,omitempty" yaml:"weight,omitempty" bson:"weight,omitempty"` // Display weight

	ArtPath string `json:"art_path,omitempty" yaml:"art_path,omitempty" bson:"art_path,omitempty"`

	SetCode   string `json:"set_code,omitempty" yaml:"set_code,omitempty" bson:"set_code,omitempty"`
	Collector string `json:"collector,omitempty" yaml:"collector,omitempty" bson:"collector,omitempty"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty" bson:"author,omitempty"`
	Copyright string `json:"copyright,omitempty" yaml:"copyright,omitempty" bson:"copyright,omitempty"`

	Theme     map[string]any `json:"theme,omitempty" yaml:"theme,omitempty" bson:"theme,omitempty"`
	ThemeName string         `json:"theme_name,omitempty" yaml:"theme_name,omitempty" bson:"theme_name,omitempty"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
// Flavor text is trimmed. Author, stats and art stay empty when absent.
func (c Card) WithDefaults() Card {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Rarity == "" {
		c.Rarity = DefaultRarity
	}
	if c.TypeLine == "" {
		c.TypeLine = DefaultTypeLine
	}
	if len(c.RulesText) == 0 {
		c.RulesText = Text{DefaultRules}
	}
	if c.SetCode == "" {
		c.SetCode = DefaultSetCode
	}
	if c.Collector == "" {
		c.Collector = DefaultCollector
	}
	if c.Copyright == "" {
		c.Copyright = DefaultCopyright
	}
	c.FlavorText = strings.TrimSpace(c.FlavorText)
	return c
}

// ParsedRarity returns the parsed rarity of the card.
func (c Card) ParsedRarity() Rarity { return ParseRarity(c.Rarity) }

// Stats returns the present stat values in badge order: pt, price, weight.
func (c Card) Stats() []string {
	var out []string
	for _, s := range []string{c.PT, c.Price, c.Weight} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ID returns the lookup key used by print catalogs: the lower-cased slug.
func (c Card) ID() string { return strings.ToLower(Slug(c.Name)) }

// File is the top-level shape of a card definition file.
type File struct {
	Cards []Card `json:"cards" yaml:"cards" bson:"cards"`
}
