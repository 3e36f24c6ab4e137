package theme

import (
	"github.com/matzehuels/cardpress/pkg/errors"
)

// Colors holds the fill and stroke colors of a card face.
type Colors struct {
	FrameBG     string
	FrameInner  string // Accent; replaced by the rarity palette
	FrameBorder string
	TitleBG     string
	TitleFG     string
	ArtBG       string
	TypeBG      string
	TypeFG      string
	RulesBG     string
	RulesFG     string
	FlavorFG    string
	FooterFG    string
	BadgeBG     string
	BadgeFG     string
}

// Theme is the fully resolved set of card parameters. It is a plain value:
// copying it and changing a field never affects the original.
type Theme struct {
	Name string

	CanvasW, CanvasH int

	OuterPadding int // Canvas edge to the inner frame
	InnerPadding int // Inner frame to the content box
	Gap          int // Vertical gap between bands

	TitleH, ArtH, TypeH, RulesH, StatsH, FooterH int

	TextInset      int // Left inset of band text
	FooterInset    int // Horizontal inset of footer runs
	TitleBaseline  int // Title baseline above the band bottom
	TypeBaseline   int // Type line baseline above the band bottom
	RulesTop       int // First rules baseline below the band top, before font size
	FlavorBottom   int // Flavor baseline above the rules band bottom
	StatsBaseline  int // Badge baseline above the band bottom
	FooterBaseline int // Footer baseline above the band bottom

	TitleFontSize  int
	RarityFontSize int
	TypeFontSize   int
	RulesFontSize  int
	FlavorFontSize int
	StatsFontSize  int
	FooterFontSize int

	BadgeW       int
	BadgeSpacing int
	WrapWidth    int // Rules and flavor wrap width in characters

	FrameRadius, InnerRadius int
	TitleRadius, ArtRadius   int
	TypeRadius, RulesRadius  int
	BadgeRadius              int
	StrokeWidth              int

	Colors    Colors
	FontSerif string
	FontSans  string
}

// Default returns the built-in "classic" theme.
func Default() Theme {
	return Theme{
		Name:    "classic",
		CanvasW: 744, CanvasH: 1039,

		OuterPadding: 12,
		InnerPadding: 6,
		Gap:          6,

		TitleH: 52, ArtH: 430, TypeH: 52, RulesH: 360, StatsH: 52, FooterH: 27,

		TextInset:      18,
		FooterInset:    11,
		TitleBaseline:  16,
		TypeBaseline:   18,
		RulesTop:       6,
		FlavorBottom:   48,
		StatsBaseline:  16,
		FooterBaseline: 6,

		TitleFontSize:  32,
		RarityFontSize: 24,
		TypeFontSize:   24,
		RulesFontSize:  24,
		FlavorFontSize: 24,
		StatsFontSize:  24,
		FooterFontSize: 11,

		BadgeW:       150,
		BadgeSpacing: 6,
		WrapWidth:    60,

		FrameRadius: 18, InnerRadius: 14,
		TitleRadius: 8, ArtRadius: 10,
		TypeRadius: 6, RulesRadius: 10,
		BadgeRadius: 8,
		StrokeWidth: 2,

		Colors: Colors{
			FrameBG:     "#1b1b1b",
			FrameInner:  "#B0B0B0",
			FrameBorder: "#121212",
			TitleBG:     "#e9e3d9",
			TitleFG:     "#111",
			ArtBG:       "#ddd",
			TypeBG:      "#ece7de",
			TypeFG:      "#222",
			RulesBG:     "#f6f2ea",
			RulesFG:     "#222",
			FlavorFG:    "#555",
			FooterFG:    "#444",
			BadgeBG:     "#e9e3d9",
			BadgeFG:     "#111",
		},
		FontSerif: "Georgia, 'Times New Roman', serif",
		FontSans:  "Inter, Arial, sans-serif",
	}
}

// Ink returns a light, printer-friendly variant of the classic theme.
func Ink() Theme {
	t := Default()
	t.Name = "ink"
	t.Colors = Colors{
		FrameBG:     "#ffffff",
		FrameInner:  "#e6e6e6",
		FrameBorder: "#000000",
		TitleBG:     "#ffffff",
		TitleFG:     "#000",
		ArtBG:       "#f2f2f2",
		TypeBG:      "#ffffff",
		TypeFG:      "#000",
		RulesBG:     "#ffffff",
		RulesFG:     "#000",
		FlavorFG:    "#333",
		FooterFG:    "#333",
		BadgeBG:     "#ffffff",
		BadgeFG:     "#000",
	}
	return t
}

// ContentEdge is the distance from the canvas edge to the content box.
func (t Theme) ContentEdge() int { return t.OuterPadding + t.InnerPadding }

// StackHeight is the height of all bands plus the gaps between them.
func (t Theme) StackHeight() int {
	return t.TitleH + t.ArtH + t.TypeH + t.RulesH + t.StatsH + t.FooterH + 5*t.Gap
}

// Validate reports whether the theme is complete and inside the range where
// the derived regions are guaranteed not to overlap.
func (t Theme) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"card_width", t.CanvasW}, {"card_height", t.CanvasH},
		{"title_h", t.TitleH}, {"art_h", t.ArtH}, {"type_h", t.TypeH},
		{"rules_h", t.RulesH}, {"stats_h", t.StatsH}, {"footer_h", t.FooterH},
		{"title_font_size", t.TitleFontSize}, {"rarity_font_size", t.RarityFontSize},
		{"type_font_size", t.TypeFontSize}, {"rules_font_size", t.RulesFontSize},
		{"flavor_font_size", t.FlavorFontSize}, {"stats_font_size", t.StatsFontSize},
		{"footer_font_size", t.FooterFontSize},
		{"badge_w", t.BadgeW}, {"wrap_width", t.WrapWidth},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return errors.New(errors.ErrCodeInvalidTheme, "%s must be positive, got %d", p.name, p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    int
	}{
		{"outer_padding", t.OuterPadding}, {"inner_padding", t.InnerPadding}, {"gap", t.Gap},
		{"text_inset", t.TextInset}, {"footer_inset", t.FooterInset},
		{"title_baseline", t.TitleBaseline}, {"type_baseline", t.TypeBaseline},
		{"rules_top", t.RulesTop}, {"flavor_bottom", t.FlavorBottom},
		{"stats_baseline", t.StatsBaseline}, {"footer_baseline", t.FooterBaseline},
		{"badge_spacing", t.BadgeSpacing}, {"stroke_width", t.StrokeWidth},
		{"frame_radius", t.FrameRadius}, {"inner_radius", t.InnerRadius},
		{"title_radius", t.TitleRadius}, {"art_radius", t.ArtRadius},
		{"type_radius", t.TypeRadius}, {"rules_radius", t.RulesRadius},
		{"badge_radius", t.BadgeRadius},
	}
	for _, p := range nonNegative {
		if p.v < 0 {
			return errors.New(errors.ErrCodeInvalidTheme, "%s must not be negative, got %d", p.name, p.v)
		}
	}

	for _, f := range t.fields() {
		if s, ok := f.ptr.(*string); ok && *s == "" {
			return errors.New(errors.ErrCodeInvalidTheme, "%s must not be empty", f.key)
		}
	}

	content := t.Regions().Content
	if content.W <= 0 || content.H <= 0 {
		return errors.New(errors.ErrCodeInvalidTheme, "paddings leave no content area (%dx%d)", content.W, content.H)
	}
	if h := t.StackHeight(); h > content.H {
		return errors.New(errors.ErrCodeInvalidTheme, "bands need %d units but content area is %d high", h, content.H)
	}
	if w := 3*t.BadgeW + 2*t.BadgeSpacing; w > content.W {
		return errors.New(errors.ErrCodeInvalidTheme, "three badges need %d units but content area is %d wide", w, content.W)
	}
	return nil
}
