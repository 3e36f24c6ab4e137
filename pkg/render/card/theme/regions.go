package theme

import "github.com/matzehuels/cardpress/pkg/geom"

// Band names in stacking order.
const (
	BandTitle  = "title"
	BandArt    = "art"
	BandType   = "type"
	BandRules  = "rules"
	BandStats  = "stats"
	BandFooter = "footer"
)

// Regions is the set of rectangles derived from a theme.
type Regions struct {
	Canvas  geom.Rect // Whole card
	Inner   geom.Rect // Accent frame, inset by outer padding
	Content geom.Rect // Band area, inset by outer plus inner padding

	Title, Art, Type, Rules, Stats, Footer geom.Rect
}

// NamedRect pairs a band name with its rectangle.
type NamedRect struct {
	Name string
	Rect geom.Rect
}

// Bands returns the six bands in stacking order.
func (r Regions) Bands() []NamedRect {
	return []NamedRect{
		{BandTitle, r.Title},
		{BandArt, r.Art},
		{BandType, r.Type},
		{BandRules, r.Rules},
		{BandStats, r.Stats},
		{BandFooter, r.Footer},
	}
}

// Regions computes every rectangle of the card from the theme scalars.
func (t Theme) Regions() Regions {
	canvas := geom.R(0, 0, t.CanvasW, t.CanvasH)
	inner := canvas.Inset(t.OuterPadding)
	content := inner.Inset(t.InnerPadding)

	y := content.Y
	band := func(h int) geom.Rect {
		r := geom.R(content.X, y, content.W, h)
		y += h + t.Gap
		return r
	}

	return Regions{
		Canvas:  canvas,
		Inner:   inner,
		Content: content,
		Title:   band(t.TitleH),
		Art:     band(t.ArtH),
		Type:    band(t.TypeH),
		Rules:   band(t.RulesH),
		Stats:   band(t.StatsH),
		Footer:  band(t.FooterH),
	}
}

// Anchor is a text anchor point with its font size.
type Anchor struct {
	X, Y int
	Size int
}

// Anchors holds the text anchors of a card.
type Anchors struct {
	Title       Anchor
	Rarity      Anchor // text-anchor end
	Type        Anchor
	Rules       Anchor // First line baseline
	Flavor      Anchor // First line baseline
	FooterLeft  Anchor
	FooterRight Anchor // text-anchor end
}

// Anchors computes the text anchors from the theme scalars.
func (t Theme) Anchors() Anchors {
	r := t.Regions()
	left := r.Content.X + t.TextInset
	titleY := r.Title.Bottom() - t.TitleBaseline
	footerY := r.Footer.Bottom() - t.FooterBaseline

	return Anchors{
		Title:       Anchor{left, titleY, t.TitleFontSize},
		Rarity:      Anchor{r.Content.Right() - 2*t.TextInset, titleY, t.RarityFontSize},
		Type:        Anchor{left, r.Type.Bottom() - t.TypeBaseline, t.TypeFontSize},
		Rules:       Anchor{left, r.Rules.Y + t.RulesTop + t.RulesFontSize, t.RulesFontSize},
		Flavor:      Anchor{left, r.Rules.Bottom() - t.FlavorBottom, t.FlavorFontSize},
		FooterLeft:  Anchor{r.Content.X + t.FooterInset, footerY, t.FooterFontSize},
		FooterRight: Anchor{r.Content.Right() - t.TextInset - t.FooterInset, footerY, t.FooterFontSize},
	}
}

// Badges returns n badge rectangles laid out right to left from the stats
// band's right edge, each one badge width plus spacing left of the previous.
func (t Theme) Badges(n int) []geom.Rect {
	stats := t.Regions().Stats
	out := make([]geom.Rect, 0, n)
	x := stats.Right()
	for range n {
		out = append(out, geom.R(x-t.BadgeW, stats.Y, t.BadgeW, stats.H))
		x -= t.BadgeW + t.BadgeSpacing
	}
	return out
}

// BadgeText returns the centered label anchor for a badge rectangle.
func (t Theme) BadgeText(badge geom.Rect) Anchor {
	return Anchor{badge.CenterX(), badge.Bottom() - t.StatsBaseline, t.StatsFontSize}
}
