package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/geom"
	"github.com/matzehuels/cardpress/pkg/render/card/art"
	"github.com/matzehuels/cardpress/pkg/render/card/theme"
	"github.com/matzehuels/cardpress/pkg/textwrap"
)

const artClipID = "artClip"

// Option configures Build.
type Option func(*builder)

type builder struct {
	art      art.Resolver
	registry *theme.Registry
	base     *theme.Theme
}

// WithArt sets the resolver for art references. Without it every card with
// an art reference gets the placeholder and an ART_NOT_FOUND warning.
func WithArt(r art.Resolver) Option { return func(b *builder) { b.art = r } }

// WithRegistry resolves the card's theme_name against reg.
func WithRegistry(reg *theme.Registry) Option { return func(b *builder) { b.registry = reg } }

// WithTheme forces a base theme, ignoring the card's theme_name.
func WithTheme(t theme.Theme) Option { return func(b *builder) { b.base = &t } }

// Build lays out one card. Empty card fields receive their defaults first.
func Build(c card.Card, opts ...Option) (Document, error) {
	b := builder{}
	for _, opt := range opts {
		opt(&b)
	}
	c = c.WithDefaults()

	base, err := b.baseTheme(c)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "card %q", c.Name)
	}
	th, unknown, err := theme.Resolve(base, theme.Overrides(c.Theme), c.ParsedRarity())
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "card %q", c.Name)
	}

	doc := Document{Width: th.CanvasW, Height: th.CanvasH}
	for _, k := range unknown {
		doc.Warnings = append(doc.Warnings, errors.New(errors.ErrCodeInvalidTheme, "card %q: unknown theme key %q ignored", c.Name, k))
	}

	r := th.Regions()
	a := th.Anchors()

	doc.Clips = []Clip{{ID: artClipID, Rect: r.Art, Radius: th.ArtRadius}}
	doc.Regions = []Region{
		frameRegion(th, r),
		titleRegion(th, r, a, c),
		b.artRegion(th, r, c, &doc),
		typeRegion(th, r, a, c),
		rulesRegion(th, r, a, c),
		statsRegion(th, r, c),
		footerRegion(th, r, a, c),
	}
	return doc, nil
}

func (b builder) baseTheme(c card.Card) (theme.Theme, error) {
	if b.base != nil {
		return *b.base, nil
	}
	reg := b.registry
	if reg == nil {
		reg = theme.NewRegistry()
	}
	return reg.Lookup(c.ThemeName)
}

func box(th theme.Theme, rect geom.Rect, radius int, fill string) Shape {
	return Shape{Rect: rect, Radius: radius, Fill: fill, Stroke: th.Colors.FrameBorder, StrokeWidth: th.StrokeWidth}
}

func frameRegion(th theme.Theme, r theme.Regions) Region {
	return Region{
		Name: RegionFrame,
		Rect: r.Canvas,
		Shapes: []Shape{
			{Rect: r.Canvas, Radius: th.FrameRadius, Fill: th.Colors.FrameBG},
			box(th, r.Inner, th.InnerRadius, th.Colors.FrameInner),
		},
	}
}

func titleRegion(th theme.Theme, r theme.Regions, a theme.Anchors, c card.Card) Region {
	return Region{
		Name:   theme.BandTitle,
		Rect:   r.Title,
		Shapes: []Shape{box(th, r.Title, th.TitleRadius, th.Colors.TitleBG)},
		Texts: []Text{
			line(a.Title, th.FontSerif, th.Colors.TitleFG, c.Name, "700", ""),
			line(a.Rarity, th.FontSerif, th.Colors.TitleFG, c.Rarity, "", "end"),
		},
	}
}

func (b builder) artRegion(th theme.Theme, r theme.Regions, c card.Card, doc *Document) Region {
	reg := Region{Name: theme.BandArt, Rect: r.Art}
	border := Shape{Rect: r.Art, Radius: th.ArtRadius, Stroke: th.Colors.FrameBorder, StrokeWidth: th.StrokeWidth}
	reg.Overlay = []Shape{border}

	if c.ArtPath != "" {
		href, err := b.resolveArt(c.ArtPath)
		if err == nil {
			reg.Image = &Image{Href: href, Rect: r.Art, ClipID: artClipID}
			return reg
		}
		doc.Warnings = append(doc.Warnings, err)
	}
	reg.Shapes = []Shape{box(th, r.Art, th.ArtRadius, th.Colors.ArtBG)}
	return reg
}

func (b builder) resolveArt(ref string) (string, error) {
	if b.art == nil {
		return "", errors.New(errors.ErrCodeArtNotFound, "art %q: no resolver configured", ref)
	}
	href, err := b.art.Resolve(ref)
	if err != nil {
		if errors.Is(err, errors.ErrCodeArtNotFound) {
			return "", err
		}
		return "", errors.Wrap(errors.ErrCodeArtNotFound, err, "art %q", ref)
	}
	return href, nil
}

func typeRegion(th theme.Theme, r theme.Regions, a theme.Anchors, c card.Card) Region {
	return Region{
		Name:   theme.BandType,
		Rect:   r.Type,
		Shapes: []Shape{box(th, r.Type, th.TypeRadius, th.Colors.TypeBG)},
		Texts:  []Text{line(a.Type, th.FontSans, th.Colors.TypeFG, c.TypeLine, "600", "")},
	}
}

func rulesRegion(th theme.Theme, r theme.Regions, a theme.Anchors, c card.Card) Region {
	reg := Region{
		Name:   theme.BandRules,
		Rect:   r.Rules,
		Shapes: []Shape{box(th, r.Rules, th.RulesRadius, th.Colors.RulesBG)},
	}

	rules := line(a.Rules, th.FontSerif, th.Colors.RulesFG, "", "", "")
	rules.Lines = textwrap.Wrap(c.RulesText.String(), th.WrapWidth)
	reg.Texts = append(reg.Texts, rules)

	if c.FlavorText != "" {
		flavor := line(a.Flavor, th.FontSerif, th.Colors.FlavorFG, "", "", "")
		flavor.Style = "italic"
		flavor.Lines = textwrap.Wrap("“"+c.FlavorText+"”", th.WrapWidth)
		reg.Texts = append(reg.Texts, flavor)
	}
	return reg
}

func statsRegion(th theme.Theme, r theme.Regions, c card.Card) Region {
	reg := Region{Name: theme.BandStats, Rect: r.Stats}
	stats := c.Stats()
	for i, rect := range th.Badges(len(stats)) {
		reg.Shapes = append(reg.Shapes, box(th, rect, th.BadgeRadius, th.Colors.BadgeBG))
		reg.Texts = append(reg.Texts, line(th.BadgeText(rect), th.FontSerif, th.Colors.BadgeFG, stats[i], "700", "middle"))
	}
	return reg
}

func footerRegion(th theme.Theme, r theme.Regions, a theme.Anchors, c card.Card) Region {
	left := strings.Join([]string{c.SetCode, c.Collector, c.Author}, " • ")
	return Region{
		Name: theme.BandFooter,
		Rect: r.Footer,
		Texts: []Text{
			line(a.FooterLeft, th.FontSans, th.Colors.FooterFG, left, "", ""),
			line(a.FooterRight, th.FontSans, th.Colors.FooterFG, c.Copyright, "", "end"),
		},
	}
}

func line(a theme.Anchor, family, fill, s, weight, anchor string) Text {
	t := Text{
		X: a.X, Y: a.Y, Size: a.Size, LineHeight: a.Size,
		Family: family, Fill: fill, Weight: weight, Anchor: anchor,
	}
	if s != "" {
		t.Lines = []string{s}
	}
	return t
}

// String summarises a region for logs and the inspect command.
func (r Region) String() string {
	return fmt.Sprintf("%s %dx%d+%d+%d", r.Name, r.Rect.W, r.Rect.H, r.Rect.X, r.Rect.Y)
}
