package layout

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/geom"
	"github.com/matzehuels/cardpress/pkg/render/card/art"
	"github.com/matzehuels/cardpress/pkg/render/card/theme"
)

func mustBuild(t *testing.T, c card.Card, opts ...Option) Document {
	t.Helper()
	doc, err := Build(c, opts...)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return doc
}

func region(t *testing.T, doc Document, name string) Region {
	t.Helper()
	r, ok := doc.Region(name)
	if !ok {
		t.Fatalf("region %q missing", name)
	}
	return r
}

func TestBuildRegionOrder(t *testing.T) {
	doc := mustBuild(t, card.Card{Name: "Sword of the Autumn Wolf"})

	var names []string
	for _, r := range doc.Regions {
		names = append(names, r.Name)
	}
	want := []string{"frame", "title", "art", "type", "rules", "stats", "footer"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("regions = %v, want %v", names, want)
	}
	if doc.Width != 744 || doc.Height != 1039 {
		t.Errorf("size = %dx%d, want 744x1039", doc.Width, doc.Height)
	}
}

func TestBuildLegendaryAccent(t *testing.T) {
	doc := mustBuild(t, card.Card{Name: "Crown", Rarity: "Legendary"})
	frame := region(t, doc, RegionFrame)
	if got := frame.Shapes[1].Fill; got != "#CF9F9F" {
		t.Errorf("inner accent = %q, want #CF9F9F", got)
	}

	unknown := mustBuild(t, card.Card{Name: "Crown", Rarity: "Mythic"})
	if got := region(t, unknown, RegionFrame).Shapes[1].Fill; got != theme.Default().Colors.FrameInner {
		t.Errorf("unknown rarity accent = %q, want theme default", got)
	}
	title := region(t, unknown, theme.BandTitle)
	if title.Texts[1].Lines[0] != "Mythic" {
		t.Errorf("rarity text = %q, want display text kept", title.Texts[1].Lines)
	}
}

func TestBuildNoStats(t *testing.T) {
	plain := mustBuild(t, card.Card{Name: "Plain"})
	stats := region(t, plain, theme.BandStats)
	if len(stats.Shapes) != 0 || len(stats.Texts) != 0 {
		t.Errorf("stats region has %d shapes, %d texts; want none", len(stats.Shapes), len(stats.Texts))
	}

	withStats := mustBuild(t, card.Card{Name: "Plain", PT: "2/2", Price: "10 gp", Weight: "1 lb"})
	if got := region(t, withStats, theme.BandStats); len(got.Shapes) != 3 {
		t.Errorf("badge count = %d, want 3", len(got.Shapes))
	}
	if region(t, plain, theme.BandRules).Rect != region(t, withStats, theme.BandRules).Rect {
		t.Error("rules rectangle changed with stats present")
	}
}

func TestBuildBadgesSkipAbsent(t *testing.T) {
	doc := mustBuild(t, card.Card{Name: "x", PT: "1/1", Weight: "3 lb"})
	stats := region(t, doc, theme.BandStats)
	if len(stats.Shapes) != 2 {
		t.Fatalf("badge count = %d, want 2", len(stats.Shapes))
	}
	if stats.Shapes[0].Rect != geom.R(576, 936, 150, 52) || stats.Shapes[1].Rect != geom.R(420, 936, 150, 52) {
		t.Errorf("badges = %+v, %+v", stats.Shapes[0].Rect, stats.Shapes[1].Rect)
	}
	if stats.Texts[0].Lines[0] != "1/1" || stats.Texts[1].Lines[0] != "3 lb" {
		t.Errorf("badge labels = %q, %q", stats.Texts[0].Lines, stats.Texts[1].Lines)
	}
	if stats.Texts[0].Anchor != "middle" || stats.Texts[0].X != 651 {
		t.Errorf("badge text anchor = %q at x=%d", stats.Texts[0].Anchor, stats.Texts[0].X)
	}
}

func TestBuildDeterministic(t *testing.T) {
	c := card.Card{
		Name:       "Potion of Brightmind",
		Rarity:     "Uncommon",
		RulesText:  card.Text{"Drink to think.", "", "Lasts one hour."},
		FlavorText: "Tastes of copper.",
		PT:         "1/1",
		Theme:      map[string]any{"title_bg": "#fff", "zzz": 1, "aaa": 2},
	}
	a := mustBuild(t, c)
	b := mustBuild(t, c)
	if !reflect.DeepEqual(a, b) {
		t.Error("Build() is not deterministic")
	}
}

func TestBuildRulesLines(t *testing.T) {
	rules := card.Text{
		"You gain advantage on Intelligence checks while the potion lasts and can recall any fact you read.",
		"",
		"One use.",
	}
	doc := mustBuild(t, card.Card{Name: "x", RulesText: rules, FlavorText: "Bright."})
	r := region(t, doc, theme.BandRules)
	if len(r.Texts) != 2 {
		t.Fatalf("rules texts = %d, want rules + flavor", len(r.Texts))
	}

	body := r.Texts[0]
	if len(body.Lines) != 4 {
		t.Fatalf("rules lines = %q, want 4 lines", body.Lines)
	}
	if body.Lines[2] != "" {
		t.Errorf("blank paragraph lost: %q", body.Lines)
	}
	if got := body.Baselines(); !reflect.DeepEqual(got, []int{600, 624, 648, 672}) {
		t.Errorf("baselines = %v", got)
	}
	for _, l := range body.Lines {
		if len([]rune(l)) > 60 {
			t.Errorf("line %q exceeds wrap width", l)
		}
	}

	flavor := r.Texts[1]
	if flavor.Style != "italic" || flavor.Y != 882 {
		t.Errorf("flavor style=%q y=%d", flavor.Style, flavor.Y)
	}
	if flavor.Lines[0] != "“Bright.”" {
		t.Errorf("flavor = %q", flavor.Lines)
	}
}

func TestBuildNoFlavor(t *testing.T) {
	doc := mustBuild(t, card.Card{Name: "x", FlavorText: "   "})
	if n := len(region(t, doc, theme.BandRules).Texts); n != 1 {
		t.Errorf("rules texts = %d, want 1", n)
	}
}

func TestBuildFooter(t *testing.T) {
	doc := mustBuild(t, card.Card{Name: "x", Author: "mk"})
	f := region(t, doc, theme.BandFooter)
	if got := f.Texts[0].Lines[0]; got != "DND • 001/001 • mk" {
		t.Errorf("footer left = %q", got)
	}
	if f.Texts[1].Lines[0] != "© 2025" || f.Texts[1].Anchor != "end" {
		t.Errorf("footer right = %q anchor %q", f.Texts[1].Lines, f.Texts[1].Anchor)
	}
	if f.Texts[0].Y != f.Texts[1].Y {
		t.Error("footer runs not on one baseline")
	}
}

func TestBuildArt(t *testing.T) {
	resolver := art.ResolverFunc(func(ref string) (string, error) {
		if ref == "wolf.png" {
			return "data:image/png;base64,AAAA", nil
		}
		return "", errors.New(errors.ErrCodeArtNotFound, "art %q missing", ref)
	})

	tests := []struct {
		name      string
		artPath   string
		opts      []Option
		wantImage bool
		wantWarn  bool
	}{
		{"resolved", "wolf.png", []Option{WithArt(resolver)}, true, false},
		{"missing", "ghost.png", []Option{WithArt(resolver)}, false, true},
		{"no resolver", "wolf.png", nil, false, true},
		{"no reference", "", []Option{WithArt(resolver)}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustBuild(t, card.Card{Name: "x", ArtPath: tt.artPath}, tt.opts...)
			a := region(t, doc, theme.BandArt)

			if (a.Image != nil) != tt.wantImage {
				t.Errorf("image present = %v, want %v", a.Image != nil, tt.wantImage)
			}
			if tt.wantImage && len(a.Shapes) != 0 {
				t.Error("placeholder drawn under a resolved image")
			}
			if !tt.wantImage && len(a.Shapes) != 1 {
				t.Error("placeholder missing")
			}
			if len(a.Overlay) != 1 || a.Overlay[0].Fill != "" {
				t.Error("border overlay missing")
			}

			hasWarn := false
			for _, w := range doc.Warnings {
				if errors.Is(w, errors.ErrCodeArtNotFound) {
					hasWarn = true
				}
			}
			if hasWarn != tt.wantWarn {
				t.Errorf("ART_NOT_FOUND warning = %v, want %v", hasWarn, tt.wantWarn)
			}
		})
	}
}

func TestBuildThemeOverrides(t *testing.T) {
	doc := mustBuild(t, card.Card{Name: "x", Theme: map[string]any{"art_h": 400.0, "shiny": true}})
	if got := region(t, doc, theme.BandArt).Rect.H; got != 400 {
		t.Errorf("art height = %d, want 400", got)
	}
	if len(doc.Warnings) != 1 || !strings.Contains(doc.Warnings[0].Error(), "shiny") {
		t.Errorf("warnings = %v, want one for unknown key", doc.Warnings)
	}
}

func TestBuildInvalidTheme(t *testing.T) {
	tests := []struct {
		name string
		card card.Card
	}{
		{"overflowing stack", card.Card{Name: "x", Theme: map[string]any{"rules_h": 5000}}},
		{"wrong type", card.Card{Name: "x", Theme: map[string]any{"gap": "wide"}}},
		{"unknown theme name", card.Card{Name: "x", ThemeName: "neon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.card)
			if !errors.Is(err, errors.ErrCodeInvalidTheme) {
				t.Errorf("Build() error = %v, want INVALID_THEME", err)
			}
		})
	}
}

func TestBuildThemeSelection(t *testing.T) {
	reg := theme.NewRegistry()
	doc := mustBuild(t, card.Card{Name: "x", ThemeName: "ink"}, WithRegistry(reg))
	if got := region(t, doc, RegionFrame).Shapes[0].Fill; got != "#ffffff" {
		t.Errorf("ink frame bg = %q", got)
	}

	forced := mustBuild(t, card.Card{Name: "x", ThemeName: "ink"}, WithTheme(theme.Default()))
	if got := region(t, forced, RegionFrame).Shapes[0].Fill; got != "#1b1b1b" {
		t.Errorf("forced frame bg = %q", got)
	}
}
