package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/render/card/art"
	"github.com/matzehuels/cardpress/pkg/render/card/layout"
)

func build(t *testing.T, c card.Card, opts ...layout.Option) layout.Document {
	t.Helper()
	doc, err := layout.Build(c, opts...)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return doc
}

func TestRenderSVG(t *testing.T) {
	doc := build(t, card.Card{
		Name:      "Sword & Board",
		Rarity:    "Rare",
		RulesText: card.Text{"Line one.", "Line two."},
		PT:        "3/1",
	})
	svg := string(RenderSVG(doc))

	wants := []string{
		`<?xml version="1.0" encoding="UTF-8" standalone="no"?>`,
		`<svg width="744px" height="1039px" viewBox="0 0 744 1039" xmlns="http://www.w3.org/2000/svg">`,
		`<clipPath id="artClip"><rect x="18" y="76" rx="10" ry="10" width="708" height="430"/></clipPath>`,
		`fill="#B8D8F1"`,
		`>Sword &amp; Board</text>`,
		`font-family="Georgia, 'Times New Roman', serif"`,
		`<tspan x="36" y="600">Line one.</tspan><tspan x="36" y="624">Line two.</tspan>`,
		`text-anchor="middle"`,
		`fill="none" stroke="#121212" stroke-width="2"`,
		"</svg>\n",
	}
	for _, w := range wants {
		if !strings.Contains(svg, w) {
			t.Errorf("SVG missing %q", w)
		}
	}
	if strings.Contains(svg, "<image") {
		t.Error("placeholder card should not embed an image")
	}
}

func TestRenderSVGArt(t *testing.T) {
	resolver := art.ResolverFunc(func(string) (string, error) { return "data:image/png;base64,QUJD", nil })
	doc := build(t, card.Card{Name: "x", ArtPath: "a.png"}, layout.WithArt(resolver))
	svg := string(RenderSVG(doc))

	img := `<image href="data:image/png;base64,QUJD" x="18" y="76" width="708" height="430" preserveAspectRatio="xMidYMid slice" clip-path="url(#artClip)"/>`
	i := strings.Index(svg, img)
	if i < 0 {
		t.Fatalf("SVG missing image element")
	}
	border := `<rect x="18" y="76" width="708" height="430" rx="10" ry="10" fill="none"`
	if j := strings.Index(svg, border); j < i {
		t.Error("art border must be drawn after the image")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	c := card.Card{Name: "Potion of Brightmind", FlavorText: "Fizz.", Price: "50 gp"}
	a := RenderSVG(build(t, c))
	b := RenderSVG(build(t, c))
	if !bytes.Equal(a, b) {
		t.Error("RenderSVG output differs between runs")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	doc := build(t, card.Card{Name: "x"})

	plain := string(RenderSVG(doc, WithoutHeader()))
	if strings.HasPrefix(plain, "<?xml") {
		t.Error("WithoutHeader kept the XML declaration")
	}
	if strings.Contains(plain, "<!--") {
		t.Error("comments emitted without WithComments")
	}

	commented := string(RenderSVG(doc, WithComments()))
	if !strings.Contains(commented, "<!-- rules -->") {
		t.Error("WithComments did not label regions")
	}
}

func TestRenderJSON(t *testing.T) {
	doc := build(t, card.Card{Name: "x", ArtPath: "missing.png"})
	data, err := RenderJSON(doc)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 744 || out.Height != 1039 {
		t.Errorf("size = %dx%d", out.Width, out.Height)
	}
	if len(out.Regions) != 7 {
		t.Errorf("regions = %d, want 7", len(out.Regions))
	}
	if len(out.Warnings) != 1 || out.Warnings[0].Code != "ART_NOT_FOUND" {
		t.Errorf("warnings = %+v", out.Warnings)
	}
}
