package theme

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/errors"
)

// Overrides maps theme keys to replacement values. Values decoded from JSON,
// YAML, TOML or BSON are accepted: any integral number for geometry keys and
// strings for colors and fonts.
type Overrides map[string]any

type field struct {
	key string
	ptr any // *int or *string
}

// fields lists every overridable parameter of t, pointing into t.
func (t *Theme) fields() []field {
	c := &t.Colors
	return []field{
		{"card_width", &t.CanvasW},
		{"card_height", &t.CanvasH},
		{"outer_padding", &t.OuterPadding},
		{"inner_padding", &t.InnerPadding},
		{"gap", &t.Gap},
		{"title_h", &t.TitleH},
		{"art_h", &t.ArtH},
		{"type_h", &t.TypeH},
		{"rules_h", &t.RulesH},
		{"stats_h", &t.StatsH},
		{"footer_h", &t.FooterH},
		{"text_inset", &t.TextInset},
		{"footer_inset", &t.FooterInset},
		{"title_baseline", &t.TitleBaseline},
		{"type_baseline", &t.TypeBaseline},
		{"rules_top", &t.RulesTop},
		{"flavor_bottom", &t.FlavorBottom},
		{"stats_baseline", &t.StatsBaseline},
		{"footer_baseline", &t.FooterBaseline},
		{"title_font_size", &t.TitleFontSize},
		{"rarity_font_size", &t.RarityFontSize},
		{"type_font_size", &t.TypeFontSize},
		{"rules_font_size", &t.RulesFontSize},
		{"flavor_font_size", &t.FlavorFontSize},
		{"stats_font_size", &t.StatsFontSize},
		{"footer_font_size", &t.FooterFontSize},
		{"badge_w", &t.BadgeW},
		{"badge_spacing", &t.BadgeSpacing},
		{"wrap_width", &t.WrapWidth},
		{"frame_radius", &t.FrameRadius},
		{"inner_radius", &t.InnerRadius},
		{"title_radius", &t.TitleRadius},
		{"art_radius", &t.ArtRadius},
		{"type_radius", &t.TypeRadius},
		{"rules_radius", &t.RulesRadius},
		{"badge_radius", &t.BadgeRadius},
		{"stroke_width", &t.StrokeWidth},
		{"frame_bg", &c.FrameBG},
		{"frame_inner", &c.FrameInner},
		{"frame_border", &c.FrameBorder},
		{"title_bg", &c.TitleBG},
		{"title_fg", &c.TitleFG},
		{"art_bg", &c.ArtBG},
		{"type_bg", &c.TypeBG},
		{"type_fg", &c.TypeFG},
		{"rules_bg", &c.RulesBG},
		{"rules_fg", &c.RulesFG},
		{"flavor_fg", &c.FlavorFG},
		{"footer_fg", &c.FooterFG},
		{"pt_bg", &c.BadgeBG},
		{"pt_fg", &c.BadgeFG},
		{"font_serif", &t.FontSerif},
		{"font_sans", &t.FontSans},
	}
}

// Keys returns the override keys a theme understands, in declaration order.
func Keys() []string {
	var t Theme
	fs := t.fields()
	keys := make([]string, len(fs))
	for i, f := range fs {
		keys[i] = f.key
	}
	return keys
}

// Merge returns a copy of t with o applied. The override wins for every key
// it names. Unknown keys are returned sorted and leave the theme unchanged;
// a value of the wrong type fails with INVALID_THEME.
func (t Theme) Merge(o Overrides) (Theme, []string, error) {
	if len(o) == 0 {
		return t, nil, nil
	}
	index := make(map[string]any)
	for _, f := range t.fields() {
		index[f.key] = f.ptr
	}

	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var unknown []string
	for _, k := range keys {
		v := o[k]
		switch p := index[k].(type) {
		case *int:
			n, err := toInt(v)
			if err != nil {
				return t, nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "theme key %q", k)
			}
			*p = n
		case *string:
			s, ok := v.(string)
			if !ok {
				return t, nil, errors.New(errors.ErrCodeInvalidTheme, "theme key %q: want string, got %T", k, v)
			}
			*p = s
		default:
			unknown = append(unknown, k)
		}
	}
	return t, unknown, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return floatToInt(f)
	}
	return 0, fmt.Errorf("want number, got %T", v)
}

func floatToInt(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("want integer, got %v", f)
	}
	return int(f), nil
}

// =============================================================================
// Rarity palette
// =============================================================================

var rarityAccent = map[card.Rarity]string{
	card.RarityCommon:    "#B0B0B0",
	card.RarityUncommon:  "#81AD82",
	card.RarityRare:      "#B8D8F1",
	card.RarityVeryRare:  "#F1DAB6",
	card.RarityLegendary: "#CF9F9F",
	card.RarityQuest:     "#E9E3B5",
}

// Accent returns the frame accent color for a rarity. The second result is
// false for RarityUnknown, in which case the theme keeps its own accent.
func Accent(r card.Rarity) (string, bool) {
	c, ok := rarityAccent[r]
	return c, ok
}

// Resolve builds the effective theme for one card: base, then overrides,
// then the rarity accent. The returned keys are the unknown override keys.
// The result is validated.
func Resolve(base Theme, o Overrides, r card.Rarity) (Theme, []string, error) {
	t, unknown, err := base.Merge(o)
	if err != nil {
		return Theme{}, nil, err
	}
	if accent, ok := Accent(r); ok {
		t.Colors.FrameInner = accent
	}
	if err := t.Validate(); err != nil {
		return Theme{}, unknown, err
	}
	return t, unknown, nil
}
