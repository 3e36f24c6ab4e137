package card

import (
	"encoding/json"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"
)

func TestWithDefaults(t *testing.T) {
	c := Card{FlavorText: "  whispers  "}.WithDefaults()

	checks := []struct {
		field, got, want string
	}{
		{"Name", c.Name, DefaultName},
		{"Rarity", c.Rarity, DefaultRarity},
		{"TypeLine", c.TypeLine, DefaultTypeLine},
		{"RulesText", c.RulesText.String(), DefaultRules},
		{"SetCode", c.SetCode, DefaultSetCode},
		{"Collector", c.Collector, DefaultCollector},
		{"Copyright", c.Copyright, DefaultCopyright},
		{"FlavorText", c.FlavorText, "whispers"},
		{"Author", c.Author, ""},
	}
	for _, tt := range checks {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.field, tt.got, tt.want)
		}
	}
}

func TestWithDefaultsKeepsValues(t *testing.T) {
	in := Card{Name: "Sword", Rarity: "Rare", RulesText: Text{"a", "b"}}
	out := in.WithDefaults()
	if out.Name != "Sword" || out.Rarity != "Rare" {
		t.Errorf("WithDefaults overwrote fields: %+v", out)
	}
	if !reflect.DeepEqual(out.RulesText, Text{"a", "b"}) {
		t.Errorf("RulesText = %q", out.RulesText)
	}
	if in.SetCode != "" {
		t.Error("WithDefaults mutated its receiver")
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want []string
	}{
		{"none", Card{}, nil},
		{"all", Card{PT: "3/3", Price: "50 gp", Weight: "1 lb"}, []string{"3/3", "50 gp", "1 lb"}},
		{"gap skipped", Card{PT: "1/1", Weight: "2 lb"}, []string{"1/1", "2 lb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.Stats(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Stats() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRarity(t *testing.T) {
	tests := []struct {
		in   string
		want Rarity
	}{
		{"", RarityCommon},
		{"Common", RarityCommon},
		{"uncommon", RarityUncommon},
		{"Very Rare", RarityVeryRare},
		{"VeryRare", RarityVeryRare},
		{"very rare", RarityVeryRare},
		{"LEGENDARY", RarityLegendary},
		{"Quest", RarityQuest},
		{"Mythic", RarityUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseRarity(tt.in); got != tt.want {
				t.Errorf("ParseRarity(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRarityString(t *testing.T) {
	for _, r := range Rarities() {
		if !r.Known() {
			t.Errorf("%v should be known", r)
		}
		if ParseRarity(r.String()) != r {
			t.Errorf("ParseRarity(%q) does not round-trip", r.String())
		}
	}
	if RarityUnknown.Known() {
		t.Error("RarityUnknown should not be known")
	}
}

func TestTextJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Text
		wantErr bool
	}{
		{"string", `{"rules_text":"Deal 1 damage."}`, Text{"Deal 1 damage."}, false},
		{"list", `{"rules_text":["One.","","Two."]}`, Text{"One.", "", "Two."}, false},
		{"absent", `{}`, nil, false},
		{"number", `{"rules_text":3}`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Card
			err := json.Unmarshal([]byte(tt.in), &c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(c.RulesText, tt.want) {
				t.Errorf("RulesText = %q, want %q", c.RulesText, tt.want)
			}
		})
	}
}

func TestTextYAML(t *testing.T) {
	src := `
cards:
  - name: Sword of the Autumn Wolf
    rules_text: Strikes true.
  - name: Potion of Brightmind
    rules_text:
      - Drink it.
      - Think fast.
`
	var f File
	if err := yaml.Unmarshal([]byte(src), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(f.Cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(f.Cards))
	}
	if !reflect.DeepEqual(f.Cards[0].RulesText, Text{"Strikes true."}) {
		t.Errorf("card 0 rules = %q", f.Cards[0].RulesText)
	}
	if !reflect.DeepEqual(f.Cards[1].RulesText, Text{"Drink it.", "Think fast."}) {
		t.Errorf("card 1 rules = %q", f.Cards[1].RulesText)
	}
}

func TestTextBSON(t *testing.T) {
	tests := []struct {
		name string
		doc  bson.M
		want Text
	}{
		{"string", bson.M{"name": "x", "rules_text": "Single."}, Text{"Single."}},
		{"array", bson.M{"name": "x", "rules_text": bson.A{"A.", "B."}}, Text{"A.", "B."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(tt.doc)
			if err != nil {
				t.Fatal(err)
			}
			var c Card
			if err := bson.Unmarshal(raw, &c); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(c.RulesText, tt.want) {
				t.Errorf("RulesText = %q, want %q", c.RulesText, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Sword of the Autumn Wolf", "Sword_of_the_Autumn_Wolf"},
		{"Potion of Brightmind", "Potion_of_Brightmind"},
		{"  Ring: +1 (cursed)!  ", "Ring_1_cursed"},
		{"Élan Vital", "Elan_Vital"},
		{"keep-this_one", "keep-this_one"},
		{"!!!", "card"},
		{"", "card"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slug(tt.in); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestID(t *testing.T) {
	c := Card{Name: "Sword of the Autumn Wolf"}
	if got := c.ID(); got != "sword_of_the_autumn_wolf" {
		t.Errorf("ID() = %q", got)
	}
}
