package textwrap

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "fits",
			text:  "Drink to regain 2d4+2 hit points.",
			width: 60,
			want:  []string{"Drink to regain 2d4+2 hit points."},
		},
		{
			name:  "greedy break",
			text:  "aaa bbb ccc ddd",
			width: 7,
			want:  []string{"aaa bbb", "ccc ddd"},
		},
		{
			name:  "long word kept whole",
			text:  "a supercalifragilistic b",
			width: 5,
			want:  []string{"a", "supercalifragilistic", "b"},
		},
		{
			name:  "blank paragraph preserved",
			text:  "first\n\nsecond",
			width: 60,
			want:  []string{"first", "", "second"},
		},
		{
			name:  "whitespace collapsed",
			text:  "  spaced   out\twords ",
			width: 60,
			want:  []string{"spaced out words"},
		},
		{
			name:  "empty text",
			text:  "",
			width: 60,
			want:  []string{""},
		},
		{
			name:  "runes not bytes",
			text:  "äöü äöü",
			width: 7,
			want:  []string{"äöü äöü"},
		},
		{
			name:  "zero width",
			text:  "a b",
			width: 0,
			want:  []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapIdempotent(t *testing.T) {
	f := func(text string, w uint8) bool {
		width := int(w%80) + 1
		once := Wrap(text, width)
		twice := Wrap(strings.Join(once, "\n"), width)
		return reflect.DeepEqual(once, twice)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 500, Rand: rand.New(rand.NewSource(1))}); err != nil {
		t.Error(err)
	}
}

func TestWrapLineWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vocab := []string{"a", "to", "the", "sword", "shimmers", "wolf", "autumn", "unbelievably"}

	for i := 0; i < 200; i++ {
		var words []string
		for j := rng.Intn(40); j > 0; j-- {
			words = append(words, vocab[rng.Intn(len(vocab))])
		}
		width := rng.Intn(30) + 1
		for _, line := range Wrap(strings.Join(words, " "), width) {
			if utf8.RuneCountInString(line) > width && strings.Contains(line, " ") {
				t.Fatalf("line %q exceeds width %d", line, width)
			}
		}
	}
}
