package tagger

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "keyword line",
			text: "Flying, lifelink",
			want: []string{"flying", "lifelink"},
		},
		{
			name: "keyword in sentence",
			text: "When you cast this spell, storm hits the stack.",
			want: []string{"storm"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "no recognized keywords",
			text: "Destroy target creature.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSharedKeywords(t *testing.T) {
	commander := "Flying, deathtouch\nWhenever this creature deals combat damage, proliferate."
	candidate := "Flying\nWhen this enters, proliferate twice."

	shared := SharedKeywords(commander, candidate)
	want := []string{"flying", "proliferate"}
	if !reflect.DeepEqual(shared, want) {
		t.Errorf("SharedKeywords = %v, want %v", shared, want)
	}
}

func TestKeywordRarityWeight(t *testing.T) {
	if w := KeywordRarityWeight("flying"); w >= 1.0 {
		t.Errorf("Evergreen keyword should weigh below neutral, got %.2f", w)
	}
	if w := KeywordRarityWeight("storm"); w <= 1.5 {
		t.Errorf("Build-around keyword should weigh well above neutral, got %.2f", w)
	}
	if w := KeywordRarityWeight("some_future_mechanic"); w != 1.0 {
		t.Errorf("Unknown keyword should be neutral, got %.2f", w)
	}
	// Tag-token form with underscores resolves the same as the display form.
	if KeywordRarityWeight("first_strike") != KeywordRarityWeight("first strike") {
		t.Error("Underscore and space forms should weigh the same")
	}
}

func TestCreatureTypes(t *testing.T) {
	tests := []struct {
		name     string
		typeLine string
		want     []string
	}{
		{
			name:     "em-dash separator",
			typeLine: "Legendary Creature — Elf Druid",
			want:     []string{"Druid", "Elf"},
		},
		{
			name:     "hyphen separator",
			typeLine: "Creature - Goblin Warrior",
			want:     []string{"Goblin", "Warrior"},
		},
		{
			name:     "not a creature",
			typeLine: "Tribal Sorcery — Elf",
			want:     nil,
		},
		{
			name:     "no subtypes",
			typeLine: "Creature",
			want:     nil,
		},
		{
			name:     "unrecognized subtype dropped",
			typeLine: "Creature — Brushwagg",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreatureTypes(tt.typeLine)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CreatureTypes(%q) = %v, want %v", tt.typeLine, got, tt.want)
			}
		})
	}
}
