package deckgen

import "testing"

func TestConstraintsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Constraints)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(c *Constraints) {},
		},
		{
			name:    "negative budget",
			mutate:  func(c *Constraints) { c.TotalBudget = -1 },
			wantErr: true,
		},
		{
			name:    "negative max card price",
			mutate:  func(c *Constraints) { c.MaxCardPrice = -0.01 },
			wantErr: true,
		},
		{
			name:   "random tag count at bound",
			mutate: func(c *Constraints) { c.RandomTagCount = MaxRandomTags },
		},
		{
			name:    "random tag count over bound",
			mutate:  func(c *Constraints) { c.RandomTagCount = MaxRandomTags + 1 },
			wantErr: true,
		},
		{
			name:    "negative random tag count",
			mutate:  func(c *Constraints) { c.RandomTagCount = -1 },
			wantErr: true,
		},
		{
			name:   "weight at upper bound",
			mutate: func(c *Constraints) { c.CardTypeWeights.Creatures = MaxTypeWeight },
		},
		{
			name:    "weight over upper bound",
			mutate:  func(c *Constraints) { c.CardTypeWeights.Instants = MaxTypeWeight + 1 },
			wantErr: true,
		},
		{
			name:    "negative weight",
			mutate:  func(c *Constraints) { c.CardTypeWeights.Sorceries = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConstraints()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestDefaultCardTypeWeights(t *testing.T) {
	w := DefaultCardTypeWeights()
	for name, got := range map[string]int{
		"creatures":    w.Creatures,
		"artifacts":    w.Artifacts,
		"enchantments": w.Enchantments,
		"instants":     w.Instants,
		"sorceries":    w.Sorceries,
	} {
		if got != NeutralTypeWeight {
			t.Errorf("Expected neutral weight for %s, got %d", name, got)
		}
	}
	if w.Planeswalkers != 0 {
		t.Errorf("Expected no planeswalkers by default, got %d", w.Planeswalkers)
	}
}
