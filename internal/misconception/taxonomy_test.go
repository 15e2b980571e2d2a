package misconception

import "testing"

func TestRegistryUniqueIDs(t *testing.T) {
	if len(registry) != len(seedMisconceptions) {
		t.Errorf("registry has %d entries, seed has %d: duplicate IDs", len(registry), len(seedMisconceptions))
	}
}

func TestGet(t *testing.T) {
	m := Get(OffByOneMinus)
	if m == nil {
		t.Fatal("Get(off_by_one_minus) returned nil")
	}
	if m.Category != CategoryOffByOne {
		t.Errorf("category = %q, want %q", m.Category, CategoryOffByOne)
	}
	if Get("nonexistent") != nil {
		t.Error("expected nil for unknown ID")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		label   string
		want    Category
		wantOK  bool
		isKnown bool
	}{
		{ComplexityConfused, CategoryComplexity, true, true},
		{"fence_post_error", CategoryOffByOne, true, true},
		{"thunk_forced_early", CategoryLazy, true, true},
		{"frame_lookup", CategoryScope, true, true},
		{IncorrectEval, CategoryEvaluation, true, false},
		{"common_error", "", false, false},
	}
	for _, tt := range tests {
		got, ok := Classify(tt.label)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.label, got, ok, tt.want, tt.wantOK)
		}
		if Known(tt.label) != tt.isKnown {
			t.Errorf("Known(%q) = %v, want %v", tt.label, Known(tt.label), tt.isKnown)
		}
	}
}

func TestGeneric(t *testing.T) {
	if !Generic(GenericError) || !Generic(ArithmeticError) {
		t.Error("expected generic labels")
	}
	if Generic(OffByOnePlus) {
		t.Error("off_by_one_plus is not generic")
	}
}

func TestByCategoryCoversEveryCategory(t *testing.T) {
	for c := range categoryKeywords {
		if c == CategoryScope || c == CategoryMutation {
			continue
		}
		if len(ByCategory(c)) == 0 {
			t.Errorf("no seed misconceptions for category %q", c)
		}
	}
}
