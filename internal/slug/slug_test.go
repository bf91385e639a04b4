package slug

import (
	"errors"
	"fmt"
	"testing"
)

func TestBase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "ABL Cash Fund", "abl-cash-fund"},
		{"punctuation", "Al-Ameen Islamic (Cash) Fund!", "al-ameen-islamic-cash-fund"},
		{"diacritics", "Fonds Crédit Équilibré", "fonds-credit-equilibre"},
		{"collapses_hyphens", "NBP  --  Income   Fund", "nbp-income-fund"},
		{"formerly_suffix", "Example Fund - Formerly XYZ", "example-fund"},
		{"formerly_lowercase", "Example Fund (formerly XYZ Fund)", "example-fund"},
		{"trailing_hyphen", "Meezan Fund -", "meezan-fund"},
		{"keeps_underscore", "Fund_A", "fund_a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Base(tt.in)
			if err != nil {
				t.Fatalf("Base(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Base(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBase_Unsluggable(t *testing.T) {
	for _, in := range []string{"", "   ", "!!!", "---", "中文"} {
		if _, err := Base(in); !errors.Is(err, ErrUnsluggable) {
			t.Errorf("Base(%q) error = %v, want ErrUnsluggable", in, err)
		}
	}
}

func TestAssign_FormerlyMatchesPlainName(t *testing.T) {
	a, err := Assign("Example Fund - Formerly XYZ", NewSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Assign("Example Fund", NewSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("slugs differ: %q vs %q", a, b)
	}
}

func TestAssign_Collisions(t *testing.T) {
	used := NewSet("abl-cash-fund", "abl-cash-fund-2")

	got, err := Assign("ABL Cash Fund", used)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abl-cash-fund-3" {
		t.Errorf("got %q, want abl-cash-fund-3", got)
	}
	if !used.Has("abl-cash-fund-3") {
		t.Error("assigned slug was not recorded in the set")
	}

	got, err = Assign("ABL Cash Fund", used)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abl-cash-fund-4" {
		t.Errorf("got %q, want abl-cash-fund-4", got)
	}
}

func TestAssign_NeverReusesSlug(t *testing.T) {
	used := NewSet("alpha", "beta-fund")
	names := []string{"Alpha", "Alpha", "Beta Fund", "beta fund", "Gamma", "Alpha - formerly Omega", "ALPHA"}

	seen := map[string]bool{}
	for _, s := range used.Slugs() {
		seen[s] = true
	}
	for i, name := range names {
		before := used.Len()
		got, err := Assign(name, used)
		if err != nil {
			t.Fatalf("Assign(%q) error: %v", name, err)
		}
		if seen[got] {
			t.Fatalf("call %d: Assign(%q) reused slug %q", i, name, got)
		}
		seen[got] = true
		if used.Len() != before+1 {
			t.Errorf("call %d: set grew by %d, want 1", i, used.Len()-before)
		}
	}
}

func TestAssign_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		used := NewSet("fund", "fund-2")
		got, err := Assign("Fund", used)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "fund-3" {
			t.Errorf("run %d: got %q, want fund-3", i, got)
		}
	}
}

func TestAssign_FailureLeavesSetUntouched(t *testing.T) {
	used := NewSet("a")
	got, err := Assign("???", used)
	if !errors.Is(err, ErrUnsluggable) {
		t.Fatalf("expected ErrUnsluggable, got %v", err)
	}
	if got != "" {
		t.Errorf("expected empty slug, got %q", got)
	}
	if used.Len() != 1 {
		t.Errorf("set length = %d, want 1", used.Len())
	}
}

func TestSet(t *testing.T) {
	s := NewSet("b", "a", "b")
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if got := fmt.Sprint(s.Slugs()); got != "[b a]" {
		t.Errorf("Slugs() = %s, want [b a]", got)
	}
	if s.Add("a") {
		t.Error("Add of existing slug should report false")
	}
}
