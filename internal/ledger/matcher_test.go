package ledger

import "testing"

func TestPrefixMatcherExact(t *testing.T) {
	prior := []Debtor{
		{Name: "Aliyev Vali", USD: 100},
		{Name: "Karimova Dilnoza", USD: 50},
	}
	m := NewPrefixMatcher()

	got := m.Match(prior, "ALIYEV VALI")
	if got == nil || got.Name != "Aliyev Vali" {
		t.Fatalf("expected exact case-insensitive match, got %v", got)
	}

	got = m.Match(prior, "karimova, dilnoza.")
	if got == nil || got.Name != "Karimova Dilnoza" {
		t.Fatalf("expected punctuation-insensitive match, got %v", got)
	}
}

func TestPrefixMatcherPrefix(t *testing.T) {
	prior := []Debtor{{Name: "Karimova Dilnoza", USD: 50}}
	m := NewPrefixMatcher()

	// Abbreviated current name shares the 5-rune prefix with the prior one.
	got := m.Match(prior, "Karimova D.")
	if got == nil || got.Name != "Karimova Dilnoza" {
		t.Fatalf("expected prefix match for abbreviated name, got %v", got)
	}

	// Symmetric direction: prior name is the short one.
	got = m.Match([]Debtor{{Name: "Karim"}}, "Karimova Dilnoza")
	if got == nil || got.Name != "Karim" {
		t.Fatalf("expected symmetric prefix match, got %v", got)
	}
}

func TestPrefixMatcherShortPriorName(t *testing.T) {
	// A prior name shorter than the prefix floor matches when it prefixes the
	// current name in full.
	m := NewPrefixMatcher()
	got := m.Match([]Debtor{{Name: "Kari"}}, "Karimova Dilnoza")
	if got == nil || got.Name != "Kari" {
		t.Fatalf("expected short prior name to match as full prefix, got %v", got)
	}
}

func TestPrefixMatcherShortCurrentName(t *testing.T) {
	prior := []Debtor{{Name: "Alisher Usmonov"}}
	m := NewPrefixMatcher()
	// Below the floor the prefix fallback is disabled entirely.
	if got := m.Match(prior, "Ali"); got != nil {
		t.Fatalf("expected no match for short name without exact hit, got %v", got)
	}
	// Exact equality still works for short names.
	if got := m.Match([]Debtor{{Name: "Ali"}}, "ALI"); got == nil {
		t.Fatal("expected exact match for short name")
	}
}

func TestPrefixMatcherNoMatch(t *testing.T) {
	prior := []Debtor{{Name: "Aliyev Vali"}, {Name: "Karimova Dilnoza"}}
	m := NewPrefixMatcher()
	if got := m.Match(prior, "Tursunov Botir"); got != nil {
		t.Fatalf("expected no match for unrelated name, got %v", got)
	}
	if got := m.Match(nil, "Aliyev Vali"); got != nil {
		t.Fatalf("expected no match against empty prior list, got %v", got)
	}
}

func TestFindAgent(t *testing.T) {
	agents := []Agent{{Name: "Bekzod"}, {Name: "Olim aka"}}
	if got := FindAgent(agents, "BEKZOD"); got == nil || got.Name != "Bekzod" {
		t.Fatalf("expected case-insensitive agent lookup, got %v", got)
	}
	// Agents never prefix-match: "Bek" must not resolve to "Bekzod".
	if got := FindAgent(agents, "Bek"); got != nil {
		t.Fatalf("expected no fuzzy agent match, got %v", got)
	}
}
