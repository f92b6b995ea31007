package ledger

import (
	"strings"

	"Qarzdorlik/internal/config"
)

// DebtorMatcher resolves which record in a prior snapshot refers to the same
// person as a freshly uploaded name. The spreadsheets carry no stable ids, so
// any implementation is a heuristic over free-text names, not guaranteed
// identity resolution.
type DebtorMatcher interface {
	Match(prior []Debtor, currentName string) *Debtor
}

// PrefixMatcher matches on exact normalized equality first, then on a
// symmetric MinPrefix-character prefix. The prefix fallback keeps
// "Karimova Dilnoza" and "Karimova D." on the same ledger line between
// uploads; the length floor avoids false hits on very short names.
type PrefixMatcher struct {
	MinPrefix int
}

func NewPrefixMatcher() PrefixMatcher {
	return PrefixMatcher{MinPrefix: config.MinNamePrefix}
}

func (m PrefixMatcher) Match(prior []Debtor, currentName string) *Debtor {
	if len(prior) == 0 {
		return nil
	}
	current := NormalizeName(currentName)
	for i := range prior {
		if NormalizeName(prior[i].Name) == current {
			return &prior[i]
		}
	}

	minPrefix := m.MinPrefix
	if minPrefix <= 0 {
		minPrefix = config.MinNamePrefix
	}
	currentRunes := []rune(current)
	if len(currentRunes) < minPrefix {
		return nil
	}
	currentPrefix := string(currentRunes[:minPrefix])
	for i := range prior {
		prev := NormalizeName(prior[i].Name)
		if prev == "" {
			continue
		}
		prevPrefix := prev
		if prevRunes := []rune(prev); len(prevRunes) > minPrefix {
			prevPrefix = string(prevRunes[:minPrefix])
		}
		if strings.HasPrefix(prev, currentPrefix) || strings.HasPrefix(current, prevPrefix) {
			return &prior[i]
		}
	}
	return nil
}

// FindAgent locates an agent by exact normalized name. Agent names come from
// file names, which are stable across cycles, so there is no fuzzy fallback.
func FindAgent(agents []Agent, name string) *Agent {
	normalized := NormalizeName(name)
	for i := range agents {
		if NormalizeName(agents[i].Name) == normalized {
			return &agents[i]
		}
	}
	return nil
}
