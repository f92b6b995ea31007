package ledger

import (
	"regexp"
	"strings"
)

// Agents hand-type debtor names, mixing Latin and Uzbek Cyrillic spellings,
// punctuation and spacing between uploads. Every "same name?" comparison goes
// through this normal form; display always uses the raw name.
var nameStrip = regexp.MustCompile(`[^a-z0-9а-яёўқғҳ]`)

func NormalizeName(raw string) string {
	return nameStrip.ReplaceAllString(strings.ToLower(raw), "")
}
