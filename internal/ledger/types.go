package ledger

import "strings"

// Currency selects which balance of a debtor an operation looks at. USD and
// UZS are tracked side by side and never netted against each other.
type Currency string

const (
	USD Currency = "usd"
	UZS Currency = "uzs"
)

func ParseCurrency(s string) (Currency, bool) {
	switch strings.ToLower(s) {
	case "usd":
		return USD, true
	case "uzs":
		return UZS, true
	}
	return "", false
}

// Debtor is one person's outstanding balance to one agent in one snapshot.
// Records are superseded by the next upload, never mutated in place.
type Debtor struct {
	Name string  `json:"name"`
	USD  float64 `json:"usd"`
	UZS  float64 `json:"uzs"`
}

func (d Debtor) Amount(c Currency) float64 {
	if c == UZS {
		return d.UZS
	}
	return d.USD
}

// Agent is one uploaded ledger file rolled up. Only debtors with a positive
// balance in at least one currency are kept, and the totals always equal the
// sum over Debtors. The name doubles as the join key across snapshots
// (compared through NormalizeName).
type Agent struct {
	Name        string   `json:"name"`
	Debtors     []Debtor `json:"debtors"`
	TotalUSD    float64  `json:"totalUSD"`
	TotalUZS    float64  `json:"totalUZS"`
	DebtorCount int      `json:"debtorCount"`
}
