package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"Qarzdorlik/internal/config"
)

// PaymentEntry is one line of the "who paid" report. FullyPaid marks a debtor
// that was on the previous snapshot with a positive balance and is absent
// from the current one.
type PaymentEntry struct {
	AgentName  string   `json:"agent"`
	DebtorName string   `json:"client"`
	Amount     float64  `json:"payment"`
	Currency   Currency `json:"currency"`
	FullyPaid  bool     `json:"fullyPaid"`
}

type PaymentReport struct {
	Entries []PaymentEntry `json:"payments"`
	Total   float64        `json:"totalPayment"`
}

// Engine diffs the current snapshot against the previous one into a payment
// report, one currency per invocation. The matcher is injected so the
// identity heuristic can be swapped without touching callers.
type Engine struct {
	matcher DebtorMatcher
}

func NewEngine(m DebtorMatcher) *Engine {
	return &Engine{matcher: m}
}

func paymentEpsilon(c Currency) decimal.Decimal {
	if c == UZS {
		return decimal.NewFromInt(config.PaymentEpsilonUZS)
	}
	return decimal.NewFromFloat(config.PaymentEpsilonUSD)
}

// Reconcile classifies every debtor across the two snapshots. With no
// previous snapshot the report is empty: not enough history is not an error.
func (e *Engine) Reconcile(current, previous []Agent, currency Currency) PaymentReport {
	report := PaymentReport{Entries: []PaymentEntry{}}
	if len(previous) == 0 {
		return report
	}
	eps := paymentEpsilon(currency)
	total := decimal.Zero

	// Matched debtors whose balance went down paid the difference.
	for _, agent := range current {
		prevAgent := FindAgent(previous, agent.Name)
		if prevAgent == nil {
			continue
		}
		for _, debtor := range agent.Debtors {
			prevDebtor := e.matcher.Match(prevAgent.Debtors, debtor.Name)
			if prevDebtor == nil {
				continue
			}
			delta := decimal.NewFromFloat(prevDebtor.Amount(currency)).
				Sub(decimal.NewFromFloat(debtor.Amount(currency)))
			if delta.Cmp(eps) <= 0 {
				continue
			}
			amount := delta.InexactFloat64()
			report.Entries = append(report.Entries, PaymentEntry{
				AgentName:  agent.Name,
				DebtorName: debtor.Name,
				Amount:     amount,
				Currency:   currency,
				FullyPaid:  false,
			})
			total = total.Add(decimal.NewFromFloat(amount))
		}
	}

	// Prior debtors with a positive balance and no match in the new upload
	// cleared the whole amount.
	for _, prevAgent := range previous {
		currentAgent := FindAgent(current, prevAgent.Name)
		for _, prevDebtor := range prevAgent.Debtors {
			prevAmount := prevDebtor.Amount(currency)
			if prevAmount <= 0 {
				continue
			}
			if currentAgent != nil && e.matcher.Match(currentAgent.Debtors, prevDebtor.Name) != nil {
				continue
			}
			report.Entries = append(report.Entries, PaymentEntry{
				AgentName:  prevAgent.Name,
				DebtorName: prevDebtor.Name,
				Amount:     prevAmount,
				Currency:   currency,
				FullyPaid:  true,
			})
			total = total.Add(decimal.NewFromFloat(prevAmount))
		}
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Amount > report.Entries[j].Amount
	})
	report.Total = total.InexactFloat64()
	return report
}
