package store

import (
	"time"

	"Qarzdorlik/internal/config"
	"Qarzdorlik/internal/ledger"
)

// AgentSummary is the per-agent rollup kept in history. Debtor-level detail
// is deliberately dropped, so past dates can only be browsed, not reconciled.
type AgentSummary struct {
	Name        string  `json:"name"`
	TotalUSD    float64 `json:"totalUSD"`
	TotalUZS    float64 `json:"totalUZS"`
	DebtorCount int     `json:"debtorCount"`
}

// HistoryEntry is one UTC calendar day of aggregate summaries.
type HistoryEntry struct {
	Date        string         `json:"date"`
	LastUpdated string         `json:"lastUpdated"`
	Summary     []AgentSummary `json:"summary"`
}

type HistoryDate struct {
	Date        string `json:"date"`
	LastUpdated string `json:"lastUpdated"`
}

func Summarize(agents []ledger.Agent) []AgentSummary {
	summary := make([]AgentSummary, 0, len(agents))
	for _, a := range agents {
		summary = append(summary, AgentSummary{
			Name:        a.Name,
			TotalUSD:    a.TotalUSD,
			TotalUZS:    a.TotalUZS,
			DebtorCount: a.DebtorCount,
		})
	}
	return summary
}

// AppendDaily records a summary under today's UTC date. Re-uploads within the
// same day replace that day's entry, so a calendar day always converges to
// the latest upload.
func (s *Store) AppendDaily(summary []AgentSummary) {
	s.mu.Lock()
	s.appendDaily(summary, time.Now().UTC())
	s.mu.Unlock()
	s.Persist()
}

// appendDaily must be called with the mutex held. Entries are most-recent
// first and capped at HistoryMaxEntries, oldest evicted.
func (s *Store) appendDaily(summary []AgentSummary, now time.Time) {
	entry := HistoryEntry{
		Date:        now.Format("2006-01-02"),
		LastUpdated: now.Format(time.RFC3339),
		Summary:     summary,
	}
	for i := range s.history {
		if s.history[i].Date == entry.Date {
			s.history[i] = entry
			return
		}
	}
	s.history = append([]HistoryEntry{entry}, s.history...)
	if len(s.history) > config.HistoryMaxEntries {
		s.history = s.history[:config.HistoryMaxEntries]
	}
}

func (s *Store) ListDates() []HistoryDate {
	s.mu.Lock()
	defer s.mu.Unlock()
	dates := make([]HistoryDate, 0, len(s.history))
	for _, e := range s.history {
		dates = append(dates, HistoryDate{Date: e.Date, LastUpdated: e.LastUpdated})
	}
	return dates
}

// GetByDate returns the entry for a YYYY-MM-DD date. A missing date is
// reported distinctly from an empty report: the caller answers "not found".
func (s *Store) GetByDate(date string) (HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.history {
		if e.Date == date {
			return e, true
		}
	}
	return HistoryEntry{}, false
}
