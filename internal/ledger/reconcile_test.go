package ledger

import (
	"math"
	"testing"
)

func testEngine() *Engine {
	return NewEngine(NewPrefixMatcher())
}

func agent(name string, debtors ...Debtor) Agent {
	a := Agent{Name: name, Debtors: debtors, DebtorCount: len(debtors)}
	for _, d := range debtors {
		a.TotalUSD += d.USD
		a.TotalUZS += d.UZS
	}
	return a
}

func TestReconcileNoPrevious(t *testing.T) {
	current := []Agent{agent("Bekzod", Debtor{Name: "Aliyev Vali", USD: 100})}
	report := testEngine().Reconcile(current, nil, USD)
	if len(report.Entries) != 0 || report.Total != 0 {
		t.Fatalf("expected empty report without a previous snapshot, got %+v", report)
	}
}

func TestReconcilePartialPayment(t *testing.T) {
	previous := []Agent{agent("Bekzod", Debtor{Name: "Aliyev Vali", USD: 100})}
	current := []Agent{agent("Bekzod", Debtor{Name: "Aliyev Vali", USD: 60})}

	report := testEngine().Reconcile(current, previous, USD)
	if len(report.Entries) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(report.Entries))
	}
	e := report.Entries[0]
	if e.AgentName != "Bekzod" || e.DebtorName != "Aliyev Vali" {
		t.Errorf("wrong attribution: %+v", e)
	}
	if e.Amount != 40 || e.FullyPaid || e.Currency != USD {
		t.Errorf("wrong entry: %+v", e)
	}
	if report.Total != 40 {
		t.Errorf("total = %v, want 40", report.Total)
	}
}

func TestReconcileFullPayoff(t *testing.T) {
	previous := []Agent{agent("Bekzod",
		Debtor{Name: "Aliyev Vali", USD: 100},
		Debtor{Name: "Karimova Dilnoza", USD: 50},
	)}
	// Karimova is gone from the new upload: she cleared the full 50.
	current := []Agent{agent("Bekzod", Debtor{Name: "Aliyev Vali", USD: 100})}

	report := testEngine().Reconcile(current, previous, USD)
	if len(report.Entries) != 1 {
		t.Fatalf("expected 1 payoff, got %d: %+v", len(report.Entries), report.Entries)
	}
	e := report.Entries[0]
	if e.DebtorName != "Karimova Dilnoza" || e.Amount != 50 || !e.FullyPaid {
		t.Errorf("wrong payoff entry: %+v", e)
	}
}

func TestReconcileVanishedAgent(t *testing.T) {
	previous := []Agent{
		agent("Bekzod", Debtor{Name: "Aliyev Vali", USD: 100}),
		agent("Sardor", Debtor{Name: "Tursunov Botir", USD: 30}, Debtor{Name: "Yopilgan", USD: 0}),
	}
	// Sardor did not upload a file this cycle: his positive debtors count as
	// paid off, the zero-balance one does not.
	current := []Agent{agent("Bekzod", Debtor{Name: "Aliyev Vali", USD: 100})}

	report := testEngine().Reconcile(current, previous, USD)
	if len(report.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(report.Entries), report.Entries)
	}
	e := report.Entries[0]
	if e.AgentName != "Sardor" || e.DebtorName != "Tursunov Botir" || !e.FullyPaid || e.Amount != 30 {
		t.Errorf("wrong entry: %+v", e)
	}
}

func TestReconcileFuzzyDebtorMatch(t *testing.T) {
	previous := []Agent{agent("Bekzod", Debtor{Name: "Karimova Dilnoza", USD: 80})}
	current := []Agent{agent("Bekzod", Debtor{Name: "Karimova D.", USD: 30})}

	report := testEngine().Reconcile(current, previous, USD)
	if len(report.Entries) != 1 {
		t.Fatalf("abbreviated name must match its prior record, got %+v", report.Entries)
	}
	e := report.Entries[0]
	if e.Amount != 50 || e.FullyPaid {
		t.Errorf("wrong entry: %+v", e)
	}
}

func TestReconcileEpsilon(t *testing.T) {
	previous := []Agent{agent("Bekzod",
		Debtor{Name: "Aliyev Vali", USD: 100.005},
		Debtor{Name: "Karimova Dilnoza", UZS: 500000.5},
	)}
	current := []Agent{agent("Bekzod",
		Debtor{Name: "Aliyev Vali", USD: 100},
		Debtor{Name: "Karimova Dilnoza", UZS: 500000},
	)}

	eng := testEngine()
	if report := eng.Reconcile(current, previous, USD); len(report.Entries) != 0 {
		t.Errorf("USD delta below a cent must be ignored, got %+v", report.Entries)
	}
	if report := eng.Reconcile(current, previous, UZS); len(report.Entries) != 0 {
		t.Errorf("sub-som UZS delta must be ignored, got %+v", report.Entries)
	}
}

func TestReconcileDebtIncreaseIgnored(t *testing.T) {
	previous := []Agent{agent("Bekzod", Debtor{Name: "Aliyev Vali", USD: 100})}
	current := []Agent{agent("Bekzod", Debtor{Name: "Aliyev Vali", USD: 150})}
	if report := testEngine().Reconcile(current, previous, USD); len(report.Entries) != 0 {
		t.Errorf("a growing debt is not a payment, got %+v", report.Entries)
	}
}

func TestReconcileSortedAndAdditive(t *testing.T) {
	previous := []Agent{agent("Bekzod",
		Debtor{Name: "Aliyev Vali", USD: 100},
		Debtor{Name: "Karimova Dilnoza", USD: 500},
		Debtor{Name: "Tursunov Botir", USD: 25},
	)}
	current := []Agent{agent("Bekzod",
		Debtor{Name: "Aliyev Vali", USD: 90},
		Debtor{Name: "Karimova Dilnoza", USD: 300},
	)}

	report := testEngine().Reconcile(current, previous, USD)
	if len(report.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(report.Entries))
	}
	for i := 1; i < len(report.Entries); i++ {
		if report.Entries[i-1].Amount < report.Entries[i].Amount {
			t.Errorf("entries not sorted descending: %+v", report.Entries)
		}
	}
	var sum float64
	for _, e := range report.Entries {
		sum += e.Amount
	}
	if math.Abs(report.Total-sum) > 1e-9 {
		t.Errorf("total %v does not equal entry sum %v", report.Total, sum)
	}
	if report.Total != 235 {
		t.Errorf("total = %v, want 235", report.Total)
	}
}

func TestReconcileCurrenciesIndependent(t *testing.T) {
	previous := []Agent{agent("Bekzod", Debtor{Name: "Aliyev Vali", USD: 100, UZS: 1000000})}
	current := []Agent{agent("Bekzod", Debtor{Name: "Aliyev Vali", USD: 100, UZS: 400000})}

	eng := testEngine()
	if report := eng.Reconcile(current, previous, USD); len(report.Entries) != 0 {
		t.Errorf("unchanged USD balance produced entries: %+v", report.Entries)
	}
	report := eng.Reconcile(current, previous, UZS)
	if len(report.Entries) != 1 || report.Entries[0].Amount != 600000 {
		t.Errorf("UZS payment wrong: %+v", report.Entries)
	}
}
