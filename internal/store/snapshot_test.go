package store

import (
	"testing"

	"Qarzdorlik/internal/ledger"
)

func uploadAgents(total float64) []ledger.Agent {
	return []ledger.Agent{{
		Name:        "Bekzod",
		Debtors:     []ledger.Debtor{{Name: "Aliyev Vali", USD: total}},
		TotalUSD:    total,
		DebtorCount: 1,
	}}
}

func TestReplaceFirstUpload(t *testing.T) {
	s := NewStore()
	data := s.Replace(uploadAgents(100))
	if len(data.Agents) != 1 {
		t.Fatalf("agents = %d, want 1", len(data.Agents))
	}
	if len(data.PreviousData) != 0 {
		t.Errorf("first upload must not create a previous baseline: %+v", data.PreviousData)
	}
	if data.LastUpdated == "" {
		t.Error("lastUpdated not set")
	}
}

func TestReplaceMaterialChangeSetsBaseline(t *testing.T) {
	s := NewStore()
	s.Replace(uploadAgents(100))
	data := s.Replace(uploadAgents(60))

	if len(data.PreviousData) != 1 || data.PreviousData[0].TotalUSD != 100 {
		t.Fatalf("previous baseline not the outgoing snapshot: %+v", data.PreviousData)
	}
	if data.Agents[0].TotalUSD != 60 {
		t.Errorf("current snapshot not replaced: %+v", data.Agents)
	}
}

func TestReplaceIdenticalUploadKeepsBaseline(t *testing.T) {
	s := NewStore()
	s.Replace(uploadAgents(100))
	s.Replace(uploadAgents(60))
	// Re-uploading the same files must not collapse previous onto current,
	// otherwise the payment report would turn empty.
	data := s.Replace(uploadAgents(60))

	if len(data.PreviousData) != 1 || data.PreviousData[0].TotalUSD != 100 {
		t.Fatalf("identical re-upload moved the baseline: %+v", data.PreviousData)
	}
}

func TestReplaceAgentSetChangeIsMaterial(t *testing.T) {
	s := NewStore()
	s.Replace(uploadAgents(100))
	next := append(uploadAgents(100), ledger.Agent{Name: "Sardor", TotalUSD: 5, DebtorCount: 1})
	data := s.Replace(next)

	if len(data.PreviousData) != 1 {
		t.Fatalf("adding an agent must set the baseline: %+v", data.PreviousData)
	}
	if len(data.Agents) != 2 {
		t.Errorf("agents = %d, want 2", len(data.Agents))
	}
}

func TestReplaceRecordsHistory(t *testing.T) {
	s := NewStore()
	s.Replace(uploadAgents(100))
	dates := s.ListDates()
	if len(dates) != 1 {
		t.Fatalf("upload must record a history entry, got %d", len(dates))
	}
	entry, ok := s.GetByDate(dates[0].Date)
	if !ok || len(entry.Summary) != 1 || entry.Summary[0].TotalUSD != 100 {
		t.Errorf("history summary wrong: %+v", entry)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewStore()
	s.Replace(uploadAgents(100))
	snap := s.Snapshot()
	snap.Agents[0].Name = "mutated"
	if s.Snapshot().Agents[0].Name != "Bekzod" {
		t.Error("Snapshot leaked internal state")
	}
}

func TestMateriallyDifferent(t *testing.T) {
	old := uploadAgents(100)
	if materiallyDifferent(old, uploadAgents(100)) {
		t.Error("identical snapshots flagged as different")
	}
	if materiallyDifferent(old, uploadAgents(100.005)) {
		t.Error("sub-epsilon total drift flagged as different")
	}
	if !materiallyDifferent(old, uploadAgents(60)) {
		t.Error("total change not flagged")
	}
	renamed := uploadAgents(100)
	renamed[0].Name = "Sardor"
	if !materiallyDifferent(old, renamed) {
		t.Error("agent rename not flagged")
	}
}
