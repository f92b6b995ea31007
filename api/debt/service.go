package debt

import (
	"crypto/subtle"

	"Qarzdorlik/internal/jobs"
	"Qarzdorlik/internal/ledger"
	"Qarzdorlik/internal/notify"
	"Qarzdorlik/internal/serviceiface"
	"Qarzdorlik/internal/store"
)

// Deps is everything the debt handlers need, wired once in main and injected
// instead of held as package state.
type Deps struct {
	Store         *store.Store
	Engine        *ledger.Engine
	Rates         *jobs.RateCache
	Notifier      *notify.Notifier
	AdminPassword string
	AppPassword   string
}

// AdminOK checks the shared admin password in constant time.
func (d *Deps) AdminOK(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(d.AdminPassword)) == 1
}

type DebtService struct {
	config map[string]interface{}
	deps   *Deps
}

func NewDebtService(cfg map[string]interface{}, deps *Deps) serviceiface.Service {
	return &DebtService{config: cfg, deps: deps}
}

func (s *DebtService) Name() string {
	return "debt"
}

func (s *DebtService) Start() error {
	go StartDebtService(s.deps)
	return nil
}

func (s *DebtService) Stop() error {
	return nil
}
