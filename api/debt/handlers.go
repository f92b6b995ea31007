package debt

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"Qarzdorlik/api"
	"Qarzdorlik/internal/jobs"
	"Qarzdorlik/internal/ledger"
	"Qarzdorlik/internal/store"
)

// GetData serves the full snapshot pair the mini-app renders from.
func GetData(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.RespondWithJSON(w, st.Snapshot())
	}
}

// GetPayments runs the reconciliation for one currency. With no previous
// snapshot the report is empty and hasPrevious tells the client to show its
// "not enough history yet" message instead of an error.
func GetPayments(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currency, ok := ledger.ParseCurrency(mux.Vars(r)["currency"])
		if !ok {
			api.RespondWithError(w, http.StatusBadRequest, "Unknown currency: "+mux.Vars(r)["currency"])
			return
		}
		snap := deps.Store.Snapshot()
		report := deps.Engine.Reconcile(snap.Agents, snap.PreviousData, currency)
		api.RespondWithJSON(w, map[string]interface{}{
			"success":      true,
			"currency":     currency,
			"payments":     report.Entries,
			"totalPayment": report.Total,
			"count":        len(report.Entries),
			"hasPrevious":  len(snap.PreviousData) > 0,
		})
	}
}

func ListHistory(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.RespondWithJSON(w, map[string]interface{}{"dates": st.ListDates()})
	}
}

func GetHistoryByDate(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := mux.Vars(r)["date"]
		entry, ok := st.GetByDate(date)
		if !ok {
			api.RespondWithError(w, http.StatusNotFound, "Bu sana uchun ma'lumot topilmadi")
			return
		}
		api.RespondWithJSON(w, entry)
	}
}

func GetComments(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.RespondWithJSON(w, map[string]interface{}{"comments": st.Comments()})
	}
}

// SaveComment upserts the note for one agent/debtor pair; an empty comment
// deletes it.
func SaveComment(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Agent   string `json:"agent"`
			Client  string `json:"client"`
			Comment string `json:"comment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.Agent == "" || req.Client == "" {
			api.RespondWithError(w, http.StatusBadRequest, "agent and client are required")
			return
		}
		st.SetComment(req.Agent, req.Client, req.Comment)
		api.RespondWithJSON(w, map[string]interface{}{"success": true})
	}
}

func GetExchangeRate(rates *jobs.RateCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.RespondWithJSON(w, map[string]interface{}{"rate": rates.Rate()})
	}
}

// GetAppPassword hands the read-only viewer password to the mini-app login
// screen.
func GetAppPassword(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.RespondWithJSON(w, map[string]interface{}{"password": deps.AppPassword})
	}
}

func CheckAdminPassword(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if !deps.AdminOK(req.Password) {
			api.RespondWithError(w, http.StatusUnauthorized, "Noto'g'ri parol")
			return
		}
		api.RespondWithJSON(w, map[string]interface{}{"success": true})
	}
}

func Health(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := st.Snapshot()
		api.RespondWithJSON(w, map[string]interface{}{
			"status":      "running",
			"agents":      len(snap.Agents),
			"lastUpdated": snap.LastUpdated,
		})
	}
}
