package debt

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"Qarzdorlik/internal/config"
)

// NewRouter wires every dashboard endpoint. The paths and response field
// names are the wire contract the Telegram mini-app consumes.
func NewRouter(deps *Deps) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/data", GetData(deps.Store)).Methods(http.MethodGet)
	r.HandleFunc("/api/upload", UploadFiles(deps)).Methods(http.MethodPost)
	r.HandleFunc("/api/payments/{currency}", GetPayments(deps)).Methods(http.MethodGet)
	r.HandleFunc("/api/history", ListHistory(deps.Store)).Methods(http.MethodGet)
	r.HandleFunc("/api/history/{date}", GetHistoryByDate(deps.Store)).Methods(http.MethodGet)
	r.HandleFunc("/api/comments", GetComments(deps.Store)).Methods(http.MethodGet)
	r.HandleFunc("/api/comments", SaveComment(deps.Store)).Methods(http.MethodPost)
	r.HandleFunc("/api/exchange-rate", GetExchangeRate(deps.Rates)).Methods(http.MethodGet)
	r.HandleFunc("/api/app-password", GetAppPassword(deps)).Methods(http.MethodGet)
	r.HandleFunc("/api/auth", CheckAdminPassword(deps)).Methods(http.MethodPost)
	r.HandleFunc("/", Health(deps.Store)).Methods(http.MethodGet)

	return r
}

func StartDebtService(deps *Deps) {
	log.Println("Debt Service started on", config.LedgerAddr)
	err := http.ListenAndServe(config.LedgerAddr, NewRouter(deps))
	if err != nil {
		log.Fatalf("Debt Service failed: %v", err)
	}
}
