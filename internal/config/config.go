package config

const (
	// Service ports. The gateway fronts all client traffic; the ledger
	// service sits behind it on loopback.
	GatewayAddr = ":8081"
	LedgerAddr  = ":7143"
	LedgerURL   = "http://localhost:7143"

	// Payment-accounting thresholds, one per currency. A matched debtor whose
	// balance dropped by no more than this is treated as spreadsheet
	// arithmetic noise, not a payment. So'm balances are whole units, hence
	// the coarser threshold.
	PaymentEpsilonUSD = 0.01
	PaymentEpsilonUZS = 1

	// An upload only becomes the new delta baseline when at least one agent
	// total moved by more than this; re-uploading identical files keeps the
	// stored baseline.
	MaterialChangeEpsilon = 0.01

	// Minimum normalized-name length before the prefix fallback of the
	// debtor matcher applies.
	MinNamePrefix = 5

	// Daily history retention: server keeps 30 days, the mini-app caches 10.
	HistoryMaxEntries       = 30
	ClientHistoryMaxEntries = 10

	MaxUploadBytes = 32 << 20

	// USD/UZS reference rate from the Central Bank of Uzbekistan.
	CBURateURL          = "https://cbu.uz/uz/arkhiv-kursov-valyut/json/USD/"
	DefaultExchangeRate = 12900

	DefaultRateSchedule   = "0 7 * * *"
	DefaultBackupSchedule = "30 2 * * *"

	// Bound on every persistence call; the in-memory state never waits on it.
	SaveTimeoutSeconds = 10
)
