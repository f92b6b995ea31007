package jobs

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"Qarzdorlik/internal/config"
)

// RateCache holds the last USD/UZS reference rate fetched from the Central
// Bank of Uzbekistan. The dashboard only displays it, so a stale or default
// value is acceptable whenever the upstream is unreachable.
type RateCache struct {
	mu        sync.RWMutex
	rate      float64
	fetchedAt time.Time
	client    *http.Client
	url       string
}

func NewRateCache() *RateCache {
	return &RateCache{
		rate:   config.DefaultExchangeRate,
		client: &http.Client{Timeout: 15 * time.Second},
		url:    config.CBURateURL,
	}
}

// cbuRate matches the CBU JSON feed, e.g.
// [{"Ccy":"USD","Rate":"12650.23","Date":"27.08.2026", ...}]
type cbuRate struct {
	Ccy  string `json:"Ccy"`
	Rate string `json:"Rate"`
	Date string `json:"Date"`
}

// Refresh fetches the current rate. Errors leave the cached value in place.
func (rc *RateCache) Refresh() {
	resp, err := rc.client.Get(rc.url)
	if err != nil {
		log.Printf("[ERROR] exchange rate fetch: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("[ERROR] exchange rate fetch: status %d", resp.StatusCode)
		return
	}
	var rates []cbuRate
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		log.Printf("[ERROR] exchange rate decode: %v", err)
		return
	}
	for _, r := range rates {
		if r.Ccy != "USD" {
			continue
		}
		parsed, err := strconv.ParseFloat(r.Rate, 64)
		if err != nil || parsed <= 0 {
			continue
		}
		rc.mu.Lock()
		rc.rate = parsed
		rc.fetchedAt = time.Now()
		rc.mu.Unlock()
		log.Printf("[INFO] exchange rate refreshed: 1 USD = %.2f UZS", parsed)
		return
	}
	log.Println("[ERROR] exchange rate response had no usable USD row")
}

func (rc *RateCache) Rate() float64 {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.rate
}

func (rc *RateCache) FetchedAt() time.Time {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.fetchedAt
}
