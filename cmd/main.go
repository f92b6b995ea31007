package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"Qarzdorlik/api/debt"
	"Qarzdorlik/internal/appmanager"
	"Qarzdorlik/internal/jobs"
	"Qarzdorlik/internal/ledger"
	"Qarzdorlik/internal/notify"
	"Qarzdorlik/internal/store"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// initPool connects to Postgres when DB env vars are present. The dashboard
// runs without it: the local data file then carries the state alone.
func initPool() *pgxpool.Pool {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return nil
	}
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		host, getenvDefault("DB_PORT", "5432"), os.Getenv("DB_NAME"),
	)
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Println("[ERROR] postgres pool:", err)
		return nil
	}
	return pool
}

func main() {
	// Load .env for local dev (ignored on Render)
	_ = godotenv.Load(".env")

	pool := initPool()
	appmanager.SetPgxPool(pool)

	pg := store.NewPostgresPersister(pool)
	if pool != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Println("[ERROR] postgres schema:", err)
		}
		cancel()
	}

	// Remote store first, local data file as fallback.
	st := store.NewStore(pg, store.NewFilePersister(getenvDefault("DATA_FILE", "data.json")))
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st.LoadPersisted(loadCtx)
	cancel()

	rates := jobs.NewRateCache()
	appmanager.SetStore(st)
	appmanager.SetRateCache(rates)
	appmanager.SetDebtDeps(&debt.Deps{
		Store:         st,
		Engine:        ledger.NewEngine(ledger.NewPrefixMatcher()),
		Rates:         rates,
		Notifier:      notify.NewFromEnv(),
		AdminPassword: getenvDefault("ADMIN_PASSWORD", "admin123"),
		AppPassword:   getenvDefault("APP_PASSWORD", "1"),
	})

	manager := appmanager.NewAppManager()

	// Load service configs from YAML
	servicesCfg, err := appmanager.LoadServiceSequence("services.yaml")
	if err != nil {
		log.Fatal("failed to load service sequence:", err)
	}
	manager.AutoRegisterServices(servicesCfg)

	if err := manager.StartAll(); err != nil {
		log.Fatal("failed to start:", err)
	}

	// Graceful shutdown handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	if err := manager.StopAll(); err != nil {
		log.Fatal("failed to stop:", err)
	}
	if pool != nil {
		pool.Close()
	}
}
