package main

import (
	"context"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"spendwise-server/src/api"
	"spendwise-server/src/config"
	"spendwise-server/src/db"
	sqldb "spendwise-server/src/db/sql"
	"spendwise-server/src/ledger"
	"spendwise-server/src/middleware"
	"spendwise-server/src/util"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("DB migrations failed: %v", err)
	}

	db.InitCache()

	ldg := ledger.New(sqldb.NewLedgerStore(pool))
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPM)

	// Router
	router := api.NewRouter(pool, ldg, limiter)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		log.Println("API server running on port", cfg.Port)
		return http.ListenAndServe(":"+cfg.Port, router)
	})

	if cfg.KeepAliveURL != "" {
		g.Go(func() error {
			util.KeepAlive(ctx, cfg.KeepAliveURL, cfg.KeepAliveInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
