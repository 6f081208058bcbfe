package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"quizpot/contract"
	"quizpot/gateway"
	"quizpot/pgstore"
	"quizpot/sdk"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ctx := context.Background()

	var store sdk.Store = sdk.NewMemStore()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pg, err := pgstore.Open(ctx, dsn)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pg.Close()
		store = pg
	} else {
		log.Println("DATABASE_URL not set, records stay in memory")
	}

	// ledger-mode escrow; a chain host would supply the real custody
	escrow := sdk.NewMemEscrow()

	hub := gateway.NewHub()
	eng := contract.New(store, escrow, sdk.SystemClock{}, hub)

	mux := http.NewServeMux()
	mux.Handle("/ws", gateway.NewServer(eng, hub))

	log.Printf("quizpotd listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
