package main

import (
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	"github.com/sheikh-saqib/banking-ledger-system/internal/config"
	"github.com/sheikh-saqib/banking-ledger-system/internal/events/kafka"
	"github.com/sheikh-saqib/banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger-system/internal/ledger"
	"github.com/sheikh-saqib/banking-ledger-system/internal/server"
	"github.com/sheikh-saqib/banking-ledger-system/internal/storage/memory"
	"github.com/sheikh-saqib/banking-ledger-system/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	var store interfaces.LedgerStore
	var directory interfaces.AccountDirectory

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatalf("ping database: %v", err)
		}
		pg := postgres.NewPostgresLedgerStore(db)
		store, directory = pg, pg
		log.Println("using postgres ledger store")
	} else {
		mem := memory.NewMemoryLedgerStore()
		store, directory = mem, mem
		log.Println("using in-memory ledger store")
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
		log.Printf("publishing events to %s", cfg.KafkaTopic)
	}

	facade := ledger.NewFacade(store, directory, publisher)
	srv := server.New(facade)

	log.Printf("starting server on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, srv.Router()))
}
