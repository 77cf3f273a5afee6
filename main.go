package main

import (
	"database/sql"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"finbook/config"
	"finbook/repository"
	"finbook/rest"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Amounts render as bare JSON numbers, as the public API always has.
	decimal.MarshalJSONWithoutQuotes = true

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	db.SetConnMaxLifetime(time.Minute * 5)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	if err := repository.RunMigrations(cfg.MigrationDSN()); err != nil {
		log.Fatal(err)
	}

	a := rest.App{}
	a.Init(cfg, db, logger)
	a.Run(cfg.ListenAddr)
}
