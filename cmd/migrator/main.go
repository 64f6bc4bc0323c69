package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"

	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/repository"
)

func main() {
	cfg := config.MustLoad()

	dbpool, dbErr := repository.NewDatabase(context.Background(),
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to select migration dialect: %v", err)
	}

	dtb := stdlib.OpenDBFromPool(dbpool)
	if migrationErr := goose.Up(dtb, "migrations"); migrationErr != nil {
		log.Fatalf("Failed to apply migrations: %v", migrationErr)
	}

	log.Println("Migrations applied successfully")
}
