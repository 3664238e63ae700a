// Command seed loads feedback categories and interview questions into the
// database. Rows that already exist are left alone, so it is safe to rerun.
//
//	go run ./cmd/seed -file seed.yaml
//	go run ./cmd/seed -driver postgres -db "$DATABASE_URL"
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-jobtracker-backend/internal/config"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"
	"github.com/tbourn/go-jobtracker-backend/internal/seed"
	"github.com/tbourn/go-jobtracker-backend/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	driver := flag.String("driver", sysutil.FirstNonEmpty(os.Getenv("DB_DRIVER"), config.DriverSQLite), "database driver: sqlite or postgres")
	target := flag.String("db", "", "SQLite path or PostgreSQL DSN (default DB_PATH or DATABASE_URL)")
	file := flag.String("file", "", "seed YAML (default SEED_PATH, else the embedded seed)")
	flag.Parse()

	sysutil.SetupLogger(sysutil.FirstNonEmpty(os.Getenv("LOG_LEVEL"), "info"), true, nil)

	dsn := *target
	if *driver == config.DriverPostgres {
		dsn = sysutil.FirstNonEmpty(dsn, os.Getenv("DATABASE_URL"))
	} else {
		dsn = sysutil.FirstNonEmpty(dsn, os.Getenv("DB_PATH"), "jobtracker.db")
	}

	f, err := seed.Load(sysutil.FirstNonEmpty(*file, os.Getenv("SEED_PATH")))
	if err != nil {
		log.Fatal().Err(err).Msg("load seed")
	}

	db, err := repo.Open(*driver, dsn, 1)
	if err != nil {
		log.Fatal().Err(err).Str("driver", *driver).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	res, err := seed.Apply(ctx, db, f)
	if err != nil {
		log.Fatal().Err(err).Msg("apply seed")
	}
	log.Info().
		Int64("categories", res.Categories).
		Int64("questions", res.Questions).
		Msg("seed applied")
}
