package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"stayhunt/internal/adapters/observability"
	redisad "stayhunt/internal/adapters/redis"
	"stayhunt/internal/app"
	"stayhunt/internal/domain"
	"stayhunt/internal/shared"
	mysqlrepo "stayhunt/internal/storage/mysql"
)

// Loads a JSON dataset file and upserts every property. Rows are keyed by
// (homestay_name, sub_location), so re-running refreshes instead of
// duplicating.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	path := cfg.SeedFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("read seed file failed")
	}
	var props []domain.Property
	if err := json.Unmarshal(b, &props); err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("seed file is not a property array")
	}

	log.Info().
		Str("file", path).
		Int("properties", len(props)).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	adm := app.NewAdminService(repo, cache)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, p := range props {
		p := p

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(prop domain.Property) {
			defer wg.Done()
			defer sem.Release(1)

			id, err := adm.UpsertProperty(ctx, prop)
			if err != nil {
				log.Warn().Str("name", prop.HomestayName).Err(err).Msg("upsert failed")
				return
			}
			log.Info().Int64("id", id).Str("name", prop.HomestayName).Msg("upsert ok")
		}(p)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
