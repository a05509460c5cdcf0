// Command seed loads portfolio content from a YAML file into the store.
//
//	go run ./cmd/seed -file seed.yaml
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/gaffer-portfolio-backend/config"
	"github.com/rpupo63/gaffer-portfolio-backend/database"
)

func main() {
	file := flag.String("file", "seed.yaml", "path to the YAML seed file")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}

	ctx := context.Background()
	c, err := config.WithSSM(ctx, config.New())
	if err != nil {
		log.Warn().Err(err).Msg("could not read SSM parameters")
	}
	settings := config.Load(c)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("cannot open seed file")
	}
	defer f.Close()

	seed, err := database.LoadSeed(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("invalid seed file")
	}

	db, err := database.Open(ctx, settings.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}
	database.EnsureIndexes(ctx, db)

	store := database.New(db)
	defer store.Close()

	result, err := database.ApplySeed(ctx, store, seed, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().
		Bool("portfolio", result.Portfolio).
		Int("projects", result.Projects).
		Int("clients", result.Clients).
		Msg("seed applied")
}
