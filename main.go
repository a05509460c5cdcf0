package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/gaffer-portfolio-backend/api"
	"github.com/rpupo63/gaffer-portfolio-backend/config"
	"github.com/rpupo63/gaffer-portfolio-backend/database"
	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"github.com/rpupo63/gaffer-portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx := context.Background()

	c, err := config.WithSSM(ctx, config.New())
	if err != nil {
		fmt.Printf("Warning: could not read SSM parameters: %v\n", err)
	}
	settings := config.Load(c)
	configureLogging(settings)

	if err := settings.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if settings.UsesDefaultSecret() {
		log.Warn().Msg("JWT_SECRET_KEY is not set; tokens are signed with the built-in development secret")
	}

	db, err := database.Open(ctx, settings.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", settings.Database.Driver).Msg("error connecting to database")
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		if _, err := database.ColumnReport(db, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("column report failed")
		}
		return
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}
	database.EnsureIndexes(ctx, db)

	// If generating query helpers, run generation and exit
	if config.GetBool(c, "GENERATE_QUERY", false) {
		fmt.Println("Generating query helpers...")
		if err := models.GenerateQueries(db, config.GetString(c, "GENERATE_QUERY_PATH", "./query")); err != nil {
			log.Fatal().Err(err).Msg("query generation failed")
		}
		return
	}

	currentDB := database.New(db)

	credentials := services.NewCredentials(settings.JWT.Secret, settings.JWT.TTL)
	if _, err := services.BootstrapAdmin(ctx, currentDB.AdminRepo(), credentials, settings.Admin, settings.IsProduction()); err != nil {
		log.Error().Err(err).Msg("admin bootstrap failed")
	}

	notifier := services.NewNotifier(settings.EmailJS, nil)
	notifier.ValidateConfig()

	host, err := services.NewMediaHost(ctx, settings)
	if err != nil {
		log.Error().Err(err).Msg("remote media host unavailable, storing uploads locally")
		host = nil
	}
	uploader := services.NewUploader(host, services.NewLocalStore(settings.UploadDir))

	errChannel := make(chan error, 2)

	server, err := api.NewServer(settings, currentDB, api.Services{
		Credentials: credentials,
		Uploader:    uploader,
		Notifier:    notifier,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	if errors.Is(fatalErr, http.ErrServerClosed) {
		fatalErr = nil
	}
	log.Info().Err(fatalErr).Dur("uptime", server.Uptime()).Msg("Closing server")

	server.ShutdownGracefully(30 * time.Second)
	notifier.Wait()

	if err := currentDB.Close(); err != nil {
		log.Error().Err(err).Msg("error closing database")
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

// configureLogging sets the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func configureLogging(settings config.Settings) {
	level, err := zerolog.ParseLevel(strings.ToLower(settings.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if settings.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}
