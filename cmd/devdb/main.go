package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/foodtrack/internal/database"
	"github.com/localnerve/foodtrack/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a disposable PostgreSQL for local development, migrated and ready for the server.

Usage:

devdb [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to a .env file, read for POSTGRES_IMAGE or DB_IMAGE

example
  devdb -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Info().Str("file", envFilename).Msg("Loading environment variables")
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatal().Err(err).Msg("Failed to load environment variables")
		}
	}

	ctx := context.Background()
	pg, err := testutil.StartPostgres(ctx, nil, testutil.PostgresImage())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start PostgreSQL")
	}

	db, err := database.Connect(pg.Config)
	if err != nil {
		pg.Terminate(nil)
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	if err := database.AutoMigrate(db); err != nil {
		pg.Terminate(nil)
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	database.Close(db)

	env, err := godotenv.Marshal(map[string]string{
		"DB_TYPE":     pg.Config.DBType,
		"DB_HOST":     pg.Config.DBHost,
		"DB_PORT":     pg.Config.DBPort,
		"DB_DATABASE": pg.Config.DBDatabase,
		"DB_USER":     pg.Config.DBUser,
		"DB_PASSWORD": pg.Config.DBPassword,
	})
	if err != nil {
		pg.Terminate(nil)
		log.Fatal().Err(err).Msg("Failed to render environment")
	}
	fmt.Println(env)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	log.Info().Str("signal", sig.String()).Msg("Terminating PostgreSQL")
	pg.Terminate(nil)
}
