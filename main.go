package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/artist-portfolio-backend/api"
	"github.com/rpupo63/artist-portfolio-backend/config"
	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	settings, err := config.Load(config.New())
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	config.SetupLogging(settings)

	log.Info().Msg("Initializing app...")

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	currentDB := database.New(settings.DataDir)
	defer currentDB.Close()

	if err := currentDB.Init(startupCtx); err != nil {
		log.Fatal().Err(err).Str("dataDir", settings.DataDir).Msg("Error opening catalog")
	}
	if migrated, err := currentDB.Migrate(startupCtx); err != nil {
		log.Fatal().Err(err).Msg("Error migrating catalog")
	} else if migrated > 0 {
		log.Info().Int("projects", migrated).Msg("Migrated gallery entries to media")
	}

	mediaStore, err := newMediaStore(startupCtx, settings)
	if err != nil {
		log.Fatal().Err(err).Str("backend", settings.MediaBackend).Msg("Error initializing media store")
	}

	adminSecret, err := config.ResolveAdminSecret(startupCtx, settings, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Error resolving admin secret")
	}

	// Both the server and the signal listener may report; neither must block.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(currentDB, mediaStore, settings, adminSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func newMediaStore(ctx context.Context, settings config.Settings) (services.MediaStore, error) {
	switch settings.MediaBackend {
	case config.MediaBackendS3:
		return services.NewS3MediaStoreFromEnv(ctx, settings.S3Bucket, settings.S3Prefix, settings.S3PublicBaseURL)
	default:
		return services.NewLocalMediaStore(settings.PublicDir), nil
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
