package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/netriktechworks/site-backend/api"
	"github.com/netriktechworks/site-backend/auth"
	"github.com/netriktechworks/site-backend/config"
	"github.com/netriktechworks/site-backend/database"
	"github.com/netriktechworks/site-backend/models"
	"github.com/netriktechworks/site-backend/services"
	"github.com/netriktechworks/site-backend/storage"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	c, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}

	log.Info().Str("dbType", config.GetString(c, "DB_TYPE", "postgres")).Msg("Connecting to database...")
	db, err := database.Open(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db, config.GetString(c, "GENERATE_OUT_PATH", "./generated")); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		if mismatches := models.GenerateColumnMismatchReport(os.Stdout, db); mismatches > 0 {
			os.Exit(1)
		}
		return
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	deps, err := buildDependencies(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing dependencies")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(c, database.New(db), deps)
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

// loadConfig reads the environment and, when SSM_PARAMETER_PATH is set,
// fills unset keys from Parameter Store.
func loadConfig() (map[string]string, error) {
	c := config.New()

	prefix := config.GetString(c, "SSM_PARAMETER_PATH", "")
	if prefix == "" {
		return c, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := config.NewSSMClient(ctx)
	if err != nil {
		return nil, err
	}
	params, err := config.LoadSSMParameters(ctx, client, prefix)
	if err != nil {
		return nil, err
	}
	log.Info().Int("count", len(params)).Str("path", prefix).Msg("Loaded parameters from SSM")

	return config.Merge(c, params), nil
}

func buildDependencies(c map[string]string) (api.Dependencies, error) {
	admins := auth.NewCredentialStore(config.GetPairs(c, "ADMIN_CREDENTIALS"))
	if admins.Len() == 0 {
		log.Warn().Msg("ADMIN_CREDENTIALS is empty; admin login is disabled")
	}

	ttl := time.Duration(config.GetInt(c, "JWT_TTL_HOURS", 24)) * time.Hour
	tokens, err := auth.NewTokenIssuer(config.GetString(c, "JWT_SECRET", ""), ttl, admins)
	if err != nil {
		return api.Dependencies{}, err
	}

	files, err := buildFileStore(c)
	if err != nil {
		return api.Dependencies{}, err
	}

	deps := api.Dependencies{Tokens: tokens, Files: files}
	if notifier := buildNotifier(c); notifier.Len() > 0 {
		deps.Notifier = notifier
	}
	return deps, nil
}

func buildFileStore(c map[string]string) (storage.FileStore, error) {
	switch backend := config.GetString(c, "UPLOAD_BACKEND", "local"); backend {
	case "local":
		dir := config.GetString(c, "UPLOAD_DIR", "uploads")
		log.Info().Str("dir", dir).Msg("Storing uploads on local disk")
		return storage.NewLocalStore(dir)
	case "s3":
		bucket := config.GetString(c, "S3_BUCKET", "")
		if bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when UPLOAD_BACKEND=s3")
		}
		log.Info().Str("bucket", bucket).Msg("Storing uploads in S3")
		return storage.NewS3StoreFromEnv(context.Background(), bucket, config.GetString(c, "S3_PREFIX", "uploads"))
	default:
		return nil, fmt.Errorf("unsupported UPLOAD_BACKEND %q", backend)
	}
}

// buildNotifier combines the channels that are fully configured.
// Partially configured channels are logged and skipped.
func buildNotifier(c map[string]string) *services.MultiNotifier {
	var notifiers []services.Notifier

	if apiKey := config.GetString(c, "RESEND_API_KEY", ""); apiKey != "" {
		email, err := services.NewEmailNotifier(apiKey, config.GetString(c, "RESEND_FROM_EMAIL", ""), config.GetStrings(c, "NOTIFY_EMAILS"))
		if err != nil {
			log.Warn().Err(err).Msg("Email notifications disabled")
		} else {
			notifiers = append(notifiers, email)
		}
	}

	if sid := config.GetString(c, "TWILIO_ACCOUNT_SID", ""); sid != "" {
		sms, err := services.NewSMSNotifier(
			sid,
			config.GetString(c, "TWILIO_AUTH_TOKEN", ""),
			config.GetString(c, "TWILIO_FROM_NUMBER", ""),
			config.GetStrings(c, "NOTIFY_PHONES"),
		)
		if err != nil {
			log.Warn().Err(err).Msg("SMS notifications disabled")
		} else {
			notifiers = append(notifiers, sms)
		}
	}

	return services.NewMultiNotifier(notifiers...)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
