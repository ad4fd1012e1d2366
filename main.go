package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
)

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	if os.Getenv("LOG_FORMAT") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Msg("Initializing app...")
	if envErr != nil {
		log.Warn().Err(envErr).Msg("No .env file loaded")
	}

	ctx := context.Background()

	env, err := config.OverlaySSM(ctx, config.New())
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading SSM parameters")
	}
	cfg := config.Load(env)

	if strings.ToLower(config.GetString(env, "LOG_LEVEL", "info")) == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	log.Info().Str("dbType", cfg.Database.Type).Msg("Connecting to database...")
	db, err := database.Open(cfg.Database, gormLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(env, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(env, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return
	}

	currentDB := database.New(db)
	if cfg.Database.AutoMigrate {
		if err := currentDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Error migrating database")
		}
	}

	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, sign-in is disabled and every mutating route answers 401")
	}
	authService := auth.NewService(currentDB.UserRepo(), auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), auth.Options{
		AllowRegistration: cfg.Auth.AllowRegistration,
	})
	created, err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminName, cfg.Auth.AdminPasswordHash, cfg.Auth.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("Error seeding admin user")
	}
	if cfg.Auth.AdminEmail != "" {
		log.Info().Str("email", cfg.Auth.AdminEmail).Bool("created", created).Msg("Admin user ready")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	mailer := services.NewMailer(cfg.Contact.ResendAPIKey, cfg.Contact.ResendFromEmail, httpClient)
	sms := services.NewSMSNotifier(cfg.Contact.TwilioSID, cfg.Contact.TwilioToken, cfg.Contact.TwilioFrom, cfg.Contact.TwilioTo)
	contact := services.NewContactService(mailer, cfg.Contact.Recipients, sms)

	images, err := newImageStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring image storage")
	}

	// Start and listenToInterrupt may both send; neither may block after shutdown
	errChannel := make(chan error, 2)

	server, err := api.NewServer(cfg.Server, api.Dependencies{
		Database: currentDB,
		Auth:     authService,
		LeetCode: services.NewLeetCodeClient(cfg.LeetCode, httpClient),
		Contact:  contact,
		Images:   images,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Err(fatalErr).Msg("Closing server")

	server.ShutdownGracefully(30 * time.Second)
}

// newImageStore returns an unconfigured store when no bucket is set, so the
// upload route answers 503 instead of the process failing to start.
func newImageStore(ctx context.Context, cfg config.StorageConfig) (*services.ImageStore, error) {
	if cfg.S3Bucket == "" {
		return services.NewImageStore(nil, cfg), nil
	}
	awsCfg, err := config.LoadAWS(ctx, cfg.S3Region)
	if err != nil {
		return nil, err
	}
	return services.NewImageStore(s3.NewFromConfig(awsCfg), cfg), nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
