package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"nomia/docs"
	"nomia/internal/config"
	"nomia/internal/database"
	"nomia/internal/database/migration"
	handlers "nomia/internal/http/handler"
	"nomia/internal/http/middleware"
	"nomia/internal/otel"
	"nomia/internal/repository/postgres"
	"nomia/internal/service"
	"nomia/internal/storage"
)

// @title Nomia API
// @version 1.0
// @BasePath /
func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Select the storage backend once at construction from the
	// configured transport.
	store, err := storage.New(storage.Config{
		Transport: cfg.Upload.Transport,
		S3: storage.S3Config{
			Bucket:          cfg.Upload.Bucket,
			Region:          cfg.Upload.Region,
			Endpoint:        cfg.Upload.Endpoint,
			ForcePathStyle:  cfg.Upload.ForcePathStyle,
			UseSSL:          cfg.Upload.UseSSL,
			AccessKeyID:     cfg.Upload.AccessKeyID,
			SecretAccessKey: cfg.Upload.SecretAccessKey,
		},
		GCS: storage.GCSConfig{
			Bucket:          cfg.GCS.Bucket,
			ProjectID:       cfg.GCS.ProjectID,
			ClientEmail:     cfg.GCS.ClientEmail,
			PrivateKey:      cfg.GCS.PrivateKey,
			CredentialsFile: cfg.GCS.CredentialsFile,
		},
		DB: db,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	// Download URLs go through the CDN when a distribution is configured.
	// The distribution fronts the S3 bucket, so any other transport makes
	// the signer produce URLs that resolve to nothing.
	var cdn *storage.CDNSigner
	if cfg.Upload.DistributionDomain != "" {
		if err := storage.Require(cfg.Upload.Transport, storage.TransportS3); err != nil {
			log.Fatal().Err(err).Msg("CDN distribution requires the s3 upload transport")
		}
		cdn, err = storage.NewCDNSigner(
			cfg.Upload.DistributionDomain,
			cfg.Upload.DistributionKeyID,
			cfg.Upload.DistributionKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize CDN signer")
		}
	}

	// Initialize repositories and services
	creditRepo := postgres.NewCreditPostgres(db)
	orgRepo := postgres.NewOrganisationPostgres(db)
	sessionRepo := postgres.NewSessionPostgres(db)

	creditSvc := service.NewCreditService(creditRepo)
	limitsSvc := service.NewLimitsService(orgRepo, creditSvc, cfg.BillingEnabled)
	uploadSvc := service.NewUploadService(store, cdn)
	teamSvc := service.NewTeamService(orgRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, sessionRepo, limitsSvc, uploadSvc, teamSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
