package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"nomia/internal/http/middleware"
	"nomia/internal/repository"
	"nomia/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; they translate between HTTP and
// the injected services.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	sessions repository.SessionRepository,
	limits service.LimitsService,
	uploads service.UploadService,
	teams service.TeamService,
) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", middleware.Authenticate(sessions))

	api.Get("/limits", GetLimits(limits))
	api.Get("/teams", ListTeams(teams))

	api.Post("/files/presign", PresignUpload(uploads, limits))
	api.Post("/files/represign", RenewPresign(uploads))
	api.Get("/files/download-url", DownloadURL(uploads))
	api.Get("/files/content", DownloadFile(uploads))
	api.Post("/files", UploadFile(uploads))
	api.Delete("/files", DeleteFile(uploads))
}
