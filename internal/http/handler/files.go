package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"nomia/internal/http/middleware"
	"nomia/internal/service"
	"nomia/internal/storage"
)

// presignRequest is the body for upload-URL issuance.
type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Key         string `json:"key"`
}

// PresignUpload issues a signed upload URL for a new storage key. When
// the request carries a team-id header, the user's remaining document
// quota is checked first.
func PresignUpload(uploads service.UploadService, limits service.LimitsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, msgUnauthorized)
		}

		var req presignRequest
		if err := c.BodyParser(&req); err != nil || req.FileName == "" {
			return writeError(c, fiber.StatusBadRequest, msgInvalidDocument)
		}

		if rawTeamID := c.Get(TeamIDHeader); rawTeamID != "" {
			teamID, err := strconv.ParseInt(rawTeamID, 10, 64)
			if err != nil || teamID <= 0 {
				return writeError(c, fiber.StatusInternalServerError, msgInvalidTeamID)
			}
			result, err := limits.ComputeLimits(c.UserContext(), user.ID, teamID)
			if err != nil {
				logServerError(c, err, "quota check failed")
				return writeError(c, fiber.StatusInternalServerError, msgFetchFailed)
			}
			if result.Remaining.Documents <= 0 {
				return writeError(c, fiber.StatusBadRequest, msgLimitExceeded)
			}
		}

		grant, err := uploads.CreateUploadURL(c.UserContext(), req.FileName, req.ContentType, user.ID)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(grant)
	}
}

// RenewPresign re-signs an upload URL for an existing storage key.
func RenewPresign(uploads service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req presignRequest
		if err := c.BodyParser(&req); err != nil || req.Key == "" {
			return writeError(c, fiber.StatusBadRequest, msgInvalidDocument)
		}

		grant, err := uploads.RenewUploadURL(c.UserContext(), req.Key, req.ContentType)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(grant)
	}
}

// DownloadURL issues a signed download URL for a storage key.
func DownloadURL(uploads service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Query("key")
		if key == "" {
			return writeError(c, fiber.StatusBadRequest, msgInvalidDocument)
		}

		grant, err := uploads.CreateDownloadURL(c.UserContext(), key)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(grant)
	}
}

// UploadFile is the server-side direct upload path
// (multipart/form-data, field name: file).
func UploadFile(uploads service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, msgUnauthorized)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, msgInvalidDocument)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, msgInvalidDocument)
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		result, err := uploads.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size, user.ID)
		if err != nil {
			return storageError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	}
}

// DownloadFile streams an object's bytes through the server. This is
// the read path for the database transport, which has no presigning.
func DownloadFile(uploads service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Query("key")
		if key == "" {
			return writeError(c, fiber.StatusBadRequest, msgInvalidDocument)
		}

		r, info, err := uploads.Download(c.UserContext(), key)
		if err != nil {
			return storageError(c, err)
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		return c.SendStream(r, int(info.Size))
	}
}

// DeleteFile removes an object by key.
func DeleteFile(uploads service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Query("key")
		if key == "" {
			return writeError(c, fiber.StatusBadRequest, msgInvalidDocument)
		}

		if err := uploads.Delete(c.UserContext(), key); err != nil {
			return storageError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// storageError maps storage failures onto HTTP responses. Configuration
// problems are operator errors: logged in detail, generic to the user.
// A missing object is not an operator error: the key came from the
// client, so it gets a 404 rather than the generic 500.
func storageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, msgFileNotFound)
	case errors.Is(err, storage.ErrInvalidTransport), errors.Is(err, storage.ErrMissingConfig):
		logServerError(c, err, "storage misconfiguration")
		return writeError(c, fiber.StatusInternalServerError, msgUnknown)
	default:
		logServerError(c, err, "storage operation failed")
		return writeError(c, fiber.StatusInternalServerError, msgUnknown)
	}
}
