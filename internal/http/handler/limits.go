package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"nomia/internal/http/middleware"
	"nomia/internal/service"
)

// TeamIDHeader carries the team scope for limit computation.
const TeamIDHeader = "team-id"

// GetLimits computes the caller's document quota and remaining counts.
// Requires an authenticated session and a team-id header.
func GetLimits(svc service.LimitsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, msgUnauthorized)
		}

		teamID, err := strconv.ParseInt(c.Get(TeamIDHeader), 10, 64)
		if err != nil || teamID <= 0 {
			return writeError(c, fiber.StatusInternalServerError, msgInvalidTeamID)
		}

		limits, err := svc.ComputeLimits(c.UserContext(), user.ID, teamID)
		if err != nil {
			logServerError(c, err, "limits computation failed")
			switch {
			case errors.Is(err, service.ErrOrganisationNotFound),
				errors.Is(err, service.ErrInvalidClaimData),
				errors.Is(err, service.ErrLedgerUnavailable):
				return writeError(c, fiber.StatusInternalServerError, msgFetchFailed)
			default:
				return writeError(c, fiber.StatusInternalServerError, msgUnknown)
			}
		}

		return c.JSON(limits)
	}
}
