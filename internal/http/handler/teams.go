package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"nomia/internal/http/middleware"
	"nomia/internal/service"
)

// ListTeams returns the caller's teams across their organisations,
// paginated and optionally filtered by organisation or name.
func ListTeams(teams service.TeamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, msgUnauthorized)
		}

		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, msgInvalidPaging)
		}
		perPage, err := strconv.Atoi(c.Query("perPage", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, msgInvalidPaging)
		}

		res, err := teams.List(c.UserContext(), user.ID, service.TeamListOptions{
			OrganisationID: c.Query("organisationId"),
			Query:          c.Query("query"),
			Page:           page,
			PerPage:        perPage,
		})
		if err != nil {
			logServerError(c, err, "team listing failed")
			return writeError(c, fiber.StatusInternalServerError, msgFetchFailed)
		}

		return c.JSON(res)
	}
}
