package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Habid-Marun/getsemani-vivo/internal/api/response"
	"github.com/Habid-Marun/getsemani-vivo/internal/service"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 200
)

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if skip < 0 {
		skip = 0
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit
}

// handleBusinessServiceError maps business access failures onto the wire.
// Not-found fires before not-owner at the service layer, so an existing
// business someone else owns surfaces as forbidden, never as missing.
func handleBusinessServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBusinessNotFound):
		response.NotFound(c, "business not found")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, "not the owner of this business")
	case errors.Is(err, service.ErrInvalidCategory):
		response.BadRequest(c, "invalid category")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, "invalid status")
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, "invalid input")
	default:
		response.Internal(c)
	}
}

func handleUserServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, service.ErrEmailTaken):
		response.BadRequest(c, "email already registered")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, "invalid role")
	case errors.Is(err, service.ErrSelfDeactivate):
		response.BadRequest(c, "cannot deactivate your own account")
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, "invalid input")
	default:
		response.Internal(c)
	}
}
