package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskflow-io/taskflow/internal/modules/serializer"
	"github.com/taskflow-io/taskflow/internal/modules/service"
)

// currentUserID reads the authenticated caller injected by middleware.UserAuth.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// respondErr maps service errors onto the HTTP status taxonomy.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), nil))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(err.Error()))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), nil))
	case errors.Is(err, service.ErrInvalidLogin):
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(err.Error()))
	case errors.Is(err, service.ErrTooManyLogins):
		c.JSON(http.StatusTooManyRequests, serializer.Err(err.Error(), nil))
	case errors.Is(err, service.ErrUpstreamFormat), errors.Is(err, service.ErrUpstream):
		c.JSON(http.StatusInternalServerError, serializer.Err(err.Error(), err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}
