package api

import (
	"errors"
	"net/http"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortDomainError maps the usecase failure kinds onto transport codes.
// The not-found conflation (ownership mismatch vs. true absence) is already
// applied below this layer, so the mapping stays mechanical.
func abortDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrIdentityNotAuthorized):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Unknown user identity", nil)
	case errors.Is(err, errs.ErrResourceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case errors.Is(err, errs.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errors.Is(err, errs.ErrEmailConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Email already in use", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
