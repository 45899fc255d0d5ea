package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinica-backend/internal/scheduler"
	"clinica-backend/internal/utils"
)

// respondSchedulerError maps the scheduler error taxonomy to HTTP:
// validation and conflict errors are 400, not-found is 404, store
// failures are 500 with the underlying cause attached.
func respondSchedulerError(c *gin.Context, err error) {
	var (
		validationErr *scheduler.ValidationError
		notFoundErr   *scheduler.NotFoundError
		conflictErr   *scheduler.ConflictError
		storeErr      *scheduler.StoreError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.BadRequest(c, validationErr.Message)
	case errors.As(err, &conflictErr):
		utils.BadRequest(c, conflictErr.Message)
	case errors.As(err, &notFoundErr):
		utils.NotFound(c, notFoundErr.Message)
	case errors.As(err, &storeErr):
		utils.InternalServerError(c, "Error interno del servidor", storeErr.Err)
	default:
		utils.ErrorDetail(c, http.StatusInternalServerError, "Error interno del servidor", err)
	}
}
