package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Requested int    `json:"requested,omitempty"`
	Available *int   `json:"available,omitempty"`
	Deadline  string `json:"deadline,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps domain error kinds to HTTP statuses. Internal causes are
// not echoed to the client.
func writeError(c *gin.Context, err error) {
	rid := GetRequestID(c)
	var (
		validation  domain.ValidationError
		unavailable domain.UnavailableError
		denied      domain.CancellationDeniedError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: validation.Error(), Field: validation.Field, RequestID: rid})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error(), RequestID: rid})
	case errors.As(err, &unavailable):
		available := unavailable.Available
		c.JSON(http.StatusConflict, errorResponse{Error: unavailable.Error(), Requested: unavailable.Requested, Available: &available, RequestID: rid})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), RequestID: rid})
	case errors.As(err, &denied):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: denied.Error(), Deadline: denied.Deadline.UTC().Format(time.RFC3339), RequestID: rid})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error", RequestID: rid})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), RequestID: GetRequestID(c)})
}
