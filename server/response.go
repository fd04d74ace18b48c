package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/secureapi/errors"
)

// DataResponse wraps every successful payload in a data envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError renders err. An AppError carries its own status and wire
// body; anything else collapses to a generic 500 so internal detail never
// reaches clients.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// AbortWithError renders err and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	RespondWithError(c, err)
	c.Abort()
}

// RespondOK sends data in the envelope with a 200.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondCreated sends data in the envelope with a 201.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, DataResponse{Data: data})
}

// RespondNoContent sends an empty 204.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
