package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "account-item-service/pkg/errors"
)

// statusSuccess is the literal success discriminator of the API envelope.
const statusSuccess = "Success"

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// newErrorResponse builds the {status:"error", message} body.
func newErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Status: "error", Message: message}
}

// handleError maps a usecase error to the corresponding HTTP status code.
// Typed application errors carry their own status; anything else is an
// internal error and its details stay out of the response body.
func handleError(c *gin.Context, log *zap.Logger, err error) {
	if st, ok := err.(apperrors.HTTPStatuser); ok {
		c.JSON(st.HTTPStatus(), newErrorResponse(err.Error()))
		return
	}

	log.Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, newErrorResponse("An internal error occurred"))
}
