// Package handlers implements the gin handlers of the ReactionMapper API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ReactionMapper/internal/interfaces/http/middleware"
	"github.com/turtacn/ReactionMapper/pkg/errors"
	"github.com/turtacn/ReactionMapper/pkg/types/common"
)

// writeData writes a success envelope around data.
func writeData[T any](c *gin.Context, status int, data T) {
	resp := common.NewSuccessResponse(data)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(status, resp)
}

// writeAppError maps err to its HTTP status through the error code.  Codes
// that map to 5xx are masked unless they carry a client-relevant message.
func writeAppError(c *gin.Context, err error) {
	var ae *errors.AppError
	if !errors.As(err, &ae) {
		ae = errors.Wrap(err, errors.ErrCodeInternal, errors.DefaultMessageForCode(errors.ErrCodeInternal))
	}
	status := ae.HTTPStatus()
	message, detail := ae.Message, ae.Detail
	if status >= http.StatusInternalServerError && status != http.StatusGatewayTimeout {
		message, detail = errors.DefaultMessageForCode(ae.Code), ""
	}
	_ = c.Error(err)

	resp := common.NewErrorResponse(ae.Code.String(), message, detail)
	resp.RequestID = middleware.GetRequestID(c)
	c.AbortWithStatusJSON(status, resp)
}
