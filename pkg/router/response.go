package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meriter/backend/pkg/errorx"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

// writeResponse always answers 200; the envelope code carries the outcome.
func writeResponse(ginCtx *gin.Context, resp response) {
	ginCtx.JSON(http.StatusOK, resp)
}
