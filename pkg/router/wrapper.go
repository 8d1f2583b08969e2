package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/meriter/backend/pkg/errorx"
	"github.com/meriter/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = ginCtx.BindQuery(&req)
		case http.MethodPost:
			err = ginCtx.BindJSON(&req)
		}
		if err != nil {
			writeResponse(ginCtx, newErrorResponse(
				errorx.New(errorx.BadRequest, "Cannot bind the request")))
			return
		}

		ctx := router.newRequestContext(ginCtx)
		for _, before := range router.befores {
			newCtx, err := before(ctx)
			if err != nil {
				writeResponse(ginCtx, newErrorResponse(err))
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			writeResponse(ginCtx, newErrorResponse(err))
			return
		}

		writeResponse(ginCtx, newResponse(resp))
	}
}

func (r *Router) newRequestContext(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)

	if token := bearerToken(ginCtx.GetHeader("Authorization")); token != "" {
		ctx = xcontext.WithAccessToken(ctx, token)
	}

	return ctx
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
