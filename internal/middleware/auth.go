package middleware

import (
	"context"

	"github.com/meriter/backend/pkg/errorx"
	"github.com/meriter/backend/pkg/router"
	"github.com/meriter/backend/pkg/xcontext"
)

// NewAuthVerifier verifies the bearer token of the request and records the
// authenticated user id in the context.
func NewAuthVerifier() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := xcontext.AccessToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		info, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}
