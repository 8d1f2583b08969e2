package migration

import (
	"context"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Community{},
		&entity.Follower{},
		&entity.Publication{},
		&entity.Comment{},
		&entity.Vote{},
		&entity.Wallet{},
		&entity.Transaction{},
	)
}
