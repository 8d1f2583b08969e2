package repository

import (
	"context"
	"errors"
	"time"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListCommunityFilter struct {
	Type          entity.CommunityType
	EmittingQuota bool
}

type CommunityRepository interface {
	Create(ctx context.Context, data *entity.Community) error
	GetByID(ctx context.Context, id string) (*entity.Community, error)
	GetByHandle(ctx context.Context, handle string) (*entity.Community, error)
	GetByType(ctx context.Context, typ entity.CommunityType) (*entity.Community, error)
	GetList(ctx context.Context, filter GetListCommunityFilter) ([]entity.Community, error)
	UpdateLastQuotaResetAt(ctx context.Context, id string, resetAt time.Time) error
}

type communityRepository struct{}

func NewCommunityRepository() *communityRepository {
	return &communityRepository{}
}

func (r *communityRepository) Create(ctx context.Context, data *entity.Community) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*entity.Community, error) {
	var result entity.Community
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityRepository) GetByHandle(ctx context.Context, handle string) (*entity.Community, error) {
	var result entity.Community
	if err := xcontext.DB(ctx).Take(&result, "handle=?", handle).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByType returns the single community of the given type. The platform
// keeps exactly one marathon-of-good and one future-vision community.
func (r *communityRepository) GetByType(ctx context.Context, typ entity.CommunityType) (*entity.Community, error) {
	var result entity.Community
	if err := xcontext.DB(ctx).Take(&result, "type=?", typ).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityRepository) GetList(
	ctx context.Context, filter GetListCommunityFilter,
) ([]entity.Community, error) {
	tx := xcontext.DB(ctx).Model(&entity.Community{})

	if filter.Type != "" {
		tx = tx.Where("type=?", filter.Type)
	}

	if filter.EmittingQuota {
		tx = tx.Where("daily_emission > 0")
	}

	var result []entity.Community
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *communityRepository) UpdateLastQuotaResetAt(
	ctx context.Context, id string, resetAt time.Time,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Community{}).
		Where("id=?", id).
		Update("last_quota_reset_at", resetAt)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
