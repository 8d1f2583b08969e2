package repository

import (
	"context"
	"errors"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowerRepository interface {
	Create(ctx context.Context, data *entity.Follower) error
	Get(ctx context.Context, userID, communityID string) (*entity.Follower, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Follower, error)
	SharedCommunityIDs(ctx context.Context, firstUserID, secondUserID string, typ entity.CommunityType) ([]string, error)
	SpendQuota(ctx context.Context, userID, communityID string, amount, dailyEmission uint64) error
	ResetQuota(ctx context.Context, communityID string) error
}

type followerRepository struct{}

func NewFollowerRepository() *followerRepository {
	return &followerRepository{}
}

func (r *followerRepository) Create(ctx context.Context, data *entity.Follower) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *followerRepository) Get(ctx context.Context, userID, communityID string) (*entity.Follower, error) {
	var result entity.Follower
	err := xcontext.DB(ctx).Where("user_id=? AND community_id=?", userID, communityID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followerRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Follower, error) {
	var result []entity.Follower
	err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SharedCommunityIDs returns communities of the given type that both users
// follow. Used to detect a team overlap between a voter and a beneficiary.
func (r *followerRepository) SharedCommunityIDs(
	ctx context.Context, firstUserID, secondUserID string, typ entity.CommunityType,
) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Select("followers.community_id").
		Joins("join communities on communities.id=followers.community_id").
		Joins("join followers others on others.community_id=followers.community_id").
		Where("followers.user_id=? AND others.user_id=?", firstUserID, secondUserID).
		Where("others.deleted_at IS NULL").
		Where("communities.type=?", typ).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SpendQuota applies a guarded quota spend. The usage predicate makes
// concurrent spends against one follower linearize at the database; a spend
// that would exceed the emission matches no row and returns
// ErrRecordNotFound.
func (r *followerRepository) SpendQuota(
	ctx context.Context, userID, communityID string, amount, dailyEmission uint64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("user_id=? AND community_id=? AND quota_used+? <= ?",
			userID, communityID, amount, dailyEmission).
		Update("quota_used", gorm.Expr("quota_used+?", amount))

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

func (r *followerRepository) ResetQuota(ctx context.Context, communityID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("community_id=?", communityID).
		Update("quota_used", 0).Error
}
