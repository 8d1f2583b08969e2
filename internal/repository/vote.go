package repository

import (
	"context"
	"time"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/pkg/xcontext"
)

// DirectionSum is a grouped sum of vote amounts per direction.
type DirectionSum struct {
	Direction entity.VoteDirection
	Total     uint64
}

type VoteRepository interface {
	Create(ctx context.Context, data *entity.Vote) error
	GetByID(ctx context.Context, id string) (*entity.Vote, error)
	GetListByTarget(ctx context.Context, targetType entity.VoteTargetType, targetID string) ([]entity.Vote, error)
	QuotaUsed(ctx context.Context, userID, communityID string, since time.Time) (uint64, error)
	SumByTarget(ctx context.Context, targetType entity.VoteTargetType, targetID string) ([]DirectionSum, error)
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Create(ctx context.Context, data *entity.Vote) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *voteRepository) GetByID(ctx context.Context, id string) (*entity.Vote, error) {
	var result entity.Vote
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *voteRepository) GetListByTarget(
	ctx context.Context, targetType entity.VoteTargetType, targetID string,
) ([]entity.Vote, error) {
	var result []entity.Vote
	err := xcontext.DB(ctx).
		Where("target_type=? AND target_id=?", targetType, targetID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// QuotaUsed sums quota-sourced vote amounts of a user in a community since
// the start of the current quota window.
func (r *voteRepository) QuotaUsed(
	ctx context.Context, userID, communityID string, since time.Time,
) (uint64, error) {
	var result uint64
	err := xcontext.DB(ctx).
		Model(&entity.Vote{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id=? AND community_id=?", userID, communityID).
		Where("source=?", entity.SourceQuota).
		Where("created_at >= ?", since).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *voteRepository) SumByTarget(
	ctx context.Context, targetType entity.VoteTargetType, targetID string,
) ([]DirectionSum, error) {
	var result []DirectionSum
	err := xcontext.DB(ctx).
		Model(&entity.Vote{}).
		Select("direction, COALESCE(SUM(amount), 0) as total").
		Where("target_type=? AND target_id=?", targetType, targetID).
		Group("direction").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
