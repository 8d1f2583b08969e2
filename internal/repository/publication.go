package repository

import (
	"context"
	"errors"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PublicationRepository interface {
	Create(ctx context.Context, data *entity.Publication) error
	GetByID(ctx context.Context, id string) (*entity.Publication, error)
	ApplyVoteMetrics(ctx context.Context, id string, up, down uint64, scoreDelta int64) error
	ApplyScoreDelta(ctx context.Context, id string, scoreDelta int64) error
	IncreaseCommentCount(ctx context.Context, id string) error
	GetTopByCommunity(ctx context.Context, communityID string, offset, limit int) ([]entity.Publication, error)
}

type publicationRepository struct{}

func NewPublicationRepository() *publicationRepository {
	return &publicationRepository{}
}

func (r *publicationRepository) Create(ctx context.Context, data *entity.Publication) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *publicationRepository) GetByID(ctx context.Context, id string) (*entity.Publication, error) {
	var result entity.Publication
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// ApplyVoteMetrics adjusts the denormalized vote counters of a publication
// for a direct vote.
func (r *publicationRepository) ApplyVoteMetrics(
	ctx context.Context, id string, up, down uint64, scoreDelta int64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Publication{}).
		Where("id=?", id).
		Updates(map[string]any{
			"upvotes":   gorm.Expr("upvotes+?", up),
			"downvotes": gorm.Expr("downvotes+?", down),
			"score":     gorm.Expr("score+?", scoreDelta),
		})

	return checkSingleRow(tx)
}

// ApplyScoreDelta adjusts only the running score. Used for votes cast deeper
// in the vote-on-vote tree, which count toward the root publication's score
// but not its direct vote counters.
func (r *publicationRepository) ApplyScoreDelta(ctx context.Context, id string, scoreDelta int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Publication{}).
		Where("id=?", id).
		Update("score", gorm.Expr("score+?", scoreDelta))

	return checkSingleRow(tx)
}

func (r *publicationRepository) IncreaseCommentCount(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Publication{}).
		Where("id=?", id).
		Update("comment_count", gorm.Expr("comment_count+1"))

	return checkSingleRow(tx)
}

func (r *publicationRepository) GetTopByCommunity(
	ctx context.Context, communityID string, offset, limit int,
) ([]entity.Publication, error) {
	var result []entity.Publication
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("score DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func checkSingleRow(tx *gorm.DB) error {
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
