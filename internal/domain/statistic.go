package domain

import (
	"context"
	"errors"

	"github.com/meriter/backend/internal/domain/statistic"
	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/internal/model"
	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/enum"
	"github.com/meriter/backend/pkg/errorx"
	"github.com/meriter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// maxScoreDepth bounds the vote-on-vote recursion when aggregating a score.
const maxScoreDepth = 16

type StatisticDomain interface {
	GetScore(ctx context.Context, req *model.GetScoreRequest) (*model.GetScoreResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type statisticDomain struct {
	publicationRepo repository.PublicationRepository
	voteRepo        repository.VoteRepository
	communityRepo   repository.CommunityRepository
	scoreboard      statistic.Scoreboard
}

func NewStatisticDomain(
	publicationRepo repository.PublicationRepository,
	voteRepo repository.VoteRepository,
	communityRepo repository.CommunityRepository,
	scoreboard statistic.Scoreboard,
) *statisticDomain {
	return &statisticDomain{
		publicationRepo: publicationRepo,
		voteRepo:        voteRepo,
		communityRepo:   communityRepo,
		scoreboard:      scoreboard,
	}
}

func (d *statisticDomain) GetScore(
	ctx context.Context, req *model.GetScoreRequest,
) (*model.GetScoreResponse, error) {
	targetType, err := enum.ToEnum[entity.VoteTargetType](req.TargetType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid target type %s", req.TargetType)
	}

	if targetType == entity.VoteOnPublication {
		publication, err := d.publicationRepo.GetByID(ctx, req.TargetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found publication")
			}

			xcontext.Logger(ctx).Errorf("Cannot get publication: %v", err)
			return nil, errorx.Unknown
		}

		resp := &model.GetScoreResponse{
			Upvotes:   publication.Upvotes,
			Downvotes: publication.Downvotes,
			Score:     publication.Score,
		}

		// Rank is a best-effort read of the scoreboard cache.
		if rank, err := d.scoreboard.Rank(ctx, publication.CommunityID, publication.ID); err == nil {
			resp.Rank = &rank
		}

		return resp, nil
	}

	if _, err := d.voteRepo.GetByID(ctx, req.TargetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found vote")
		}

		xcontext.Logger(ctx).Errorf("Cannot get vote: %v", err)
		return nil, errorx.Unknown
	}

	up, down, score, err := d.aggregate(ctx, targetType, req.TargetID, 0)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot aggregate score: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetScoreResponse{Upvotes: up, Downvotes: down, Score: score}, nil
}

// aggregate sums the votes on a target and, recursively, the votes on those
// votes. The direct counters only include the first level; the score includes
// the whole subtree.
func (d *statisticDomain) aggregate(
	ctx context.Context, targetType entity.VoteTargetType, targetID string, depth int,
) (uint64, uint64, int64, error) {
	if depth >= maxScoreDepth {
		return 0, 0, 0, nil
	}

	up, down := uint64(0), uint64(0)
	sums, err := d.voteRepo.SumByTarget(ctx, targetType, targetID)
	if err != nil {
		return 0, 0, 0, err
	}

	for _, sum := range sums {
		if sum.Direction == entity.VoteUp {
			up += sum.Total
		} else {
			down += sum.Total
		}
	}

	score := int64(up) - int64(down)

	votes, err := d.voteRepo.GetListByTarget(ctx, targetType, targetID)
	if err != nil {
		return 0, 0, 0, err
	}

	for _, vote := range votes {
		_, _, subScore, err := d.aggregate(ctx, entity.VoteOnVote, vote.ID, depth+1)
		if err != nil {
			return 0, 0, 0, err
		}

		score += subScore
	}

	return up, down, score, nil
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.CommunityID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty community id")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	if _, err := d.communityRepo.GetByID(ctx, req.CommunityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	entries, err := d.scoreboard.TopPublications(ctx, req.CommunityID, req.Offset, req.Limit)
	if err == nil && len(entries) > 0 {
		return &model.GetLeaderboardResponse{Entries: entries}, nil
	}

	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read scoreboard, falling back to database: %v", err)
	}

	publications, err := d.publicationRepo.GetTopByCommunity(ctx, req.CommunityID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get top publications: %v", err)
		return nil, errorx.Unknown
	}

	entries = []model.PublicationScore{}
	for _, publication := range publications {
		entries = append(entries, model.PublicationScore{
			PublicationID: publication.ID,
			Score:         publication.Score,
		})
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}
