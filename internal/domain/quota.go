package domain

import (
	"context"
	"errors"
	"time"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/internal/model"
	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/dateutil"
	"github.com/meriter/backend/pkg/errorx"
	"github.com/meriter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type QuotaDomain interface {
	Get(ctx context.Context, req *model.GetQuotaRequest) (*model.GetQuotaResponse, error)
	Reset(ctx context.Context, req *model.ResetQuotaRequest) (*model.ResetQuotaResponse, error)
}

type quotaDomain struct {
	communityRepo repository.CommunityRepository
	followerRepo  repository.FollowerRepository
}

func NewQuotaDomain(
	communityRepo repository.CommunityRepository,
	followerRepo repository.FollowerRepository,
) *quotaDomain {
	return &quotaDomain{
		communityRepo: communityRepo,
		followerRepo:  followerRepo,
	}
}

func (d *quotaDomain) Get(
	ctx context.Context, req *model.GetQuotaRequest,
) (*model.GetQuotaResponse, error) {
	if req.CommunityID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty community id")
	}

	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	community, err := d.communityRepo.GetByID(ctx, req.CommunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	used := uint64(0)
	follower, err := d.followerRepo.Get(ctx, userID, community.ID)
	if err == nil {
		used = follower.QuotaUsed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return nil, errorx.Unknown
	}

	remaining := uint64(0)
	if community.DailyEmission > used {
		remaining = community.DailyEmission - used
	}

	return &model.GetQuotaResponse{
		DailyQuota: community.DailyEmission,
		Used:       used,
		Remaining:  remaining,
	}, nil
}

func (d *quotaDomain) Reset(
	ctx context.Context, req *model.ResetQuotaRequest,
) (*model.ResetQuotaResponse, error) {
	if req.CommunityID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty community id")
	}

	follower, err := d.followerRepo.Get(ctx, xcontext.RequestUserID(ctx), req.CommunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return nil, errorx.Unknown
	}

	if follower.Role != entity.RoleModerator && follower.Role != entity.RoleLead {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The counters restart together with the marker; vote and transaction
	// history stays untouched for audit.
	err = d.communityRepo.UpdateLastQuotaResetAt(ctx, req.CommunityID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot update quota reset marker: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.followerRepo.ResetQuota(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset quota counters: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.ResetQuotaResponse{}, nil
}

// quotaWindowStart returns the start of the community's current quota
// window: the explicit reset marker, or the beginning of the current day
// when no marker was ever set.
func quotaWindowStart(community *entity.Community) time.Time {
	if community.LastQuotaResetAt.Valid {
		return community.LastQuotaResetAt.Time
	}

	return dateutil.BeginningOfDay(time.Now())
}
