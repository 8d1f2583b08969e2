package cron

import (
	"context"
	"time"

	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/dateutil"
	"github.com/meriter/backend/pkg/xcontext"
)

// ResetQuotaCronJob restarts the daily quota of every community that emits
// quota: the usage counters go back to zero and the window marker moves to
// now. Vote history stays untouched for audit.
type ResetQuotaCronJob struct {
	communityRepo repository.CommunityRepository
	followerRepo  repository.FollowerRepository
	resetHour     int
}

func NewResetQuotaCronJob(
	communityRepo repository.CommunityRepository,
	followerRepo repository.FollowerRepository,
	resetHour int,
) *ResetQuotaCronJob {
	return &ResetQuotaCronJob{
		communityRepo: communityRepo,
		followerRepo:  followerRepo,
		resetHour:     resetHour,
	}
}

func (job *ResetQuotaCronJob) Do(ctx context.Context) {
	communities, err := job.communityRepo.GetList(ctx, repository.GetListCommunityFilter{
		EmittingQuota: true,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quota-emitting communities: %v", err)
		return
	}

	now := time.Now()
	for _, c := range communities {
		func() {
			ctx := xcontext.WithDBTransaction(ctx)
			defer xcontext.WithRollbackDBTransaction(ctx)

			if err := job.communityRepo.UpdateLastQuotaResetAt(ctx, c.ID, now); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot move quota marker of community %s: %v", c.ID, err)
				return
			}

			if err := job.followerRepo.ResetQuota(ctx, c.ID); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot reset quota of community %s: %v", c.ID, err)
				return
			}

			xcontext.WithCommitDBTransaction(ctx)
		}()
	}
}

func (job *ResetQuotaCronJob) RunNow() bool {
	return false
}

func (job *ResetQuotaCronJob) Next() time.Time {
	next := dateutil.BeginningOfDay(time.Now()).Add(time.Duration(job.resetHour) * time.Hour)
	if !next.After(time.Now()) {
		next = dateutil.NextMidnight(time.Now()).Add(time.Duration(job.resetHour) * time.Hour)
	}

	return next
}
