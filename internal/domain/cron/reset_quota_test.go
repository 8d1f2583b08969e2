package cron

import (
	"testing"

	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_ResetQuotaCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	communityRepo := repository.NewCommunityRepository()
	followerRepo := repository.NewFollowerRepository()

	require.NoError(t, followerRepo.SpendQuota(
		ctx, testutil.User2.ID, testutil.Community1.ID, 6, testutil.Community1.DailyEmission))

	job := NewResetQuotaCronJob(communityRepo, followerRepo, 0)
	job.Do(ctx)

	// The counter went back to zero and the window marker moved.
	follower, err := followerRepo.Get(ctx, testutil.User2.ID, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), follower.QuotaUsed)

	community, err := communityRepo.GetByID(ctx, testutil.Community1.ID)
	require.NoError(t, err)
	require.True(t, community.LastQuotaResetAt.Valid)
}
