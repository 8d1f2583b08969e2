package domain

import (
	"testing"

	"github.com/meriter/backend/internal/model"
	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestQuotaDomain() *quotaDomain {
	return NewQuotaDomain(
		repository.NewCommunityRepository(),
		repository.NewFollowerRepository(),
	)
}

func Test_quotaDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	quotaDomain := newTestQuotaDomain()
	voteDomain := newTestVoteDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := quotaDomain.Get(ctxUser2, &model.GetQuotaRequest{
		CommunityID: testutil.Community1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(10), resp.DailyQuota)
	require.Equal(t, uint64(0), resp.Used)
	require.Equal(t, uint64(10), resp.Remaining)

	_, err = voteDomain.Create(ctxUser2, &model.CreateVoteRequest{
		TargetType:  "publication",
		TargetID:    testutil.Publication1.ID,
		AmountQuota: 4,
		Direction:   "up",
	})
	require.NoError(t, err)

	// Used and remaining always add up to the daily emission.
	resp, err = quotaDomain.Get(ctxUser2, &model.GetQuotaRequest{
		CommunityID: testutil.Community1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(4), resp.Used)
	require.Equal(t, uint64(6), resp.Remaining)
	require.Equal(t, resp.DailyQuota, resp.Used+resp.Remaining)

	// Quota is tracked per community and per user.
	resp, err = quotaDomain.Get(ctxUser2, &model.GetQuotaRequest{
		CommunityID: testutil.MarathonCommunity.ID,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.Used)

	resp, err = quotaDomain.Get(ctxUser2, &model.GetQuotaRequest{
		CommunityID: testutil.Community1.ID,
		UserID:      testutil.User3.ID,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.Used)
}

func Test_quotaDomain_Get_UnknownCommunity(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	quotaDomain := newTestQuotaDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := quotaDomain.Get(ctxUser2, &model.GetQuotaRequest{CommunityID: "unknown"})
	require.Error(t, err)
	require.Equal(t, "Not found community", err.Error())

	_, err = quotaDomain.Get(ctxUser2, &model.GetQuotaRequest{})
	require.Error(t, err)
	require.Equal(t, "Not allow empty community id", err.Error())
}

func Test_quotaDomain_Reset(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	quotaDomain := newTestQuotaDomain()
	voteDomain := newTestVoteDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := voteDomain.Create(ctxUser2, &model.CreateVoteRequest{
		TargetType:  "publication",
		TargetID:    testutil.Publication2.ID,
		AmountQuota: 4,
		Direction:   "up",
	})
	require.NoError(t, err)

	resp, err := quotaDomain.Get(ctxUser2, &model.GetQuotaRequest{
		CommunityID: testutil.MarathonCommunity.ID,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(4), resp.Used)

	// A plain member cannot reset.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = quotaDomain.Reset(ctxUser1, &model.ResetQuotaRequest{
		CommunityID: testutil.MarathonCommunity.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	// user2 moderates the marathon community. The reset clears the usage
	// counters, so earlier spends stop counting.
	_, err = quotaDomain.Reset(ctxUser2, &model.ResetQuotaRequest{
		CommunityID: testutil.MarathonCommunity.ID,
	})
	require.NoError(t, err)

	resp, err = quotaDomain.Get(ctxUser2, &model.GetQuotaRequest{
		CommunityID: testutil.MarathonCommunity.ID,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.Used)
	require.Equal(t, uint64(10), resp.Remaining)

	// Resetting again right away changes nothing.
	_, err = quotaDomain.Reset(ctxUser2, &model.ResetQuotaRequest{
		CommunityID: testutil.MarathonCommunity.ID,
	})
	require.NoError(t, err)

	resp, err = quotaDomain.Get(ctxUser2, &model.GetQuotaRequest{
		CommunityID: testutil.MarathonCommunity.ID,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(10), resp.Remaining)
}
