package repository_test

import (
	"testing"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/testutil"
	"github.com/meriter/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_communityRepository_Lookups(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	communityRepo := repository.NewCommunityRepository()

	community, err := communityRepo.GetByHandle(ctx, testutil.MarathonCommunity.Handle)
	require.NoError(t, err)
	require.Equal(t, testutil.MarathonCommunity.ID, community.ID)

	community, err = communityRepo.GetByType(ctx, entity.CommunityFutureVision)
	require.NoError(t, err)
	require.Equal(t, testutil.FutureVisionCommunity.ID, community.ID)

	// Future Vision emits no quota, so the emitting filter excludes it.
	communities, err := communityRepo.GetList(ctx, repository.GetListCommunityFilter{
		EmittingQuota: true,
	})
	require.NoError(t, err)
	for _, c := range communities {
		require.NotEqual(t, testutil.FutureVisionCommunity.ID, c.ID)
	}
	require.Len(t, communities, 3)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Name, user.Name)
}

func Test_followerRepository_SharedCommunityIDs(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	followerRepo := repository.NewFollowerRepository()

	// user1 and user2 share the team community.
	shared, err := followerRepo.SharedCommunityIDs(
		ctx, testutil.User1.ID, testutil.User2.ID, entity.CommunityTeam)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.TeamCommunity.ID}, shared)

	// user3 is in no team.
	shared, err = followerRepo.SharedCommunityIDs(
		ctx, testutil.User1.ID, testutil.User3.ID, entity.CommunityTeam)
	require.NoError(t, err)
	require.Empty(t, shared)

	followers, err := followerRepo.GetListByUserID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)

	// A user who left the team no longer counts as a teammate.
	err = xcontext.DB(ctx).
		Where("user_id=? AND community_id=?", testutil.User2.ID, testutil.TeamCommunity.ID).
		Delete(&entity.Follower{}).Error
	require.NoError(t, err)

	shared, err = followerRepo.SharedCommunityIDs(
		ctx, testutil.User1.ID, testutil.User2.ID, entity.CommunityTeam)
	require.NoError(t, err)
	require.Empty(t, shared)
}

func Test_followerRepository_SpendQuota(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	followerRepo := repository.NewFollowerRepository()
	emission := testutil.Community1.DailyEmission

	require.NoError(t, followerRepo.SpendQuota(
		ctx, testutil.User2.ID, testutil.Community1.ID, 6, emission))

	// The usage predicate rejects a spend over the emission in the same
	// statement that applies it, so no interleaving can overspend.
	err := followerRepo.SpendQuota(ctx, testutil.User2.ID, testutil.Community1.ID, 5, emission)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	follower, err := followerRepo.Get(ctx, testutil.User2.ID, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(6), follower.QuotaUsed)

	// The remaining 4 are still spendable.
	require.NoError(t, followerRepo.SpendQuota(
		ctx, testutil.User2.ID, testutil.Community1.ID, 4, emission))

	err = followerRepo.SpendQuota(ctx, testutil.User2.ID, testutil.Community1.ID, 1, emission)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, followerRepo.ResetQuota(ctx, testutil.Community1.ID))

	follower, err = followerRepo.Get(ctx, testutil.User2.ID, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), follower.QuotaUsed)
}

func Test_commentRepository_GetListByTarget(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	commentRepo := repository.NewCommentRepository()
	comment := &entity.Comment{
		Base:       entity.Base{ID: "comment1"},
		AuthorID:   testutil.User2.ID,
		TargetType: entity.CommentOnPublication,
		TargetID:   testutil.Publication1.ID,
		Content:    "hello",
	}
	require.NoError(t, commentRepo.Create(ctx, comment))

	comments, err := commentRepo.GetListByTarget(
		ctx, entity.CommentOnPublication, testutil.Publication1.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "hello", comments[0].Content)
}
