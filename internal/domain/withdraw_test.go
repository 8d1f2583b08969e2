package domain

import (
	"testing"

	"github.com/meriter/backend/internal/common"
	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/internal/model"
	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestWithdrawDomain() *withdrawDomain {
	communityRepo := repository.NewCommunityRepository()
	voteRepo := repository.NewVoteRepository()
	publicationRepo := repository.NewPublicationRepository()
	commentRepo := repository.NewCommentRepository()

	return NewWithdrawDomain(
		communityRepo,
		voteRepo,
		repository.NewTransactionRepository(),
		common.NewBeneficiaryResolver(publicationRepo, commentRepo, voteRepo),
		common.NewLedger(communityRepo, repository.NewWalletRepository(), repository.NewTransactionRepository()),
		&testutil.MockPublisher{},
	)
}

func Test_withdrawDomain_Withdraw(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	voteDomain := newTestVoteDomain()
	withdrawDomain := newTestWithdrawDomain()
	ledger := newTestLedger()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := voteDomain.Create(ctxUser2, &model.CreateVoteRequest{
		TargetType:  "publication",
		TargetID:    testutil.Publication1.ID,
		AmountQuota: 5,
		Direction:   "up",
	})
	require.NoError(t, err)

	// Only the beneficiary (the author here) can withdraw.
	_, err = withdrawDomain.Withdraw(ctxUser2, &model.WithdrawRequest{
		TargetType: "publication",
		TargetID:   testutil.Publication1.ID,
		Amount:     1,
	})
	require.Error(t, err)
	require.Equal(t, "Only the beneficiary can withdraw from this target", err.Error())

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := withdrawDomain.Withdraw(ctxUser1, &model.WithdrawRequest{
		TargetType: "publication",
		TargetID:   testutil.Publication1.ID,
		Amount:     3,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(3), resp.Amount)
	require.Equal(t, testutil.Community1.ID, resp.CreditedCommunityID)

	balance, err := ledger.Balance(ctx, testutil.User1.ID, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(3), balance)

	// Only 2 of the original 5 are left on the publication.
	_, err = withdrawDomain.Withdraw(ctxUser1, &model.WithdrawRequest{
		TargetType: "publication",
		TargetID:   testutil.Publication1.ID,
		Amount:     3,
	})
	require.Error(t, err)
	require.Equal(t, "Only 2 can be withdrawn from this target", err.Error())

	_, err = withdrawDomain.Withdraw(ctxUser1, &model.WithdrawRequest{
		TargetType: "publication",
		TargetID:   testutil.Publication1.ID,
		Amount:     2,
	})
	require.NoError(t, err)

	balance, err = ledger.Balance(ctx, testutil.User1.ID, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(5), balance)
}

func Test_withdrawDomain_Withdraw_MarathonCreditsFutureVision(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	voteDomain := newTestVoteDomain()
	withdrawDomain := newTestWithdrawDomain()
	ledger := newTestLedger()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := voteDomain.Create(ctxUser2, &model.CreateVoteRequest{
		TargetType:  "publication",
		TargetID:    testutil.Publication2.ID,
		AmountQuota: 5,
		Direction:   "up",
	})
	require.NoError(t, err)

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := withdrawDomain.Withdraw(ctxUser1, &model.WithdrawRequest{
		TargetType: "publication",
		TargetID:   testutil.Publication2.ID,
		Amount:     5,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.FutureVisionCommunity.ID, resp.CreditedCommunityID)

	// The merit lands in the Future Vision wallet, not the marathon one.
	balance, err := ledger.Balance(ctx, testutil.User1.ID, testutil.FutureVisionCommunity.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(5), balance)

	balance, err = ledger.Balance(ctx, testutil.User1.ID, testutil.MarathonCommunity.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), balance)
}

func Test_withdrawDomain_Withdraw_MissingFutureVision(t *testing.T) {
	ctx := testutil.MockContext()

	// A world with a marathon community but no Future Vision counterpart.
	testutil.InsertUsers(ctx)
	communityRepo := repository.NewCommunityRepository()
	marathon := testutil.MarathonCommunity
	require.NoError(t, communityRepo.Create(ctx, &marathon))

	followerRepo := repository.NewFollowerRepository()
	require.NoError(t, followerRepo.Create(ctx, &entity.Follower{
		UserID: testutil.User1.ID, CommunityID: marathon.ID, Role: entity.RoleMember,
	}))
	require.NoError(t, followerRepo.Create(ctx, &entity.Follower{
		UserID: testutil.User2.ID, CommunityID: marathon.ID, Role: entity.RoleMember,
	}))

	publication := testutil.Publication2
	require.NoError(t, repository.NewPublicationRepository().Create(ctx, &publication))

	voteDomain := newTestVoteDomain()
	withdrawDomain := newTestWithdrawDomain()
	ledger := newTestLedger()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := voteDomain.Create(ctxUser2, &model.CreateVoteRequest{
		TargetType:  "publication",
		TargetID:    publication.ID,
		AmountQuota: 4,
		Direction:   "up",
	})
	require.NoError(t, err)

	// The conversion is skipped: nothing is credited anywhere, and the value
	// stays withdrawable for when the destination community appears.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := withdrawDomain.Withdraw(ctxUser1, &model.WithdrawRequest{
		TargetType: "publication",
		TargetID:   publication.ID,
		Amount:     4,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(4), resp.Amount)
	require.Empty(t, resp.CreditedCommunityID)

	balance, err := ledger.Balance(ctx, testutil.User1.ID, marathon.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), balance)

	// Once Future Vision exists, the value is withdrawn for real.
	futureVision := testutil.FutureVisionCommunity
	require.NoError(t, communityRepo.Create(ctx, &futureVision))

	resp, err = withdrawDomain.Withdraw(ctxUser1, &model.WithdrawRequest{
		TargetType: "publication",
		TargetID:   publication.ID,
		Amount:     4,
	})
	require.NoError(t, err)
	require.Equal(t, futureVision.ID, resp.CreditedCommunityID)

	balance, err = ledger.Balance(ctx, testutil.User1.ID, futureVision.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(4), balance)
}

func Test_withdrawDomain_Withdraw_FromVote(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	voteDomain := newTestVoteDomain()
	withdrawDomain := newTestWithdrawDomain()
	ledger := newTestLedger()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := voteDomain.Create(ctxUser2, &model.CreateVoteRequest{
		TargetType:  "publication",
		TargetID:    testutil.Publication1.ID,
		AmountQuota: 4,
		Direction:   "up",
	})
	require.NoError(t, err)

	ctxUser3 := testutil.MockContextWithUserID(ctx, testutil.User3.ID)
	_, err = voteDomain.Create(ctxUser3, &model.CreateVoteRequest{
		TargetType:  "vote",
		TargetID:    resp.VoteIDs[0],
		AmountQuota: 2,
		Direction:   "up",
	})
	require.NoError(t, err)

	// A vote's beneficiary is its voter.
	resp2, err := withdrawDomain.Withdraw(ctxUser2, &model.WithdrawRequest{
		TargetType: "vote",
		TargetID:   resp.VoteIDs[0],
		Amount:     2,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(2), resp2.Amount)

	balance, err := ledger.Balance(ctx, testutil.User2.ID, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(2), balance)
}
