package common

import (
	"database/sql"
	"testing"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestResolver() *BeneficiaryResolver {
	return NewBeneficiaryResolver(
		repository.NewPublicationRepository(),
		repository.NewCommentRepository(),
		repository.NewVoteRepository(),
	)
}

func Test_BeneficiaryResolver_ResolveVoteTarget(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	resolver := newTestResolver()

	// A publication without an explicit beneficiary pays its author.
	info, err := resolver.ResolveVoteTarget(
		ctx, entity.VoteOnPublication, testutil.Publication1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, info.BeneficiaryID)
	require.Equal(t, testutil.Community1.ID, info.CommunityID)
	require.Equal(t, testutil.Publication1.ID, info.PublicationID)

	// An explicit beneficiary overrides the author.
	publicationRepo := repository.NewPublicationRepository()
	delegated := &entity.Publication{
		Base:          entity.Base{ID: "delegated"},
		CommunityID:   testutil.Community1.ID,
		AuthorID:      testutil.User1.ID,
		BeneficiaryID: sql.NullString{String: testutil.User3.ID, Valid: true},
		Type:          entity.PostText,
	}
	require.NoError(t, publicationRepo.Create(ctx, delegated))

	info, err = resolver.ResolveVoteTarget(ctx, entity.VoteOnPublication, delegated.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User3.ID, info.BeneficiaryID)

	// The beneficiary of a vote is its voter, and the chain resolves down to
	// the root publication.
	voteRepo := repository.NewVoteRepository()
	vote := &entity.Vote{
		Base:        entity.Base{ID: "vote1"},
		TargetType:  entity.VoteOnPublication,
		TargetID:    testutil.Publication1.ID,
		UserID:      testutil.User2.ID,
		CommunityID: testutil.Community1.ID,
		Direction:   entity.VoteUp,
		Source:      entity.SourceQuota,
		Amount:      1,
	}
	require.NoError(t, voteRepo.Create(ctx, vote))

	nested := &entity.Vote{
		Base:        entity.Base{ID: "vote2"},
		TargetType:  entity.VoteOnVote,
		TargetID:    vote.ID,
		UserID:      testutil.User3.ID,
		CommunityID: testutil.Community1.ID,
		Direction:   entity.VoteUp,
		Source:      entity.SourceQuota,
		Amount:      1,
	}
	require.NoError(t, voteRepo.Create(ctx, nested))

	info, err = resolver.ResolveVoteTarget(ctx, entity.VoteOnVote, nested.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User3.ID, info.BeneficiaryID)
	require.Equal(t, testutil.Publication1.ID, info.PublicationID)
}

func Test_BeneficiaryResolver_ResolveCommentCommunity(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	resolver := newTestResolver()
	commentRepo := repository.NewCommentRepository()

	root := &entity.Comment{
		Base:       entity.Base{ID: "comment1"},
		AuthorID:   testutil.User2.ID,
		TargetType: entity.CommentOnPublication,
		TargetID:   testutil.Publication1.ID,
		Content:    "first",
	}
	require.NoError(t, commentRepo.Create(ctx, root))

	reply := &entity.Comment{
		Base:       entity.Base{ID: "comment2"},
		AuthorID:   testutil.User3.ID,
		TargetType: entity.CommentOnComment,
		TargetID:   root.ID,
		Content:    "second",
	}
	require.NoError(t, commentRepo.Create(ctx, reply))

	publicationID, communityID, err := resolver.ResolveCommentCommunity(ctx, reply)
	require.NoError(t, err)
	require.Equal(t, testutil.Publication1.ID, publicationID)
	require.Equal(t, testutil.Community1.ID, communityID)

	// A comment whose chain points at a missing target surfaces an error
	// instead of a default community.
	orphan := &entity.Comment{
		Base:       entity.Base{ID: "comment3"},
		AuthorID:   testutil.User3.ID,
		TargetType: entity.CommentOnComment,
		TargetID:   "missing",
		Content:    "third",
	}
	require.NoError(t, commentRepo.Create(ctx, orphan))

	_, _, err = resolver.ResolveCommentCommunity(ctx, orphan)
	require.Error(t, err)
}
