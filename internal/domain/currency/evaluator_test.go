package currency

import (
	"testing"

	"github.com/meriter/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_MarathonOfGood(t *testing.T) {
	verdict := Evaluate(Input{
		CommunityType:      entity.CommunityMarathonOfGood,
		PostType:           entity.PostText,
		Direction:          entity.VoteUp,
		VoterRole:          entity.RoleMember,
		CanVoteForOwnPosts: true,
		AllowProjectVoting: true,
	})

	require.True(t, verdict.AllowQuota)
	require.False(t, verdict.AllowWallet)
	require.Equal(t, entity.SourceQuota, verdict.Required)
	require.Equal(t, "Marathon of Good only allows quota voting", verdict.WalletReason)
}

func TestEvaluate_MarathonOfGoodDownvote(t *testing.T) {
	// Quota is upvote-only and Marathon of Good forbids wallet, so a
	// downvote there has no legal source at all.
	verdict := Evaluate(Input{
		CommunityType:      entity.CommunityMarathonOfGood,
		PostType:           entity.PostText,
		Direction:          entity.VoteDown,
		VoterRole:          entity.RoleMember,
		CanVoteForOwnPosts: true,
		AllowProjectVoting: true,
	})

	require.False(t, verdict.AllowQuota)
	require.False(t, verdict.AllowWallet)
	require.NotEmpty(t, verdict.Reason)
}

func TestEvaluate_FutureVision(t *testing.T) {
	verdict := Evaluate(Input{
		CommunityType:      entity.CommunityFutureVision,
		PostType:           entity.PostText,
		Direction:          entity.VoteUp,
		VoterRole:          entity.RoleMember,
		CanVoteForOwnPosts: true,
		AllowProjectVoting: true,
	})

	require.False(t, verdict.AllowQuota)
	require.True(t, verdict.AllowWallet)
	require.Equal(t, entity.SourceWallet, verdict.Required)
	require.Equal(t, "Future Vision only allows wallet voting", verdict.QuotaReason)
}

func TestEvaluate_CustomCommunity(t *testing.T) {
	verdict := Evaluate(Input{
		CommunityType:      entity.CommunityCustom,
		PostType:           entity.PostText,
		Direction:          entity.VoteUp,
		VoterRole:          entity.RoleMember,
		CanVoteForOwnPosts: true,
		AllowProjectVoting: true,
	})

	require.True(t, verdict.AllowQuota)
	require.True(t, verdict.AllowWallet)
	require.Empty(t, verdict.Required)
	require.Empty(t, verdict.Reason)
}

func TestEvaluate_DownvoteNeverSpendsQuota(t *testing.T) {
	verdict := Evaluate(Input{
		CommunityType:      entity.CommunityCustom,
		PostType:           entity.PostText,
		Direction:          entity.VoteDown,
		VoterRole:          entity.RoleMember,
		CanVoteForOwnPosts: true,
		AllowProjectVoting: true,
	})

	require.False(t, verdict.AllowQuota)
	require.True(t, verdict.AllowWallet)
	require.Equal(t, entity.SourceWallet, verdict.Required)
	require.Equal(t, "Quota cannot be spent on downvotes", verdict.QuotaReason)
}

func TestEvaluate_SelfVote(t *testing.T) {
	verdict := Evaluate(Input{
		CommunityType:      entity.CommunityCustom,
		PostType:           entity.PostText,
		Direction:          entity.VoteUp,
		VoterRole:          entity.RoleMember,
		VoterIsBeneficiary: true,
		CanVoteForOwnPosts: false,
		AllowProjectVoting: true,
	})

	require.False(t, verdict.AllowQuota)
	require.False(t, verdict.AllowWallet)
	require.Equal(t, "Voting for your own post is not allowed in this community", verdict.Reason)

	allowed := Evaluate(Input{
		CommunityType:      entity.CommunityCustom,
		PostType:           entity.PostText,
		Direction:          entity.VoteUp,
		VoterRole:          entity.RoleMember,
		VoterIsBeneficiary: true,
		CanVoteForOwnPosts: true,
		AllowProjectVoting: true,
	})
	require.True(t, allowed.AllowQuota)
	require.True(t, allowed.AllowWallet)
}

func TestEvaluate_ProjectPost(t *testing.T) {
	verdict := Evaluate(Input{
		CommunityType:      entity.CommunityCustom,
		PostType:           entity.PostProject,
		Direction:          entity.VoteUp,
		VoterRole:          entity.RoleMember,
		CanVoteForOwnPosts: true,
		AllowProjectVoting: false,
	})

	require.False(t, verdict.AllowQuota)
	require.False(t, verdict.AllowWallet)
	require.Equal(t, "Project posts are not open for voting", verdict.Reason)
}

func TestEvaluate_ViewerQuotaOnly(t *testing.T) {
	verdict := Evaluate(Input{
		CommunityType:      entity.CommunityCustom,
		PostType:           entity.PostText,
		Direction:          entity.VoteUp,
		VoterRole:          entity.RoleViewer,
		CanVoteForOwnPosts: true,
		ViewerQuotaOnly:    true,
		AllowProjectVoting: true,
	})

	require.True(t, verdict.AllowQuota)
	require.False(t, verdict.AllowWallet)
	require.Equal(t, entity.SourceQuota, verdict.Required)
}

func TestEvaluate_TeamWalletOnly(t *testing.T) {
	verdict := Evaluate(Input{
		CommunityType:      entity.CommunityTeam,
		PostType:           entity.PostText,
		Direction:          entity.VoteUp,
		VoterRole:          entity.RoleMember,
		SharedTeam:         true,
		CanVoteForOwnPosts: true,
		TeamWalletOnly:     true,
		AllowProjectVoting: true,
	})

	require.False(t, verdict.AllowQuota)
	require.True(t, verdict.AllowWallet)
	require.Equal(t, entity.SourceWallet, verdict.Required)
	require.Equal(t, "Votes for teammates must spend wallet merit", verdict.QuotaReason)
}

func TestEvaluate_ViewerDownvoteQuotaOnlyRejected(t *testing.T) {
	// Viewer restricted to quota, but downvotes cannot use quota: nothing
	// remains, so the verdict must be an outright rejection.
	verdict := Evaluate(Input{
		CommunityType:      entity.CommunityCustom,
		PostType:           entity.PostText,
		Direction:          entity.VoteDown,
		VoterRole:          entity.RoleViewer,
		CanVoteForOwnPosts: true,
		ViewerQuotaOnly:    true,
		AllowProjectVoting: true,
	})

	require.False(t, verdict.AllowQuota)
	require.False(t, verdict.AllowWallet)
	require.NotEmpty(t, verdict.Reason)
}
