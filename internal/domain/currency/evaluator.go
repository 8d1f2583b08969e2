package currency

import "github.com/meriter/backend/internal/entity"

// Input is the full vote context the evaluator decides on. It is assembled
// by the caller; the evaluator itself never touches storage.
type Input struct {
	CommunityType entity.CommunityType
	PostType      entity.PostType
	Direction     entity.VoteDirection
	VoterRole     entity.FollowerRole

	// VoterIsBeneficiary is true when the voter would be voting for their
	// own post.
	VoterIsBeneficiary bool

	// SharedTeam is true when the voter and the beneficiary follow at least
	// one common team community.
	SharedTeam bool

	// Community voting rules, passed as data.
	CanVoteForOwnPosts bool
	ViewerQuotaOnly    bool
	TeamWalletOnly     bool
	AllowProjectVoting bool
}

// Verdict is the policy decision for one vote context. When a source is not
// allowed, the matching reason explains why. A verdict with both sources
// forbidden means the vote is rejected outright; Reason carries the message.
type Verdict struct {
	AllowQuota  bool
	AllowWallet bool

	// Required names the only permitted source, empty when the voter may
	// choose freely.
	Required entity.VoteSource

	QuotaReason  string
	WalletReason string
	Reason       string
}

// Evaluate maps a vote context to the currencies it may spend. Pure function:
// no I/O, no state.
func Evaluate(in Input) Verdict {
	if in.VoterIsBeneficiary && !in.CanVoteForOwnPosts {
		return rejected("Voting for your own post is not allowed in this community")
	}

	if in.PostType == entity.PostProject && !in.AllowProjectVoting {
		return rejected("Project posts are not open for voting")
	}

	rule := RuleOf(in.CommunityType)
	verdict := Verdict{
		AllowQuota:   rule.AllowQuota,
		AllowWallet:  rule.AllowWallet,
		QuotaReason:  rule.QuotaReason,
		WalletReason: rule.WalletReason,
	}

	// Quota is an upvote-only currency.
	if in.Direction == entity.VoteDown && verdict.AllowQuota {
		verdict.AllowQuota = false
		verdict.QuotaReason = "Quota cannot be spent on downvotes"
	}

	if in.VoterRole == entity.RoleViewer && in.ViewerQuotaOnly && verdict.AllowWallet {
		verdict.AllowWallet = false
		verdict.WalletReason = "Viewers can only spend quota in this community"
	}

	if in.SharedTeam && in.TeamWalletOnly && verdict.AllowQuota {
		verdict.AllowQuota = false
		verdict.QuotaReason = "Votes for teammates must spend wallet merit"
	}

	if !verdict.AllowQuota && !verdict.AllowWallet {
		reason := verdict.QuotaReason
		if reason == "" {
			reason = verdict.WalletReason
		}
		return rejected(reason)
	}

	if verdict.AllowQuota && !verdict.AllowWallet {
		verdict.Required = entity.SourceQuota
	}

	if verdict.AllowWallet && !verdict.AllowQuota {
		verdict.Required = entity.SourceWallet
	}

	return verdict
}

func rejected(reason string) Verdict {
	return Verdict{Reason: reason}
}
