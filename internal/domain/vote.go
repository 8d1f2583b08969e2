package domain

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/meriter/backend/internal/common"
	"github.com/meriter/backend/internal/domain/currency"
	"github.com/meriter/backend/internal/domain/statistic"
	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/internal/model"
	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/enum"
	"github.com/meriter/backend/pkg/errorx"
	"github.com/meriter/backend/pkg/pubsub"
	"github.com/meriter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type VoteDomain interface {
	Create(ctx context.Context, req *model.CreateVoteRequest) (*model.CreateVoteResponse, error)
}

type voteDomain struct {
	communityRepo   repository.CommunityRepository
	voteRepo        repository.VoteRepository
	publicationRepo repository.PublicationRepository
	commentRepo     repository.CommentRepository
	followerRepo    repository.FollowerRepository
	resolver        *common.BeneficiaryResolver
	ledger          *common.Ledger
	scoreboard      statistic.Scoreboard
	publisher       pubsub.Publisher
}

func NewVoteDomain(
	communityRepo repository.CommunityRepository,
	voteRepo repository.VoteRepository,
	publicationRepo repository.PublicationRepository,
	commentRepo repository.CommentRepository,
	followerRepo repository.FollowerRepository,
	resolver *common.BeneficiaryResolver,
	ledger *common.Ledger,
	scoreboard statistic.Scoreboard,
	publisher pubsub.Publisher,
) *voteDomain {
	return &voteDomain{
		communityRepo:   communityRepo,
		voteRepo:        voteRepo,
		publicationRepo: publicationRepo,
		commentRepo:     commentRepo,
		followerRepo:    followerRepo,
		resolver:        resolver,
		ledger:          ledger,
		scoreboard:      scoreboard,
		publisher:       publisher,
	}
}

func (d *voteDomain) Create(
	ctx context.Context, req *model.CreateVoteRequest,
) (*model.CreateVoteResponse, error) {
	if req.AmountQuota < 0 || req.AmountWallet < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative amounts")
	}

	if req.AmountQuota == 0 && req.AmountWallet == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a vote with no amount")
	}

	targetType, err := enum.ToEnum[entity.VoteTargetType](req.TargetType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid target type %s", req.TargetType)
	}

	direction, err := enum.ToEnum[entity.VoteDirection](req.Direction)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid direction %s", req.Direction)
	}

	amountQuota := uint64(req.AmountQuota)
	amountWallet := uint64(req.AmountWallet)
	voterID := xcontext.RequestUserID(ctx)

	info, err := d.resolver.ResolveVoteTarget(ctx, targetType, req.TargetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, common.ErrBrokenChain) {
			return nil, errorx.New(errorx.NotFound, "Not found vote target")
		}

		xcontext.Logger(ctx).Errorf("Cannot resolve vote target: %v", err)
		return nil, errorx.Unknown
	}

	if req.CommunityID != "" && req.CommunityID != info.CommunityID {
		return nil, errorx.New(errorx.BadRequest, "Target does not belong to the given community")
	}

	community, err := d.communityRepo.GetByID(ctx, info.CommunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	follower, err := d.followerRepo.Get(ctx, voterID, community.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied, "You must follow the community before voting")
		}

		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return nil, errorx.Unknown
	}

	verdict, err := d.evaluatePolicy(ctx, community, info, follower, direction)
	if err != nil {
		return nil, err
	}

	if amountQuota > 0 && !verdict.AllowQuota {
		return nil, errorx.New(errorx.PolicyRejected, verdict.QuotaReason)
	}

	if amountWallet > 0 && !verdict.AllowWallet {
		return nil, errorx.New(errorx.PolicyRejected, verdict.WalletReason)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	votes := []*entity.Vote{}
	if amountQuota > 0 {
		vote, err := d.spendQuota(ctx, community, info, voterID, direction, amountQuota, req.Comment)
		if err != nil {
			return nil, err
		}

		votes = append(votes, vote)
	}

	if amountWallet > 0 {
		// The comment text attaches to exactly one record of a split vote.
		comment := req.Comment
		if amountQuota > 0 {
			comment = ""
		}

		vote, err := d.spendWallet(ctx, community, info, voterID, direction, amountWallet, comment)
		if err != nil {
			return nil, err
		}

		votes = append(votes, vote)
	}

	total := amountQuota + amountWallet
	if err := d.applyMetrics(ctx, info, direction, total); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update target metrics: %v", err)
		return nil, errorx.Unknown
	}

	if req.Comment != "" {
		if err := d.attachComment(ctx, info, voterID, req.Comment); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot attach comment: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.afterCommit(ctx, info, voterID, direction, total)

	voteIDs := []string{}
	for _, vote := range votes {
		voteIDs = append(voteIDs, vote.ID)
	}

	return &model.CreateVoteResponse{VoteIDs: voteIDs, TotalAmount: total}, nil
}

func (d *voteDomain) evaluatePolicy(
	ctx context.Context,
	community *entity.Community,
	info *common.TargetInfo,
	follower *entity.Follower,
	direction entity.VoteDirection,
) (*currency.Verdict, error) {
	voterID := xcontext.RequestUserID(ctx)

	sharedTeam := false
	if community.TeamWalletOnly && voterID != info.BeneficiaryID {
		shared, err := d.followerRepo.SharedCommunityIDs(
			ctx, voterID, info.BeneficiaryID, entity.CommunityTeam)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get shared team communities: %v", err)
			return nil, errorx.Unknown
		}

		sharedTeam = len(shared) > 0
	}

	postType := entity.PostText
	if info.TargetType == entity.VoteOnPublication {
		publication, err := d.publicationRepo.GetByID(ctx, info.TargetID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get publication: %v", err)
			return nil, errorx.Unknown
		}

		postType = publication.Type
	}

	verdict := currency.Evaluate(currency.Input{
		CommunityType:      community.Type,
		PostType:           postType,
		Direction:          direction,
		VoterRole:          follower.Role,
		VoterIsBeneficiary: voterID == info.BeneficiaryID,
		SharedTeam:         sharedTeam,
		CanVoteForOwnPosts: community.CanVoteForOwnPosts,
		ViewerQuotaOnly:    community.ViewerQuotaOnly,
		TeamWalletOnly:     community.TeamWalletOnly,
		AllowProjectVoting: community.AllowProjectVoting,
	})

	if !verdict.AllowQuota && !verdict.AllowWallet {
		return nil, errorx.New(errorx.PolicyRejected, verdict.Reason)
	}

	return &verdict, nil
}

func (d *voteDomain) spendQuota(
	ctx context.Context,
	community *entity.Community,
	info *common.TargetInfo,
	voterID string,
	direction entity.VoteDirection,
	amount uint64,
	comment string,
) (*entity.Vote, error) {
	// The guarded counter update linearizes concurrent spends by the same
	// follower; the vote row below is the audit record of the spend.
	err := d.followerRepo.SpendQuota(ctx, voterID, community.ID, amount, community.DailyEmission)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot spend quota: %v", err)
			return nil, errorx.Unknown
		}

		// The follower row exists, so the guard rejected the amount.
		follower, err := d.followerRepo.Get(ctx, voterID, community.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
			return nil, errorx.Unknown
		}

		remaining := uint64(0)
		if community.DailyEmission > follower.QuotaUsed {
			remaining = community.DailyEmission - follower.QuotaUsed
		}

		return nil, errorx.New(errorx.InsufficientQuota,
			"Not enough quota, only %d remaining today", remaining)
	}

	vote := &entity.Vote{
		Base:        entity.Base{ID: uuid.NewString()},
		TargetType:  info.TargetType,
		TargetID:    info.TargetID,
		UserID:      voterID,
		CommunityID: community.ID,
		Direction:   direction,
		Source:      entity.SourceQuota,
		Amount:      amount,
		Comment:     comment,
	}
	if err := d.voteRepo.Create(ctx, vote); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create quota vote: %v", err)
		return nil, errorx.Unknown
	}

	return vote, nil
}

func (d *voteDomain) spendWallet(
	ctx context.Context,
	community *entity.Community,
	info *common.TargetInfo,
	voterID string,
	direction entity.VoteDirection,
	amount uint64,
	comment string,
) (*entity.Vote, error) {
	vote := &entity.Vote{
		Base:        entity.Base{ID: uuid.NewString()},
		TargetType:  info.TargetType,
		TargetID:    info.TargetID,
		UserID:      voterID,
		CommunityID: community.ID,
		Direction:   direction,
		Source:      entity.SourceWallet,
		Amount:      amount,
		Comment:     comment,
	}
	if err := d.voteRepo.Create(ctx, vote); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create wallet vote: %v", err)
		return nil, errorx.Unknown
	}

	referenceType := entity.ReferencePublicationVote
	if info.TargetType == entity.VoteOnVote {
		referenceType = entity.ReferenceVoteVote
	}

	_, err := d.ledger.Debit(ctx, voterID, community.ID, amount,
		entity.SourceWallet, referenceType, vote.ID, "Vote spend")
	if err != nil {
		if errors.Is(err, common.ErrInsufficientBalance) {
			return nil, errorx.New(errorx.InsufficientBalance, "Not enough wallet balance")
		}

		xcontext.Logger(ctx).Errorf("Cannot debit wallet: %v", err)
		return nil, errorx.Unknown
	}

	return vote, nil
}

func (d *voteDomain) applyMetrics(
	ctx context.Context,
	info *common.TargetInfo,
	direction entity.VoteDirection,
	total uint64,
) error {
	scoreDelta := int64(total)
	if direction == entity.VoteDown {
		scoreDelta = -scoreDelta
	}

	// Direct publication votes move the vote counters; deeper votes in the
	// vote-on-vote tree only move the root publication's running score.
	if info.TargetType == entity.VoteOnPublication {
		up, down := uint64(0), uint64(0)
		if direction == entity.VoteUp {
			up = total
		} else {
			down = total
		}

		return d.publicationRepo.ApplyVoteMetrics(ctx, info.PublicationID, up, down, scoreDelta)
	}

	return d.publicationRepo.ApplyScoreDelta(ctx, info.PublicationID, scoreDelta)
}

func (d *voteDomain) attachComment(
	ctx context.Context, info *common.TargetInfo, voterID, content string,
) error {
	commentTarget := entity.CommentOnPublication
	if info.TargetType == entity.VoteOnVote {
		commentTarget = entity.CommentOnVote
	}

	comment := &entity.Comment{
		Base:       entity.Base{ID: uuid.NewString()},
		AuthorID:   voterID,
		TargetType: commentTarget,
		TargetID:   info.TargetID,
		Content:    content,
	}
	if err := d.commentRepo.Create(ctx, comment); err != nil {
		return err
	}

	return d.publicationRepo.IncreaseCommentCount(ctx, info.PublicationID)
}

// afterCommit runs the best-effort side effects of a committed vote. A
// failure here never affects the vote itself.
func (d *voteDomain) afterCommit(
	ctx context.Context,
	info *common.TargetInfo,
	voterID string,
	direction entity.VoteDirection,
	total uint64,
) {
	scoreDelta := int64(total)
	if direction == entity.VoteDown {
		scoreDelta = -scoreDelta
	}

	err := d.scoreboard.ChangeScore(ctx, info.CommunityID, info.PublicationID, scoreDelta)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update scoreboard: %v", err)
	}

	event := model.VoteCastEvent{
		TargetType:  string(info.TargetType),
		TargetID:    info.TargetID,
		VoterID:     voterID,
		CommunityID: info.CommunityID,
		Direction:   string(direction),
		TotalAmount: total,
	}

	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal vote-cast event: %v", err)
		return
	}

	err = d.publisher.Publish(ctx, model.VoteCastTopic, &pubsub.Pack{
		Key: []byte(info.TargetID),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish vote-cast event: %v", err)
	}
}
