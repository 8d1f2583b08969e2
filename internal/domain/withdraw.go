package domain

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/meriter/backend/internal/common"
	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/internal/model"
	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/enum"
	"github.com/meriter/backend/pkg/errorx"
	"github.com/meriter/backend/pkg/pubsub"
	"github.com/meriter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WithdrawDomain interface {
	Withdraw(ctx context.Context, req *model.WithdrawRequest) (*model.WithdrawResponse, error)
}

type withdrawDomain struct {
	communityRepo   repository.CommunityRepository
	voteRepo        repository.VoteRepository
	transactionRepo repository.TransactionRepository
	resolver        *common.BeneficiaryResolver
	ledger          *common.Ledger
	publisher       pubsub.Publisher
}

func NewWithdrawDomain(
	communityRepo repository.CommunityRepository,
	voteRepo repository.VoteRepository,
	transactionRepo repository.TransactionRepository,
	resolver *common.BeneficiaryResolver,
	ledger *common.Ledger,
	publisher pubsub.Publisher,
) *withdrawDomain {
	return &withdrawDomain{
		communityRepo:   communityRepo,
		voteRepo:        voteRepo,
		transactionRepo: transactionRepo,
		resolver:        resolver,
		ledger:          ledger,
		publisher:       publisher,
	}
}

func (d *withdrawDomain) Withdraw(
	ctx context.Context, req *model.WithdrawRequest,
) (*model.WithdrawResponse, error) {
	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a non-positive amount")
	}

	targetType, err := enum.ToEnum[entity.VoteTargetType](req.TargetType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid target type %s", req.TargetType)
	}

	amount := uint64(req.Amount)
	userID := xcontext.RequestUserID(ctx)

	info, err := d.resolver.ResolveVoteTarget(ctx, targetType, req.TargetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, common.ErrBrokenChain) {
			return nil, errorx.New(errorx.NotFound, "Not found withdrawal target")
		}

		xcontext.Logger(ctx).Errorf("Cannot resolve withdrawal target: %v", err)
		return nil, errorx.Unknown
	}

	if userID != info.BeneficiaryID {
		return nil, errorx.New(errorx.PermissionDenied,
			"Only the beneficiary can withdraw from this target")
	}

	community, err := d.communityRepo.GetByID(ctx, info.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	available, err := d.availableValue(ctx, targetType, req.TargetID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compute withdrawable value: %v", err)
		return nil, errorx.Unknown
	}

	if amount > available {
		return nil, errorx.New(errorx.InsufficientBalance,
			"Only %d can be withdrawn from this target", available)
	}

	creditCommunity, referenceType, err := d.creditDestination(ctx, community, targetType)
	if err != nil {
		return nil, err
	}

	if creditCommunity == nil {
		// The destination community does not exist yet, so the conversion is
		// skipped. Nothing is written, which keeps the value withdrawable
		// once the community is created.
		xcontext.Logger(ctx).Errorf(
			"No %s community to receive the withdrawal from %s, skipping the credit",
			entity.CommunityFutureVision, community.ID)

		d.publishWithdrawal(ctx, info, amount, "")

		return &model.WithdrawResponse{Amount: amount}, nil
	}

	_, err = d.ledger.Credit(ctx, userID, creditCommunity.ID, amount,
		entity.SourceWallet, referenceType, req.TargetID, "Withdrawal")
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit wallet: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.publishWithdrawal(ctx, info, amount, creditCommunity.ID)

	return &model.WithdrawResponse{
		Amount:              amount,
		CreditedCommunityID: creditCommunity.ID,
	}, nil
}

// availableValue is the net positive vote value of the target minus what was
// already withdrawn from it.
func (d *withdrawDomain) availableValue(
	ctx context.Context, targetType entity.VoteTargetType, targetID string,
) (uint64, error) {
	sums, err := d.voteRepo.SumByTarget(ctx, targetType, targetID)
	if err != nil {
		return 0, err
	}

	net := int64(0)
	for _, sum := range sums {
		if sum.Direction == entity.VoteUp {
			net += int64(sum.Total)
		} else {
			net -= int64(sum.Total)
		}
	}

	if net <= 0 {
		return 0, nil
	}

	withdrawn, err := d.transactionRepo.SumByReference(ctx, []entity.TransactionReference{
		entity.ReferencePublicationWithdrawal,
		entity.ReferenceVoteWithdrawal,
		entity.ReferenceMeritTransfer,
	}, targetID)
	if err != nil {
		return 0, err
	}

	if withdrawn >= uint64(net) {
		return 0, nil
	}

	return uint64(net) - withdrawn, nil
}

// creditDestination picks the community whose wallet receives the withdrawal.
// Marathon of Good value converts into Future Vision merit; everywhere else
// the credit stays in the source community. A nil community means the
// destination is missing.
func (d *withdrawDomain) creditDestination(
	ctx context.Context, source *entity.Community, targetType entity.VoteTargetType,
) (*entity.Community, entity.TransactionReference, error) {
	referenceType := entity.ReferencePublicationWithdrawal
	if targetType == entity.VoteOnVote {
		referenceType = entity.ReferenceVoteWithdrawal
	}

	if source.Type != entity.CommunityMarathonOfGood {
		return source, referenceType, nil
	}

	futureVision, err := d.communityRepo.GetByType(ctx, entity.CommunityFutureVision)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, referenceType, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get future-vision community: %v", err)
		return nil, referenceType, errorx.Unknown
	}

	return futureVision, entity.ReferenceMeritTransfer, nil
}

func (d *withdrawDomain) publishWithdrawal(
	ctx context.Context, info *common.TargetInfo, amount uint64, creditedCommunityID string,
) {
	event := model.WithdrawalEvent{
		TargetType:          string(info.TargetType),
		TargetID:            info.TargetID,
		BeneficiaryID:       info.BeneficiaryID,
		Amount:              amount,
		CreditedCommunityID: creditedCommunityID,
	}

	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal withdrawal event: %v", err)
		return
	}

	err = d.publisher.Publish(ctx, model.WithdrawalTopic, &pubsub.Pack{
		Key: []byte(info.TargetID),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish withdrawal event: %v", err)
	}
}
