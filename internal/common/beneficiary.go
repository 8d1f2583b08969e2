package common

import (
	"context"
	"errors"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/internal/repository"
	"gorm.io/gorm"
)

// maxChainDepth bounds target-chain walks so a corrupted reference cycle
// cannot hang a request.
const maxChainDepth = 64

var ErrBrokenChain = errors.New("target chain does not reach a publication")

// TargetInfo describes a vote target after resolution: the community the
// value moves in and the identity entitled to withdraw it.
type TargetInfo struct {
	TargetType    entity.VoteTargetType
	TargetID      string
	CommunityID   string
	BeneficiaryID string
	PublicationID string
}

// BeneficiaryResolver resolves the effective beneficiary and community of
// vote targets. Domains depend on this narrow helper instead of each other,
// which keeps publication, comment and vote lookups in one place.
type BeneficiaryResolver struct {
	publicationRepo repository.PublicationRepository
	commentRepo     repository.CommentRepository
	voteRepo        repository.VoteRepository
}

func NewBeneficiaryResolver(
	publicationRepo repository.PublicationRepository,
	commentRepo repository.CommentRepository,
	voteRepo repository.VoteRepository,
) *BeneficiaryResolver {
	return &BeneficiaryResolver{
		publicationRepo: publicationRepo,
		commentRepo:     commentRepo,
		voteRepo:        voteRepo,
	}
}

// ResolveVoteTarget resolves a createVote or withdraw target. For a
// publication the beneficiary is its explicit beneficiary or author; for a
// vote it is the voter who cast the underlying vote.
func (r *BeneficiaryResolver) ResolveVoteTarget(
	ctx context.Context, targetType entity.VoteTargetType, targetID string,
) (*TargetInfo, error) {
	switch targetType {
	case entity.VoteOnPublication:
		publication, err := r.publicationRepo.GetByID(ctx, targetID)
		if err != nil {
			return nil, err
		}

		return &TargetInfo{
			TargetType:    targetType,
			TargetID:      targetID,
			CommunityID:   publication.CommunityID,
			BeneficiaryID: publication.EffectiveBeneficiary(),
			PublicationID: publication.ID,
		}, nil

	case entity.VoteOnVote:
		vote, err := r.voteRepo.GetByID(ctx, targetID)
		if err != nil {
			return nil, err
		}

		publicationID, err := r.rootPublicationOfVote(ctx, vote)
		if err != nil {
			return nil, err
		}

		return &TargetInfo{
			TargetType:    targetType,
			TargetID:      targetID,
			CommunityID:   vote.CommunityID,
			BeneficiaryID: vote.UserID,
			PublicationID: publicationID,
		}, nil
	}

	return nil, gorm.ErrRecordNotFound
}

// ResolveCommentCommunity walks a comment's target chain up to its root
// publication and returns that publication's id and community. A missing
// intermediate link surfaces as a not-found error, never a silent default.
func (r *BeneficiaryResolver) ResolveCommentCommunity(
	ctx context.Context, comment *entity.Comment,
) (publicationID, communityID string, err error) {
	targetType, targetID := comment.TargetType, comment.TargetID

	for depth := 0; depth < maxChainDepth; depth++ {
		switch targetType {
		case entity.CommentOnPublication:
			publication, err := r.publicationRepo.GetByID(ctx, targetID)
			if err != nil {
				return "", "", err
			}

			return publication.ID, publication.CommunityID, nil

		case entity.CommentOnComment:
			parent, err := r.commentRepo.GetByID(ctx, targetID)
			if err != nil {
				return "", "", err
			}

			targetType, targetID = parent.TargetType, parent.TargetID

		case entity.CommentOnVote:
			vote, err := r.voteRepo.GetByID(ctx, targetID)
			if err != nil {
				return "", "", err
			}

			publicationID, err := r.rootPublicationOfVote(ctx, vote)
			if err != nil {
				return "", "", err
			}

			return publicationID, vote.CommunityID, nil

		default:
			return "", "", gorm.ErrRecordNotFound
		}
	}

	return "", "", ErrBrokenChain
}

// rootPublicationOfVote follows a vote-on-vote chain down to the publication
// it ultimately hangs off.
func (r *BeneficiaryResolver) rootPublicationOfVote(
	ctx context.Context, vote *entity.Vote,
) (string, error) {
	current := vote
	for depth := 0; depth < maxChainDepth; depth++ {
		if current.TargetType == entity.VoteOnPublication {
			return current.TargetID, nil
		}

		parent, err := r.voteRepo.GetByID(ctx, current.TargetID)
		if err != nil {
			return "", err
		}

		current = parent
	}

	return "", ErrBrokenChain
}
