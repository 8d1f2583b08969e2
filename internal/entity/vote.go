package entity

import "github.com/meriter/backend/pkg/enum"

type VoteTargetType string

var (
	VoteOnPublication = enum.New(VoteTargetType("publication"))
	VoteOnVote        = enum.New(VoteTargetType("vote"))
)

type VoteDirection string

var (
	VoteUp   = enum.New(VoteDirection("up"))
	VoteDown = enum.New(VoteDirection("down"))
)

type VoteSource string

var (
	SourceQuota  = enum.New(VoteSource("quota"))
	SourceWallet = enum.New(VoteSource("wallet"))
)

// Vote is an append-only record of spent value. A user action spending both
// quota and wallet produces two rows sharing target, user and direction, one
// per source; only one of the pair carries the comment text.
type Vote struct {
	Base
	TargetType VoteTargetType `gorm:"index:idx_votes_target"`
	TargetID   string         `gorm:"index:idx_votes_target"`

	UserID string `gorm:"index:idx_votes_user_community"`
	User   User   `gorm:"foreignKey:UserID"`

	CommunityID string    `gorm:"index:idx_votes_user_community"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	Direction VoteDirection
	Source    VoteSource
	Amount    uint64

	Comment string `gorm:"type:text"`
}
