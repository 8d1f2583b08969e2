package entity

import (
	"database/sql"

	"github.com/meriter/backend/pkg/enum"
)

type PostType string

var (
	PostText    = enum.New(PostType("text"))
	PostProject = enum.New(PostType("project"))
)

type Publication struct {
	Base
	CommunityID string    `gorm:"index"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	// BeneficiaryID overrides the author as the identity entitled to
	// withdraw value accrued on this publication.
	BeneficiaryID   sql.NullString
	BeneficiaryUser User `gorm:"foreignKey:BeneficiaryID"`

	Type    PostType
	Content []byte `gorm:"type:longtext"`

	// Denormalized counters, maintained in the same transaction as every
	// vote. Score additionally includes nested vote-on-vote amounts.
	Upvotes      uint64
	Downvotes    uint64
	Score        int64
	CommentCount uint64
}

// EffectiveBeneficiary returns the identity entitled to withdraw value
// accrued on this publication.
func (p *Publication) EffectiveBeneficiary() string {
	if p.BeneficiaryID.Valid {
		return p.BeneficiaryID.String
	}

	return p.AuthorID
}
