package entity

import "github.com/meriter/backend/pkg/enum"

type CommentTargetType string

var (
	CommentOnPublication = enum.New(CommentTargetType("publication"))
	CommentOnComment     = enum.New(CommentTargetType("comment"))
	CommentOnVote        = enum.New(CommentTargetType("vote"))
)

// Comment is a reply attached to a publication, another comment, or a vote.
// Comments carry no beneficiary; their effective beneficiary is always the
// author. Community attribution requires walking the target chain up to the
// root publication.
type Comment struct {
	Base
	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	TargetType CommentTargetType `gorm:"index:idx_comments_target"`
	TargetID   string            `gorm:"index:idx_comments_target"`

	Content string `gorm:"type:text"`
}
