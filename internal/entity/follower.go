package entity

import (
	"time"

	"github.com/meriter/backend/pkg/enum"
	"gorm.io/gorm"
)

type FollowerRole string

var (
	RoleMember    = enum.New(FollowerRole("member"))
	RoleModerator = enum.New(FollowerRole("moderator"))
	RoleViewer    = enum.New(FollowerRole("viewer"))
	RoleLead      = enum.New(FollowerRole("lead"))
)

type Follower struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CommunityID string    `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	Role FollowerRole

	// QuotaUsed tracks the quota spent in the current window. It is mutated
	// only through guarded updates so concurrent spends linearize at the
	// database, the same way wallet balances do.
	QuotaUsed uint64
}
