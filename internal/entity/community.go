package entity

import (
	"database/sql"

	"github.com/meriter/backend/pkg/enum"
)

type CommunityType string

var (
	CommunityCustom         = enum.New(CommunityType("custom"))
	CommunityTeam           = enum.New(CommunityType("team"))
	CommunityMarathonOfGood = enum.New(CommunityType("marathon-of-good"))
	CommunityFutureVision   = enum.New(CommunityType("future-vision"))
)

type Community struct {
	Base
	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
	Handle        string `gorm:"unique"`
	DisplayName   string
	Type          CommunityType

	// DailyEmission is the amount of quota every follower receives per quota
	// window. Future Vision communities keep this at zero by policy.
	DailyEmission  uint64
	CurrencyName   string
	CurrencySymbol string

	CanVoteForOwnPosts bool
	ViewerQuotaOnly    bool
	TeamWalletOnly     bool
	AllowProjectVoting bool

	// LastQuotaResetAt marks the start of the current quota window. A null
	// value means the window starts at the beginning of the current day.
	LastQuotaResetAt sql.NullTime
}
