package model

type GetQuotaRequest struct {
	CommunityID string `form:"community_id" json:"community_id"`
	UserID      string `form:"user_id" json:"user_id"`
}

type GetQuotaResponse struct {
	DailyQuota uint64 `json:"daily_quota"`
	Used       uint64 `json:"used"`
	Remaining  uint64 `json:"remaining"`
}

type ResetQuotaRequest struct {
	CommunityID string `json:"community_id"`
}

type ResetQuotaResponse struct{}
