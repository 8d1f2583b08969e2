package model

type WithdrawRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Amount     int64  `json:"amount"`
}

type WithdrawResponse struct {
	Amount              uint64 `json:"amount"`
	CreditedCommunityID string `json:"credited_community_id"`
}
