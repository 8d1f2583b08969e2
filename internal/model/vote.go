package model

type CreateVoteRequest struct {
	TargetType   string `json:"target_type"`
	TargetID     string `json:"target_id"`
	CommunityID  string `json:"community_id"`
	AmountQuota  int64  `json:"amount_quota"`
	AmountWallet int64  `json:"amount_wallet"`
	Direction    string `json:"direction"`
	Comment      string `json:"comment"`
}

type CreateVoteResponse struct {
	VoteIDs     []string `json:"vote_ids"`
	TotalAmount uint64   `json:"total_amount"`
}

type Vote struct {
	ID         string `json:"id"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	UserID     string `json:"user_id"`
	Direction  string `json:"direction"`
	Source     string `json:"source"`
	Amount     uint64 `json:"amount"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"created_at"`
}
