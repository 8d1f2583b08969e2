package model

const (
	VoteCastTopic   = "vote-cast"
	WithdrawalTopic = "withdrawal"
)

type VoteCastEvent struct {
	TargetType  string `json:"target_type"`
	TargetID    string `json:"target_id"`
	VoterID     string `json:"voter_id"`
	CommunityID string `json:"community_id"`
	Direction   string `json:"direction"`
	TotalAmount uint64 `json:"total_amount"`
}

type WithdrawalEvent struct {
	TargetType          string `json:"target_type"`
	TargetID            string `json:"target_id"`
	BeneficiaryID       string `json:"beneficiary_id"`
	Amount              uint64 `json:"amount"`
	CreditedCommunityID string `json:"credited_community_id"`
}
