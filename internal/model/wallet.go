package model

type GetWalletBalanceRequest struct {
	CommunityID string `form:"community_id" json:"community_id"`
}

type GetWalletBalanceResponse struct {
	Balance        uint64 `json:"balance"`
	CurrencyName   string `json:"currency_name"`
	CurrencySymbol string `json:"currency_symbol"`
}

type GetMyWalletTransactionsRequest struct {
	CommunityID string `form:"community_id" json:"community_id"`
	Offset      int    `form:"offset" json:"offset"`
	Limit       int    `form:"limit" json:"limit"`
}

type GetMyWalletTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type Transaction struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Amount        uint64 `json:"amount"`
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
	Description   string `json:"description"`
	CreatedAt     string `json:"created_at"`
}
