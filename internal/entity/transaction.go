package entity

import "github.com/meriter/backend/pkg/enum"

type TransactionType string

var (
	TransactionCredit = enum.New(TransactionType("credit"))
	TransactionDebit  = enum.New(TransactionType("debit"))
)

type TransactionReference string

var (
	ReferencePublicationVote       = enum.New(TransactionReference("publication_vote"))
	ReferenceVoteVote              = enum.New(TransactionReference("vote_vote"))
	ReferencePublicationWithdrawal = enum.New(TransactionReference("publication_withdrawal"))
	ReferenceVoteWithdrawal        = enum.New(TransactionReference("vote_withdrawal"))
	ReferenceMeritTransfer         = enum.New(TransactionReference("merit_transfer_gdm_to_fv"))
)

// Transaction is the audit trail of a wallet. Transactions are the sole
// source of truth for the balance.
type Transaction struct {
	Base
	WalletID string `gorm:"index"`
	Wallet   Wallet `gorm:"foreignKey:WalletID"`

	Type   TransactionType
	Amount uint64
	Source VoteSource

	ReferenceType TransactionReference `gorm:"index:idx_transactions_reference"`
	ReferenceID   string               `gorm:"index:idx_transactions_reference"`

	Description string
}
