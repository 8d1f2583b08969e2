package entity

// Wallet holds the persistent merit balance of a user in one community. It is
// created lazily on the first credit or debit. Balance is a cached value that
// must always equal the sum of the wallet's signed transaction amounts; it is
// never assigned directly, only delta-applied together with a Transaction
// insert.
type Wallet struct {
	Base
	UserID string `gorm:"uniqueIndex:idx_wallets_user_community"`
	User   User   `gorm:"foreignKey:UserID"`

	CommunityID string    `gorm:"uniqueIndex:idx_wallets_user_community"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	Balance        uint64
	CurrencyName   string
	CurrencySymbol string
}
