package repository

import (
	"context"
	"errors"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WalletRepository interface {
	Create(ctx context.Context, data *entity.Wallet) error
	Get(ctx context.Context, userID, communityID string) (*entity.Wallet, error)
	GetByID(ctx context.Context, id string) (*entity.Wallet, error)
	AddBalance(ctx context.Context, id string, amount uint64) error
	DeductBalance(ctx context.Context, id string, amount uint64) error
}

type walletRepository struct{}

func NewWalletRepository() *walletRepository {
	return &walletRepository{}
}

func (r *walletRepository) Create(ctx context.Context, data *entity.Wallet) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *walletRepository) Get(ctx context.Context, userID, communityID string) (*entity.Wallet, error) {
	var result entity.Wallet
	err := xcontext.DB(ctx).Where("user_id=? AND community_id=?", userID, communityID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *walletRepository) GetByID(ctx context.Context, id string) (*entity.Wallet, error) {
	var result entity.Wallet
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *walletRepository) AddBalance(ctx context.Context, id string, amount uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Wallet{}).
		Where("id=?", id).
		Update("balance", gorm.Expr("balance+?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeductBalance applies a guarded debit. The balance predicate makes
// concurrent debits against one wallet linearize at the database; a debit
// that would overdraw matches no row and returns ErrRecordNotFound.
func (r *walletRepository) DeductBalance(ctx context.Context, id string, amount uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Wallet{}).
		Where("id=? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance-?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
