package repository

import (
	"context"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/pkg/xcontext"
)

type TransactionRepository interface {
	Create(ctx context.Context, data *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetListByWalletID(ctx context.Context, walletID string, offset, limit int) ([]entity.Transaction, error)
	BalanceOf(ctx context.Context, walletID string) (int64, error)
	SumByReference(ctx context.Context, referenceTypes []entity.TransactionReference, referenceID string) (uint64, error)
}

type transactionRepository struct{}

func NewTransactionRepository() *transactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, data *entity.Transaction) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var result entity.Transaction
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *transactionRepository) GetListByWalletID(
	ctx context.Context, walletID string, offset, limit int,
) ([]entity.Transaction, error) {
	var result []entity.Transaction
	err := xcontext.DB(ctx).
		Where("wallet_id=?", walletID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// BalanceOf derives the wallet balance from its transaction history. The
// result must always reconcile with the cached Wallet.Balance.
func (r *transactionRepository) BalanceOf(ctx context.Context, walletID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type=? THEN amount ELSE -amount END), 0)", entity.TransactionCredit).
		Where("wallet_id=?", walletID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

// SumByReference sums transaction amounts recorded against a reference, e.g.
// everything already withdrawn for a publication.
func (r *transactionRepository) SumByReference(
	ctx context.Context, referenceTypes []entity.TransactionReference, referenceID string,
) (uint64, error) {
	var result uint64
	err := xcontext.DB(ctx).
		Model(&entity.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("reference_type IN ? AND reference_id=?", referenceTypes, referenceID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
