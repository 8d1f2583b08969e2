package common

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/internal/repository"
	"gorm.io/gorm"
)

var ErrInsufficientBalance = errors.New("wallet balance is not enough")

// Ledger mutates wallet balances. Every change goes through here so a
// balance delta and its audit Transaction are always written together;
// callers are responsible for wrapping the operation in a database
// transaction.
type Ledger struct {
	communityRepo   repository.CommunityRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
}

func NewLedger(
	communityRepo repository.CommunityRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
) *Ledger {
	return &Ledger{
		communityRepo:   communityRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
	}
}

// Credit adds amount to the user's wallet in the community, creating the
// wallet lazily. A zero amount still records the audit transaction.
func (l *Ledger) Credit(
	ctx context.Context,
	userID, communityID string,
	amount uint64,
	source entity.VoteSource,
	referenceType entity.TransactionReference,
	referenceID, description string,
) (*entity.Transaction, error) {
	wallet, err := l.getOrCreateWallet(ctx, userID, communityID)
	if err != nil {
		return nil, err
	}

	if amount > 0 {
		if err := l.walletRepo.AddBalance(ctx, wallet.ID, amount); err != nil {
			return nil, err
		}
	}

	return l.record(ctx, wallet.ID, entity.TransactionCredit, amount, source,
		referenceType, referenceID, description)
}

// Debit removes amount from the user's wallet. It fails with
// ErrInsufficientBalance when the wallet does not exist or holds less than
// amount; nothing is written in that case.
func (l *Ledger) Debit(
	ctx context.Context,
	userID, communityID string,
	amount uint64,
	source entity.VoteSource,
	referenceType entity.TransactionReference,
	referenceID, description string,
) (*entity.Transaction, error) {
	wallet, err := l.walletRepo.Get(ctx, userID, communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInsufficientBalance
		}

		return nil, err
	}

	if err := l.walletRepo.DeductBalance(ctx, wallet.ID, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInsufficientBalance
		}

		return nil, err
	}

	return l.record(ctx, wallet.ID, entity.TransactionDebit, amount, source,
		referenceType, referenceID, description)
}

// Balance returns the cached wallet balance, zero if no wallet exists yet.
func (l *Ledger) Balance(ctx context.Context, userID, communityID string) (uint64, error) {
	wallet, err := l.walletRepo.Get(ctx, userID, communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, err
	}

	return wallet.Balance, nil
}

func (l *Ledger) getOrCreateWallet(
	ctx context.Context, userID, communityID string,
) (*entity.Wallet, error) {
	wallet, err := l.walletRepo.Get(ctx, userID, communityID)
	if err == nil {
		return wallet, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	community, err := l.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}

	wallet = &entity.Wallet{
		Base:           entity.Base{ID: uuid.NewString()},
		UserID:         userID,
		CommunityID:    communityID,
		Balance:        0,
		CurrencyName:   community.CurrencyName,
		CurrencySymbol: community.CurrencySymbol,
	}
	if err := l.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	return wallet, nil
}

func (l *Ledger) record(
	ctx context.Context,
	walletID string,
	typ entity.TransactionType,
	amount uint64,
	source entity.VoteSource,
	referenceType entity.TransactionReference,
	referenceID, description string,
) (*entity.Transaction, error) {
	transaction := &entity.Transaction{
		Base:          entity.Base{ID: uuid.NewString()},
		WalletID:      walletID,
		Type:          typ,
		Amount:        amount,
		Source:        source,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		Description:   description,
	}
	if err := l.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}
