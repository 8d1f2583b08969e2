package domain

import (
	"context"
	"errors"
	"time"

	"github.com/meriter/backend/internal/common"
	"github.com/meriter/backend/internal/model"
	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/errorx"
	"github.com/meriter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WalletDomain interface {
	GetBalance(ctx context.Context, req *model.GetWalletBalanceRequest) (*model.GetWalletBalanceResponse, error)
	GetMyTransactions(ctx context.Context, req *model.GetMyWalletTransactionsRequest) (*model.GetMyWalletTransactionsResponse, error)
}

type walletDomain struct {
	communityRepo   repository.CommunityRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	ledger          *common.Ledger
}

func NewWalletDomain(
	communityRepo repository.CommunityRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	ledger *common.Ledger,
) *walletDomain {
	return &walletDomain{
		communityRepo:   communityRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		ledger:          ledger,
	}
}

func (d *walletDomain) GetBalance(
	ctx context.Context, req *model.GetWalletBalanceRequest,
) (*model.GetWalletBalanceResponse, error) {
	if req.CommunityID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty community id")
	}

	community, err := d.communityRepo.GetByID(ctx, req.CommunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	balance, err := d.ledger.Balance(ctx, xcontext.RequestUserID(ctx), community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get wallet balance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetWalletBalanceResponse{
		Balance:        balance,
		CurrencyName:   community.CurrencyName,
		CurrencySymbol: community.CurrencySymbol,
	}, nil
}

func (d *walletDomain) GetMyTransactions(
	ctx context.Context, req *model.GetMyWalletTransactionsRequest,
) (*model.GetMyWalletTransactionsResponse, error) {
	if req.CommunityID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty community id")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	wallet, err := d.walletRepo.Get(ctx, xcontext.RequestUserID(ctx), req.CommunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetMyWalletTransactionsResponse{Transactions: []model.Transaction{}}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get wallet: %v", err)
		return nil, errorx.Unknown
	}

	transactions, err := d.transactionRepo.GetListByWalletID(ctx, wallet.ID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get transactions: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Transaction{}
	for _, tx := range transactions {
		result = append(result, model.Transaction{
			ID:            tx.ID,
			Type:          string(tx.Type),
			Amount:        tx.Amount,
			ReferenceType: string(tx.ReferenceType),
			ReferenceID:   tx.ReferenceID,
			Description:   tx.Description,
			CreatedAt:     tx.CreatedAt.Format(time.RFC3339),
		})
	}

	return &model.GetMyWalletTransactionsResponse{Transactions: result}, nil
}
