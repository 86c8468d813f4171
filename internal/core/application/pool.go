package application

import (
	"context"

	"github.com/tdex-network/tdex-pool/internal/core/application/pool"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
)

type (
	DepositRequest  = pool.DepositRequest
	SwapRequest     = pool.SwapRequest
	WithdrawRequest = pool.WithdrawRequest
	DepositReceipt  = pool.DepositReceipt
	SwapReceipt     = pool.SwapReceipt
	WithdrawReceipt = pool.WithdrawReceipt
	SwapPreview     = pool.SwapPreview
	PositionInfo    = pool.PositionInfo
)

var (
	ErrPoolNotFound     = pool.ErrPoolNotFound
	ErrPositionNotFound = pool.ErrPositionNotFound
	ErrMissingOwner     = pool.ErrMissingOwner
)

type PoolService interface {
	Deposit(ctx context.Context, req DepositRequest) (*DepositReceipt, error)
	Swap(ctx context.Context, req SwapRequest) (*SwapReceipt, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (*WithdrawReceipt, error)
	PreviewSwap(ctx context.Context, req SwapRequest) (*SwapPreview, error)

	GetPool(ctx context.Context, assetX, assetY string) (*domain.Pool, error)
	ListPools(ctx context.Context) ([]domain.Pool, error)
	GetPosition(
		ctx context.Context, owner, assetX, assetY string,
	) (*PositionInfo, error)
	ListPositions(ctx context.Context, owner string) ([]domain.Position, error)
	GetSpotPrice(
		ctx context.Context, assetX, assetY string,
	) (*domain.PoolPrice, error)

	Fund(ctx context.Context, owner, asset string, amount uint64) error
	GetBalances(ctx context.Context, account string) (map[string]uint64, error)
}

func NewPoolService(
	repoManager ports.RepoManager, ledger ports.Ledger, metrics ports.Metrics,
) (PoolService, error) {
	svc, err := pool.NewService(repoManager, ledger, metrics)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
