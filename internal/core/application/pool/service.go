package pool

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/storageutil/uow"
)

type Service struct {
	repoManager ports.RepoManager
	ledger      ports.Ledger
	metrics     ports.Metrics
	locks       *poolLocks
}

func NewService(
	repoManager ports.RepoManager, ledger ports.Ledger, metrics ports.Metrics,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if ledger == nil {
		return nil, fmt.Errorf("missing ledger")
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Service{repoManager, ledger, metrics, newPoolLocks()}, nil
}

// Deposit adds liquidity to the pool of the given pair, creating it if not
// existing, and credits the issued shares to the position of the owner.
func (s *Service) Deposit(
	ctx context.Context, req DepositRequest,
) (*DepositReceipt, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	key, err := domain.MakePoolKey(req.AssetX, req.AssetY)
	if err != nil {
		return nil, err
	}

	release := s.locks.acquire(key)
	defer release()

	var receipt *DepositReceipt
	err = s.runInTx(ctx, func(repoCtx, ledgerCtx context.Context) error {
		poolRepo := s.repoManager.PoolRepository()
		positionRepo := s.repoManager.PositionRepository()

		pool, err := poolRepo.GetPoolByKey(repoCtx, key)
		if err != nil {
			return err
		}
		isNewPool := pool == nil
		if isNewPool {
			if pool, err = domain.NewPool(req.AssetX, req.AssetY); err != nil {
				return err
			}
		}

		amountA, amountB, err := pool.Orient(
			req.AssetX, req.AmountX, req.AssetY, req.AmountY,
		)
		if err != nil {
			return err
		}

		position, err := positionRepo.GetPosition(repoCtx, req.Owner, key)
		if err != nil {
			return err
		}
		if position == nil {
			if position, err = domain.NewPosition(req.Owner, key); err != nil {
				return err
			}
		}

		result, err := pool.Deposit(position, amountA, amountB)
		if err != nil {
			return err
		}

		if err := s.executeTransfers(ledgerCtx, result.Transfers); err != nil {
			return err
		}
		if err := s.savePool(repoCtx, pool, isNewPool); err != nil {
			return err
		}
		if err := positionRepo.UpsertPosition(repoCtx, position); err != nil {
			return err
		}

		receipt = &DepositReceipt{
			ID:           uuid.New().String(),
			Pool:         *pool,
			Position:     *position,
			Bootstrap:    result.Bootstrap,
			SharesIssued: result.SharesIssued,
			Transfers:    result.Transfers,
		}
		return nil
	})
	s.metrics.OperationCompleted(OperationDeposit, err)
	if err != nil {
		log.WithError(err).WithField("pool", key).Debug("deposit rejected")
		return nil, err
	}

	s.metrics.PoolUpdated(
		key, receipt.Pool.TotalShares, receipt.Pool.FeesCollectedA,
	)
	log.Debugf(
		"deposit %s on pool %s: issued %d shares to %s",
		receipt.ID, key, receipt.SharesIssued, req.Owner,
	)
	return receipt, nil
}

// Swap trades the given amount of input asset for the output asset of the
// same pool.
func (s *Service) Swap(
	ctx context.Context, req SwapRequest,
) (*SwapReceipt, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	key, err := domain.MakePoolKey(req.InputAsset, req.OutputAsset)
	if err != nil {
		return nil, err
	}

	release := s.locks.acquire(key)
	defer release()

	var receipt *SwapReceipt
	err = s.runInTx(ctx, func(repoCtx, ledgerCtx context.Context) error {
		pool, err := s.getPool(repoCtx, key)
		if err != nil {
			return err
		}

		result, err := pool.Swap(
			req.Owner, req.InputAsset, req.OutputAsset, req.Amount,
		)
		if err != nil {
			return err
		}

		if err := s.executeTransfers(ledgerCtx, result.Transfers); err != nil {
			return err
		}
		if err := s.savePool(repoCtx, pool, false); err != nil {
			return err
		}

		receipt = &SwapReceipt{
			ID:          uuid.New().String(),
			Pool:        *pool,
			InputAsset:  result.InputAsset,
			OutputAsset: result.OutputAsset,
			AmountIn:    result.AmountIn,
			AmountOut:   result.AmountOut,
			Fee:         result.Fee,
			Transfers:   result.Transfers,
		}
		return nil
	})
	s.metrics.OperationCompleted(OperationSwap, err)
	if err != nil {
		log.WithError(err).WithField("pool", key).Debug("swap rejected")
		return nil, err
	}

	s.metrics.PoolUpdated(
		key, receipt.Pool.TotalShares, receipt.Pool.FeesCollectedA,
	)
	log.Debugf(
		"swap %s on pool %s: %d %s in, %d %s out, fee %d",
		receipt.ID, key, receipt.AmountIn, receipt.InputAsset,
		receipt.AmountOut, receipt.OutputAsset, receipt.Fee,
	)
	return receipt, nil
}

// Withdraw redeems all the shares of the owner in the pool of the given
// pair and closes the position.
func (s *Service) Withdraw(
	ctx context.Context, req WithdrawRequest,
) (*WithdrawReceipt, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	key, err := domain.MakePoolKey(req.AssetX, req.AssetY)
	if err != nil {
		return nil, err
	}

	release := s.locks.acquire(key)
	defer release()

	var receipt *WithdrawReceipt
	err = s.runInTx(ctx, func(repoCtx, ledgerCtx context.Context) error {
		positionRepo := s.repoManager.PositionRepository()

		position, err := positionRepo.GetPosition(repoCtx, req.Owner, key)
		if err != nil {
			return err
		}
		if position == nil {
			return ErrPositionNotFound
		}
		pool, err := s.getPool(repoCtx, key)
		if err != nil {
			return err
		}

		result, err := pool.Withdraw(position)
		if err != nil {
			return err
		}

		if err := s.executeTransfers(ledgerCtx, result.Transfers); err != nil {
			return err
		}
		if err := s.savePool(repoCtx, pool, false); err != nil {
			return err
		}
		if err := positionRepo.DeletePosition(
			repoCtx, req.Owner, key,
		); err != nil {
			return err
		}

		receipt = &WithdrawReceipt{
			ID:             uuid.New().String(),
			Pool:           *pool,
			SharesRedeemed: result.SharesRedeemed,
			PayoutA:        result.PayoutA,
			RedeemedB:      result.RedeemedB,
			RedeemedFee:    result.RedeemedFee,
			Transfers:      result.Transfers,
		}
		return nil
	})
	s.metrics.OperationCompleted(OperationWithdraw, err)
	if err != nil {
		log.WithError(err).WithField("pool", key).Debug("withdraw rejected")
		return nil, err
	}

	s.metrics.PoolUpdated(
		key, receipt.Pool.TotalShares, receipt.Pool.FeesCollectedA,
	)
	log.Debugf(
		"withdraw %s on pool %s: redeemed %d shares of %s",
		receipt.ID, key, receipt.SharesRedeemed, req.Owner,
	)
	return receipt, nil
}

// Fund credits the given amount of asset to the account of owner.
func (s *Service) Fund(
	ctx context.Context, owner, asset string, amount uint64,
) error {
	if len(owner) <= 0 {
		return ErrMissingOwner
	}
	if err := domain.ValidateOwner(owner); err != nil {
		return err
	}
	if len(asset) <= 0 {
		return domain.ErrInvalidAsset
	}
	if amount == 0 {
		return domain.ErrZeroAmount
	}

	unit := uow.NewUnitOfWork(ctx, s.ledger)
	err := unit.Run(func(u uow.Contextual) error {
		return s.ledger.Credit(u.Context(s.ledger), owner, asset, amount)
	})
	s.metrics.OperationCompleted(OperationFund, err)
	return err
}

func (s *Service) runInTx(
	ctx context.Context, fn func(repoCtx, ledgerCtx context.Context) error,
) error {
	unit := uow.NewUnitOfWork(ctx, s.repoManager, s.ledger)
	return unit.Run(func(u uow.Contextual) error {
		return fn(u.Context(s.repoManager), u.Context(s.ledger))
	})
}

func (s *Service) getPool(
	ctx context.Context, key string,
) (*domain.Pool, error) {
	pool, err := s.repoManager.PoolRepository().GetPoolByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, ErrPoolNotFound
	}
	return pool, nil
}

func (s *Service) savePool(
	ctx context.Context, pool *domain.Pool, isNew bool,
) error {
	poolRepo := s.repoManager.PoolRepository()
	if isNew {
		return poolRepo.AddPool(ctx, pool)
	}
	return poolRepo.UpdatePool(
		ctx, pool.Key, func(_ *domain.Pool) (*domain.Pool, error) {
			return pool, nil
		},
	)
}

func (s *Service) executeTransfers(
	ctx context.Context, transfers []domain.Transfer,
) error {
	for _, t := range transfers {
		if err := s.ledger.Transfer(ctx, t); err != nil {
			return fmt.Errorf(
				"failed to transfer %d %s from %s to %s: %w",
				t.Amount, t.Asset, t.From, t.To, err,
			)
		}
	}
	return nil
}

type noopMetrics struct{}

func (noopMetrics) OperationCompleted(string, error)   {}
func (noopMetrics) PoolUpdated(string, uint64, uint64) {}
