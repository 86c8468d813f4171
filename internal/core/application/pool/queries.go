package pool

import (
	"context"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

// GetPool returns the pool of the given pair in any order.
func (s *Service) GetPool(
	ctx context.Context, assetX, assetY string,
) (*domain.Pool, error) {
	key, err := domain.MakePoolKey(assetX, assetY)
	if err != nil {
		return nil, err
	}
	return s.getPool(ctx, key)
}

func (s *Service) ListPools(ctx context.Context) ([]domain.Pool, error) {
	return s.repoManager.PoolRepository().GetAllPools(ctx)
}

// GetPosition returns the position of owner in the pool of the given pair.
func (s *Service) GetPosition(
	ctx context.Context, owner, assetX, assetY string,
) (*PositionInfo, error) {
	if len(owner) <= 0 {
		return nil, ErrMissingOwner
	}
	pool, err := s.GetPool(ctx, assetX, assetY)
	if err != nil {
		return nil, err
	}

	position, err := s.repoManager.PositionRepository().GetPosition(
		ctx, owner, pool.Key,
	)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, ErrPositionNotFound
	}

	return &PositionInfo{*position, position.OwnedFraction(*pool)}, nil
}

func (s *Service) ListPositions(
	ctx context.Context, owner string,
) ([]domain.Position, error) {
	if len(owner) <= 0 {
		return nil, ErrMissingOwner
	}
	return s.repoManager.PositionRepository().GetPositionsForOwner(ctx, owner)
}

// PreviewSwap quotes a swap against the current state of the pool without
// executing it.
func (s *Service) PreviewSwap(
	ctx context.Context, req SwapRequest,
) (*SwapPreview, error) {
	if req.Amount == 0 {
		return nil, domain.ErrZeroAmount
	}
	pool, err := s.GetPool(ctx, req.InputAsset, req.OutputAsset)
	if err != nil {
		return nil, err
	}

	quote, err := pool.PreviewSwap(req.InputAsset, req.OutputAsset, req.Amount)
	if err != nil {
		return nil, err
	}
	return &SwapPreview{
		InputAsset:  quote.InputAsset,
		OutputAsset: quote.OutputAsset,
		AmountIn:    quote.AmountIn,
		AmountOut:   quote.AmountOut,
		Fee:         quote.Fee,
	}, nil
}

func (s *Service) GetSpotPrice(
	ctx context.Context, assetX, assetY string,
) (*domain.PoolPrice, error) {
	pool, err := s.GetPool(ctx, assetX, assetY)
	if err != nil {
		return nil, err
	}
	return pool.SpotPrice()
}

// GetBalances returns the ledger balances of the given account.
func (s *Service) GetBalances(
	ctx context.Context, account string,
) (map[string]uint64, error) {
	if len(account) <= 0 {
		return nil, ErrMissingOwner
	}
	return s.ledger.GetBalances(ctx, account)
}
