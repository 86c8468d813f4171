package domain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking/formula"
)

// PoolPrice represents the spot prices of the pool assets.
type PoolPrice struct {
	// how much 1 unit of asset A is valued in asset B.
	APrice string
	// how much 1 unit of asset B is valued in asset A.
	BPrice string
}

func (pp PoolPrice) GetAPrice() decimal.Decimal {
	p, _ := decimal.NewFromString(pp.APrice)
	return p
}

func (pp PoolPrice) GetBPrice() decimal.Decimal {
	p, _ := decimal.NewFromString(pp.BPrice)
	return p
}

// Pool defines the shared liquidity ledger of an asset pair.
type Pool struct {
	// Key identifies the pool and is the same for both orderings of the pair.
	Key string
	// AssetA is the lexicographically smaller asset of the pair.
	AssetA string
	AssetB string
	// Reserves available for pricing.
	TotalA uint64
	TotalB uint64
	// Fees accrued in asset A, kept out of the reserves until withdrawn.
	FeesCollectedA uint64
	// Percentage fee expressed in basis points.
	FeeRateBps uint64
	// Sum of all outstanding shares.
	TotalShares uint64
	// False until the first deposit succeeds.
	Initialized bool
}

// NewPool returns a new uninitialized pool for the given asset pair, with
// assets sorted in canonical order.
func NewPool(assetX, assetY string) (*Pool, error) {
	key, err := MakePoolKey(assetX, assetY)
	if err != nil {
		return nil, err
	}
	assetA, assetB := sortAssets(assetX, assetY)

	return &Pool{
		Key:    key,
		AssetA: assetA,
		AssetB: assetB,
	}, nil
}

// MakePoolKey returns the key of the pool for the given unordered pair.
func MakePoolKey(assetX, assetY string) (string, error) {
	if err := validateAssetPair(assetX, assetY); err != nil {
		return "", err
	}
	assetA, assetB := sortAssets(assetX, assetY)
	buf := []byte(fmt.Sprintf("%s:%s", assetA, assetB))
	return hex.EncodeToString(btcutil.Hash160(buf)), nil
}

// IsInitialized returns true once the pool has been seeded.
func (p *Pool) IsInitialized() bool {
	return p.Initialized
}

// HasAsset returns whether the given asset is one of the pair.
func (p *Pool) HasAsset(asset string) bool {
	return asset == p.AssetA || asset == p.AssetB
}

// CustodyAccount returns the ledger account holding the pool funds.
func (p *Pool) CustodyAccount() string {
	return CustodyAccount(p.Key)
}

// Authority returns the capability the pool uses to move its own funds.
func (p *Pool) Authority() Authority {
	return PoolAuthority(p.Key)
}

// Orient maps two amounts given for an arbitrarily ordered pair to the
// canonical (A, B) orientation of the pool.
func (p *Pool) Orient(
	assetX string, amountX uint64, assetY string, amountY uint64,
) (amountA, amountB uint64, err error) {
	if assetX == assetY {
		return 0, 0, ErrInvalidAccountInputs
	}
	if !p.HasAsset(assetX) || !p.HasAsset(assetY) {
		return 0, 0, ErrInvalidAccounts
	}
	if assetX == p.AssetA {
		return amountX, amountY, nil
	}
	return amountY, amountX, nil
}

// SpotPrice returns the current prices of the pool assets, fees excluded.
func (p *Pool) SpotPrice() (*PoolPrice, error) {
	if !p.IsInitialized() {
		return nil, ErrPoolNotInitialized
	}

	cp := formula.ConstantProduct{}
	aPrice, err := cp.SpotPrice(&marketmaking.FormulaOpts{
		BalanceIn: p.TotalA, BalanceOut: p.TotalB,
	})
	if err != nil {
		return nil, err
	}
	bPrice, err := cp.SpotPrice(&marketmaking.FormulaOpts{
		BalanceIn: p.TotalB, BalanceOut: p.TotalA,
	})
	if err != nil {
		return nil, err
	}

	return &PoolPrice{
		APrice: aPrice.String(),
		BPrice: bPrice.String(),
	}, nil
}

func validateAssetPair(assetX, assetY string) error {
	if !isValidAsset(assetX) || !isValidAsset(assetY) {
		return ErrInvalidAsset
	}
	if assetX == assetY {
		return ErrInvalidAccountInputs
	}
	return nil
}

func isValidAsset(asset string) bool {
	return len(strings.TrimSpace(asset)) > 0 && !strings.ContainsAny(asset, ":/")
}

func sortAssets(assetX, assetY string) (string, string) {
	if assetX < assetY {
		return assetX, assetY
	}
	return assetY, assetX
}
