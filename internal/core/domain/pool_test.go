package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

const (
	assetA = "0000000000000000000000000000000000000000000000000000000000000000"
	assetB = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	alice  = "alice"
	bob    = "bob"
	trader = "carol"
)

func TestNewPool(t *testing.T) {
	t.Parallel()

	p, err := domain.NewPool(assetB, assetA)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, assetA, p.AssetA)
	require.Equal(t, assetB, p.AssetB)
	require.False(t, p.IsInitialized())
	require.Zero(t, p.TotalShares)
	require.Zero(t, p.FeeRateBps)

	key, err := domain.MakePoolKey(assetA, assetB)
	require.NoError(t, err)
	require.Equal(t, key, p.Key)
	require.Len(t, key, 40)

	otherKey, err := domain.MakePoolKey(assetB, assetA)
	require.NoError(t, err)
	require.Equal(t, key, otherKey)

	require.Equal(t, "pool:"+key, p.CustodyAccount())
	require.Equal(t, domain.PoolAuthority(key), p.Authority())
}

func TestFailingNewPool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		assetX        string
		assetY        string
		expectedError error
	}{
		{
			name:          "empty_asset",
			assetX:        "",
			assetY:        assetB,
			expectedError: domain.ErrInvalidAsset,
		},
		{
			name:          "blank_asset",
			assetX:        assetA,
			assetY:        "  ",
			expectedError: domain.ErrInvalidAsset,
		},
		{
			name:          "asset_with_separator",
			assetX:        "usd:eur",
			assetY:        assetB,
			expectedError: domain.ErrInvalidAsset,
		},
		{
			name:          "same_assets",
			assetX:        assetA,
			assetY:        assetA,
			expectedError: domain.ErrInvalidAccountInputs,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewPool(tt.assetX, tt.assetY)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestPoolOrient(t *testing.T) {
	t.Parallel()

	p := newTestPool(t)

	amountA, amountB, err := p.Orient(assetB, 2, assetA, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), amountA)
	require.Equal(t, uint64(2), amountB)

	amountA, amountB, err = p.Orient(assetA, 1, assetB, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(1), amountA)
	require.Equal(t, uint64(2), amountB)

	_, _, err = p.Orient(assetA, 1, assetA, 2)
	require.EqualError(t, err, domain.ErrInvalidAccountInputs.Error())

	_, _, err = p.Orient(assetA, 1, "ffff", 2)
	require.EqualError(t, err, domain.ErrInvalidAccounts.Error())
}

func TestPoolSpotPrice(t *testing.T) {
	t.Parallel()

	p := newTestPool(t)
	_, err := p.SpotPrice()
	require.EqualError(t, err, domain.ErrPoolNotInitialized.Error())

	p = newTestPoolWithLiquidity(t)
	price, err := p.SpotPrice()
	require.NoError(t, err)
	require.Equal(t, "2", price.GetAPrice().String())
	require.Equal(t, "0.5", price.GetBPrice().String())
}

func newTestPool(t *testing.T) *domain.Pool {
	p, err := domain.NewPool(assetA, assetB)
	require.NoError(t, err)
	return p
}

// newTestPoolWithLiquidity returns a pool seeded by alice with 1_000_000 of
// asset A and 2_000_000 of asset B.
func newTestPoolWithLiquidity(t *testing.T) *domain.Pool {
	p, _ := newTestPoolAndPosition(t)
	return p
}

func newTestPoolAndPosition(t *testing.T) (*domain.Pool, *domain.Position) {
	p := newTestPool(t)
	pos := newTestPosition(t, alice, p)
	_, err := p.Deposit(pos, 1_000_000, 2_000_000)
	require.NoError(t, err)
	return p, pos
}

func newTestPosition(
	t *testing.T, owner string, p *domain.Pool,
) *domain.Position {
	pos, err := domain.NewPosition(owner, p.Key)
	require.NoError(t, err)
	return pos
}
