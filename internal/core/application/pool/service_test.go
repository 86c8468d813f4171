package pool_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/core/application/pool"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	dbbadger "github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/inmemory"
	"golang.org/x/sync/errgroup"
)

const (
	lbtc = "lbtc"
	usdt = "usdt"
	zar  = "zar"

	alice = "alice"
	bob   = "bob"
	carol = "carol"
)

var ctx = context.Background()

type backend struct {
	name  string
	setup func(t *testing.T) (ports.RepoManager, ports.Ledger)
}

var backends = []backend{
	{
		name: "inmemory",
		setup: func(t *testing.T) (ports.RepoManager, ports.Ledger) {
			return inmemory.NewRepoManager()
		},
	},
	{
		name: "badger",
		setup: func(t *testing.T) (ports.RepoManager, ports.Ledger) {
			repoManager, ledger, err := dbbadger.NewRepoManager(t.TempDir(), nil)
			require.NoError(t, err)
			return repoManager, ledger
		},
	},
	{
		name: "badger_inmemory",
		setup: func(t *testing.T) (ports.RepoManager, ports.Ledger) {
			repoManager, ledger, err := dbbadger.NewRepoManager("", nil)
			require.NoError(t, err)
			return repoManager, ledger
		},
	},
}

func TestNewService(t *testing.T) {
	repoManager, ledger := inmemory.NewRepoManager()

	svc, err := pool.NewService(repoManager, ledger, nil)
	require.NoError(t, err)
	require.NotNil(t, svc)

	_, err = pool.NewService(nil, ledger, nil)
	require.Error(t, err)

	_, err = pool.NewService(repoManager, nil, nil)
	require.Error(t, err)
}

func TestDepositSwapWithdraw(t *testing.T) {
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			testDepositSwapWithdraw(t, b)
		})
	}
}

func testDepositSwapWithdraw(t *testing.T, b backend) {
	svc, ledger := newTestService(t, b, nil)
	fund(t, svc, alice, lbtc, 1_000_000)
	fund(t, svc, alice, usdt, 2_000_000)
	fund(t, svc, bob, lbtc, 100_300)

	key, err := domain.MakePoolKey(lbtc, usdt)
	require.NoError(t, err)
	custody := domain.CustodyAccount(key)

	deposit, err := svc.Deposit(ctx, pool.DepositRequest{
		Owner:   alice,
		AssetX:  usdt,
		AmountX: 2_000_000,
		AssetY:  lbtc,
		AmountY: 1_000_000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, deposit.ID)
	require.True(t, deposit.Bootstrap)
	require.Equal(t, uint64(1_414_213), deposit.SharesIssued)
	require.Equal(t, key, deposit.Pool.Key)
	require.Equal(t, lbtc, deposit.Pool.AssetA)
	require.Equal(t, usdt, deposit.Pool.AssetB)
	require.Equal(t, deposit.SharesIssued, deposit.Position.Shares)
	require.Len(t, deposit.Transfers, 2)
	requireBalance(t, ledger, custody, lbtc, 1_000_000)
	requireBalance(t, ledger, custody, usdt, 2_000_000)

	info, err := svc.GetPosition(ctx, alice, usdt, lbtc)
	require.NoError(t, err)
	require.Equal(t, "1", info.OwnedFraction.String())

	preview, err := svc.PreviewSwap(ctx, pool.SwapRequest{
		InputAsset:  lbtc,
		OutputAsset: usdt,
		Amount:      100_000,
	})
	require.NoError(t, err)

	swap, err := svc.Swap(ctx, pool.SwapRequest{
		Owner:       bob,
		InputAsset:  lbtc,
		OutputAsset: usdt,
		Amount:      100_000,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(100_300), swap.AmountIn)
	require.Equal(t, uint64(181_819), swap.AmountOut)
	require.Equal(t, uint64(300), swap.Fee)
	require.Equal(t, preview.AmountOut, swap.AmountOut)
	require.Equal(t, preview.Fee, swap.Fee)
	requireBalance(t, ledger, bob, lbtc, 0)
	requireBalance(t, ledger, bob, usdt, 181_819)
	requireBalance(t, ledger, custody, lbtc, 1_100_300)

	withdraw, err := svc.Withdraw(ctx, pool.WithdrawRequest{
		Owner:  alice,
		AssetX: lbtc,
		AssetY: usdt,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1_414_213), withdraw.SharesRedeemed)
	require.Equal(t, uint64(1_100_300), withdraw.PayoutA)
	require.Equal(t, uint64(1_818_181), withdraw.RedeemedB)
	require.Equal(t, uint64(300), withdraw.RedeemedFee)
	require.Zero(t, withdraw.Pool.TotalShares)
	requireBalance(t, ledger, custody, lbtc, 0)
	requireBalance(t, ledger, custody, usdt, 0)
	requireBalance(t, ledger, alice, lbtc, 1_100_300)
	requireBalance(t, ledger, alice, usdt, 1_818_181)

	_, err = svc.GetPosition(ctx, alice, lbtc, usdt)
	require.ErrorIs(t, err, pool.ErrPositionNotFound)

	positions, err := svc.ListPositions(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, positions)

	pools, err := svc.ListPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 1)
	require.True(t, pools[0].IsInitialized())

	_, err = svc.Deposit(ctx, pool.DepositRequest{
		Owner:   alice,
		AssetX:  lbtc,
		AmountX: 1_000,
		AssetY:  usdt,
		AmountY: 2_000,
	})
	require.ErrorIs(t, err, domain.ErrDivisionError)
	requireBalance(t, ledger, alice, lbtc, 1_100_300)
	requireBalance(t, ledger, custody, usdt, 0)
}

func TestDepositTopUp(t *testing.T) {
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newTestServiceWithPool(t, b)
			fund(t, svc, bob, lbtc, 100_000)
			fund(t, svc, bob, usdt, 200_000)

			receipt, err := svc.Deposit(ctx, pool.DepositRequest{
				Owner:   bob,
				AssetX:  lbtc,
				AmountX: 100_000,
				AssetY:  usdt,
				AmountY: 200_000,
			})
			require.NoError(t, err)
			require.False(t, receipt.Bootstrap)
			require.Equal(t, uint64(141_421), receipt.SharesIssued)
			require.Equal(t, uint64(1_555_634), receipt.Pool.TotalShares)

			info, err := svc.GetPosition(ctx, bob, lbtc, usdt)
			require.NoError(t, err)
			require.Equal(t, uint64(141_421), info.Shares)
			require.True(t, info.OwnedFraction.GreaterThan(decimal.NewFromFloat(0.09)))
			require.True(t, info.OwnedFraction.LessThan(decimal.NewFromFloat(0.1)))
		})
	}
}

func TestFailingOperations(t *testing.T) {
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			testFailingOperations(t, b)
		})
	}
}

func testFailingOperations(t *testing.T, b backend) {
	svc, ledger := newTestServiceWithPool(t, b)
	key, err := domain.MakePoolKey(lbtc, usdt)
	require.NoError(t, err)
	custody := domain.CustodyAccount(key)

	t.Run("swap_without_funds", func(t *testing.T) {
		fund(t, svc, carol, lbtc, 50_000)

		_, err := svc.Swap(ctx, pool.SwapRequest{
			Owner:       carol,
			InputAsset:  lbtc,
			OutputAsset: usdt,
			Amount:      100_000,
		})
		require.ErrorIs(t, err, ports.ErrInsufficientBalance)

		p, err := svc.GetPool(ctx, lbtc, usdt)
		require.NoError(t, err)
		require.Equal(t, uint64(1_000_000), p.TotalA)
		require.Equal(t, uint64(2_000_000), p.TotalB)
		require.Zero(t, p.FeesCollectedA)
		requireBalance(t, ledger, carol, lbtc, 50_000)
		requireBalance(t, ledger, custody, lbtc, 1_000_000)
	})

	t.Run("deposit_without_second_asset", func(t *testing.T) {
		fund(t, svc, bob, lbtc, 1_000)

		_, err := svc.Deposit(ctx, pool.DepositRequest{
			Owner:   bob,
			AssetX:  lbtc,
			AmountX: 1_000,
			AssetY:  zar,
			AmountY: 2_000,
		})
		require.ErrorIs(t, err, ports.ErrInsufficientBalance)

		_, err = svc.GetPool(ctx, lbtc, zar)
		require.ErrorIs(t, err, pool.ErrPoolNotFound)
		requireBalance(t, ledger, bob, lbtc, 1_000)
	})

	t.Run("swap_on_missing_pool", func(t *testing.T) {
		_, err := svc.Swap(ctx, pool.SwapRequest{
			Owner:       bob,
			InputAsset:  lbtc,
			OutputAsset: zar,
			Amount:      10,
		})
		require.ErrorIs(t, err, pool.ErrPoolNotFound)

		_, err = svc.PreviewSwap(ctx, pool.SwapRequest{
			InputAsset:  lbtc,
			OutputAsset: zar,
			Amount:      10,
		})
		require.ErrorIs(t, err, pool.ErrPoolNotFound)

		_, err = svc.GetSpotPrice(ctx, lbtc, zar)
		require.ErrorIs(t, err, pool.ErrPoolNotFound)
		requireBalance(t, ledger, bob, lbtc, 1_000)
	})

	t.Run("withdraw_without_position", func(t *testing.T) {
		_, err := svc.Withdraw(ctx, pool.WithdrawRequest{
			Owner:  bob,
			AssetX: lbtc,
			AssetY: usdt,
		})
		require.ErrorIs(t, err, pool.ErrPositionNotFound)
	})

	t.Run("imbalanced_deposit", func(t *testing.T) {
		fund(t, svc, bob, usdt, 150_000)
		fund(t, svc, bob, lbtc, 100_000)

		_, err := svc.Deposit(ctx, pool.DepositRequest{
			Owner:   bob,
			AssetX:  lbtc,
			AmountX: 100_000,
			AssetY:  usdt,
			AmountY: 150_000,
		})
		require.ErrorIs(t, err, domain.ErrImbalancedDeposit)
		requireBalance(t, ledger, bob, usdt, 150_000)
	})

	t.Run("one_sided_bootstrap", func(t *testing.T) {
		fund(t, svc, carol, zar, 1_000)

		_, err := svc.Deposit(ctx, pool.DepositRequest{
			Owner:   carol,
			AssetX:  usdt,
			AmountX: 0,
			AssetY:  zar,
			AmountY: 1_000,
		})
		require.ErrorIs(t, err, domain.ErrZeroShares)

		_, err = svc.GetPool(ctx, usdt, zar)
		require.ErrorIs(t, err, pool.ErrPoolNotFound)
		requireBalance(t, ledger, carol, zar, 1_000)
	})

	t.Run("invalid_requests", func(t *testing.T) {
		_, err := svc.Deposit(ctx, pool.DepositRequest{
			AssetX: lbtc, AmountX: 1, AssetY: usdt, AmountY: 2,
		})
		require.ErrorIs(t, err, pool.ErrMissingOwner)

		_, err = svc.Swap(ctx, pool.SwapRequest{
			Owner: bob, InputAsset: lbtc, OutputAsset: usdt,
		})
		require.ErrorIs(t, err, domain.ErrZeroAmount)

		_, err = svc.Withdraw(ctx, pool.WithdrawRequest{
			Owner: bob, AssetX: lbtc, AssetY: lbtc,
		})
		require.ErrorIs(t, err, domain.ErrInvalidAccountInputs)

		err = svc.Fund(ctx, domain.CustodyAccount(key), lbtc, 10)
		require.ErrorIs(t, err, domain.ErrInvalidOwner)

		err = svc.Fund(ctx, bob, lbtc, 0)
		require.ErrorIs(t, err, domain.ErrZeroAmount)
	})
}

func TestMetrics(t *testing.T) {
	metrics := &mockMetrics{}
	metrics.On("OperationCompleted", mock.Anything, mock.Anything).Return()
	metrics.On(
		"PoolUpdated", mock.Anything, mock.Anything, mock.Anything,
	).Return()

	svc, _ := newTestService(t, backends[0], metrics)
	fund(t, svc, alice, lbtc, 1_000)
	fund(t, svc, alice, usdt, 4_000)

	key, err := domain.MakePoolKey(lbtc, usdt)
	require.NoError(t, err)

	_, err = svc.Deposit(ctx, pool.DepositRequest{
		Owner: alice, AssetX: lbtc, AmountX: 1_000, AssetY: usdt, AmountY: 4_000,
	})
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, pool.WithdrawRequest{
		Owner: bob, AssetX: lbtc, AssetY: usdt,
	})
	require.Error(t, err)

	metrics.AssertCalled(t, "OperationCompleted", pool.OperationFund, nil)
	metrics.AssertCalled(t, "OperationCompleted", pool.OperationDeposit, nil)
	metrics.AssertCalled(
		t, "OperationCompleted", pool.OperationWithdraw, pool.ErrPositionNotFound,
	)
	metrics.AssertCalled(t, "PoolUpdated", key, uint64(2_000), uint64(0))
	metrics.AssertNumberOfCalls(t, "PoolUpdated", 1)
}

func TestConcurrentOperations(t *testing.T) {
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			testConcurrentOperations(t, b)
		})
	}
}

func testConcurrentOperations(t *testing.T, b backend) {
	svc, ledger := newTestService(t, b, nil)
	fund(t, svc, alice, lbtc, 10_000_000)
	fund(t, svc, alice, usdt, 20_000_000)

	_, err := svc.Deposit(ctx, pool.DepositRequest{
		Owner:   alice,
		AssetX:  lbtc,
		AmountX: 10_000_000,
		AssetY:  usdt,
		AmountY: 20_000_000,
	})
	require.NoError(t, err)

	numOfTraders := 20
	traders := make([]string, 0, numOfTraders)
	for i := 0; i < numOfTraders; i++ {
		trader := fmt.Sprintf("trader-%d", i)
		fund(t, svc, trader, lbtc, 10_000)
		fund(t, svc, trader, usdt, 20_000)
		fund(t, svc, trader, zar, 1_000)
		traders = append(traders, trader)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, trader := range traders {
		trader := trader
		g.Go(func() error {
			if _, err := svc.Swap(gctx, pool.SwapRequest{
				Owner:       trader,
				InputAsset:  lbtc,
				OutputAsset: usdt,
				Amount:      1_000,
			}); err != nil {
				return err
			}
			_, err := svc.Swap(gctx, pool.SwapRequest{
				Owner:       trader,
				InputAsset:  usdt,
				OutputAsset: lbtc,
				Amount:      2_000,
			})
			return err
		})
		g.Go(func() error {
			_, err := svc.Deposit(gctx, pool.DepositRequest{
				Owner:   trader,
				AssetX:  lbtc,
				AmountX: 1_000,
				AssetY:  zar,
				AmountY: 1_000,
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	p, err := svc.GetPool(ctx, lbtc, usdt)
	require.NoError(t, err)
	custody := p.CustodyAccount()
	requireBalance(t, ledger, custody, lbtc, p.TotalA+p.FeesCollectedA)
	requireBalance(t, ledger, custody, usdt, p.TotalB)

	zarPool, err := svc.GetPool(ctx, lbtc, zar)
	require.NoError(t, err)
	require.Equal(t, uint64(numOfTraders*1_000), zarPool.TotalShares)
	requireBalance(t, ledger, zarPool.CustodyAccount(), zar, zarPool.TotalB)

	totalLbtc, err := ledger.GetBalance(ctx, custody, lbtc)
	require.NoError(t, err)
	zarPoolLbtc, err := ledger.GetBalance(ctx, zarPool.CustodyAccount(), lbtc)
	require.NoError(t, err)
	totalLbtc += zarPoolLbtc
	totalUsdt, err := ledger.GetBalance(ctx, custody, usdt)
	require.NoError(t, err)
	for _, trader := range traders {
		balances, err := svc.GetBalances(ctx, trader)
		require.NoError(t, err)
		totalLbtc += balances[lbtc]
		totalUsdt += balances[usdt]
	}
	require.Equal(t, uint64(10_000_000+numOfTraders*10_000), totalLbtc)
	require.Equal(t, uint64(20_000_000+numOfTraders*20_000), totalUsdt)
}

func TestConcurrentSwapsAcrossPools(t *testing.T) {
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			testConcurrentSwapsAcrossPools(t, b)
		})
	}
}

// bob trades on two pools at once, so every swap on either pool writes his
// lbtc balance.
func testConcurrentSwapsAcrossPools(t *testing.T, b backend) {
	svc, ledger := newTestService(t, b, nil)
	fund(t, svc, alice, lbtc, 2_000_000)
	fund(t, svc, alice, usdt, 2_000_000)
	fund(t, svc, alice, zar, 3_000_000)

	for _, req := range []pool.DepositRequest{
		{Owner: alice, AssetX: lbtc, AmountX: 1_000_000, AssetY: usdt, AmountY: 2_000_000},
		{Owner: alice, AssetX: lbtc, AmountX: 1_000_000, AssetY: zar, AmountY: 3_000_000},
	} {
		_, err := svc.Deposit(ctx, req)
		require.NoError(t, err)
	}

	numOfSwaps := 25
	fund(t, svc, bob, lbtc, uint64(2*numOfSwaps*1_003))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < numOfSwaps; i++ {
		for _, asset := range []string{usdt, zar} {
			asset := asset
			g.Go(func() error {
				_, err := svc.Swap(gctx, pool.SwapRequest{
					Owner:       bob,
					InputAsset:  lbtc,
					OutputAsset: asset,
					Amount:      1_000,
				})
				return err
			})
		}
	}
	require.NoError(t, g.Wait())
	requireBalance(t, ledger, bob, lbtc, 0)

	totalLbtc := uint64(0)
	for _, asset := range []string{usdt, zar} {
		p, err := svc.GetPool(ctx, lbtc, asset)
		require.NoError(t, err)
		require.Equal(t, uint64(numOfSwaps*3), p.FeesCollectedA)
		requireBalance(t, ledger, p.CustodyAccount(), lbtc, p.TotalA+p.FeesCollectedA)
		requireBalance(t, ledger, p.CustodyAccount(), asset, p.TotalB)

		bobBalance, err := ledger.GetBalance(ctx, bob, asset)
		require.NoError(t, err)
		require.NotZero(t, bobBalance)

		initialB := uint64(2_000_000)
		if asset == zar {
			initialB = 3_000_000
		}
		require.Equal(t, initialB, p.TotalB+bobBalance)
		totalLbtc += p.TotalA + p.FeesCollectedA
	}
	require.Equal(t, uint64(2_000_000+2*numOfSwaps*1_003), totalLbtc)
}

func newTestService(
	t *testing.T, b backend, metrics ports.Metrics,
) (*pool.Service, ports.Ledger) {
	repoManager, ledger := b.setup(t)
	t.Cleanup(repoManager.Close)

	svc, err := pool.NewService(repoManager, ledger, metrics)
	require.NoError(t, err)
	return svc, ledger
}

// newTestServiceWithPool returns a service with a lbtc/usdt pool where alice
// provided 1_000_000 lbtc and 2_000_000 usdt.
func newTestServiceWithPool(
	t *testing.T, b backend,
) (*pool.Service, ports.Ledger) {
	svc, ledger := newTestService(t, b, nil)
	fund(t, svc, alice, lbtc, 1_000_000)
	fund(t, svc, alice, usdt, 2_000_000)

	_, err := svc.Deposit(ctx, pool.DepositRequest{
		Owner:   alice,
		AssetX:  lbtc,
		AmountX: 1_000_000,
		AssetY:  usdt,
		AmountY: 2_000_000,
	})
	require.NoError(t, err)
	return svc, ledger
}

func fund(
	t *testing.T, svc *pool.Service, owner, asset string, amount uint64,
) {
	t.Helper()
	require.NoError(t, svc.Fund(ctx, owner, asset, amount))
}

func requireBalance(
	t *testing.T, ledger ports.Ledger, account, asset string, expected uint64,
) {
	t.Helper()
	balance, err := ledger.GetBalance(ctx, account, asset)
	require.NoError(t, err)
	require.Equal(t, expected, balance)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) OperationCompleted(operation string, err error) {
	m.Called(operation, err)
}

func (m *mockMetrics) PoolUpdated(
	poolKey string, totalShares, feesCollectedA uint64,
) {
	m.Called(poolKey, totalShares, feesCollectedA)
}
