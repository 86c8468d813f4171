package db_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	dbbadger "github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/inmemory"
	postgresdb "github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/pg"
)

const pgTestDsnEnv = "TDEX_POOL_PG_TEST_DSN"

var ctx = context.Background()

type storage struct {
	Name        string
	RepoManager ports.RepoManager
	Ledger      ports.Ledger
}

func createStorages(t *testing.T) []storage {
	inmemoryRepoManager, inmemoryLedger := inmemory.NewRepoManager()
	badgerRepoManager, badgerLedger, err := dbbadger.NewRepoManager(
		t.TempDir(), nil,
	)
	require.NoError(t, err)
	badgerInMemoryRepoManager, badgerInMemoryLedger, err :=
		dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)

	storages := []storage{
		{"inmemory", inmemoryRepoManager, inmemoryLedger},
		{"badger", badgerRepoManager, badgerLedger},
		{"badger_inmemory", badgerInMemoryRepoManager, badgerInMemoryLedger},
	}

	if dsn := os.Getenv(pgTestDsnEnv); dsn != "" {
		pgRepoManager, pgLedger, err := postgresdb.NewRepoManager(ctx, dsn)
		require.NoError(t, err)
		storages = append(storages, storage{"postgres", pgRepoManager, pgLedger})
	}

	t.Cleanup(func() {
		for _, s := range storages {
			s.RepoManager.Close()
		}
	})
	return storages
}

// makeRandomPool returns an initialized pool for a random pair of assets,
// so that tests never collide on a shared database.
func makeRandomPool(t *testing.T) *domain.Pool {
	pool, err := domain.NewPool(randomHex(32), randomHex(32))
	require.NoError(t, err)

	position, err := domain.NewPosition(randomOwner(), pool.Key)
	require.NoError(t, err)
	_, err = pool.Deposit(position, 1_000_000, 2_000_000)
	require.NoError(t, err)
	return pool
}

func randomOwner() string {
	return "owner-" + randomHex(8)
}

func randomHex(len int) string {
	return hex.EncodeToString(randomBytes(len))
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}
