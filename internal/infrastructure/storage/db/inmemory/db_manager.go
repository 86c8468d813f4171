package inmemory

import (
	"context"
	"sync"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/storageutil/uow"
)

type balanceKey struct {
	account string
	asset   string
}

type storage struct {
	pools     map[string]domain.Pool
	positions map[string]domain.Position
	balances  map[balanceKey]uint64
}

func newStorage() *storage {
	return &storage{
		pools:     map[string]domain.Pool{},
		positions: map[string]domain.Position{},
		balances:  map[balanceKey]uint64{},
	}
}

func (s *storage) clone() *storage {
	c := newStorage()
	for k, v := range s.pools {
		c.pools[k] = v
	}
	for k, v := range s.positions {
		c.positions[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	return c
}

// dbManager holds the storage shared by repositories and ledger. A
// transaction holds the write lock from Begin until Commit or Rollback and
// works on a private copy of the storage.
type dbManager struct {
	lock    *sync.RWMutex
	storage *storage
}

func (d *dbManager) Begin(_ context.Context) (uow.Tx, error) {
	d.lock.Lock()
	return &dbTx{db: d, storage: d.storage.clone()}, nil
}

// ContextKey returns the key shared by repositories and ledger backed by the
// same storage.
func (d *dbManager) ContextKey() interface{} {
	return d
}

// read runs fn over the storage of the transaction carried by ctx, if any,
// or over the committed one.
func (d *dbManager) read(ctx context.Context, fn func(s *storage) error) error {
	if tx, ok := ctx.Value(d).(*dbTx); ok && tx != nil {
		return fn(tx.storage)
	}

	d.lock.RLock()
	defer d.lock.RUnlock()
	return fn(d.storage)
}

// write runs fn over the storage of the transaction carried by ctx, if any.
// Otherwise fn is applied to a copy of the committed storage that replaces
// it only if fn succeeds.
func (d *dbManager) write(ctx context.Context, fn func(s *storage) error) error {
	if tx, ok := ctx.Value(d).(*dbTx); ok && tx != nil {
		return fn(tx.storage)
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	s := d.storage.clone()
	if err := fn(s); err != nil {
		return err
	}
	d.storage = s
	return nil
}

type dbTx struct {
	db      *dbManager
	storage *storage
	once    sync.Once
}

func (t *dbTx) Commit() error {
	t.once.Do(func() {
		t.db.storage = t.storage
		t.db.lock.Unlock()
	})
	return nil
}

func (t *dbTx) Rollback() error {
	t.once.Do(func() {
		t.db.lock.Unlock()
	})
	return nil
}

type repoManager struct {
	*dbManager

	poolRepository     domain.PoolRepository
	positionRepository domain.PositionRepository
}

// NewRepoManager returns a RepoManager and a Ledger sharing the same
// in-memory storage, so that they can be part of the same transaction.
func NewRepoManager() (ports.RepoManager, ports.Ledger) {
	db := &dbManager{
		lock:    &sync.RWMutex{},
		storage: newStorage(),
	}

	return &repoManager{
		dbManager:          db,
		poolRepository:     newPoolRepositoryImpl(db),
		positionRepository: newPositionRepositoryImpl(db),
	}, newLedgerImpl(db)
}

func (r *repoManager) PoolRepository() domain.PoolRepository {
	return r.poolRepository
}

func (r *repoManager) PositionRepository() domain.PositionRepository {
	return r.positionRepository
}

func (r *repoManager) Close() {}
