package dbbadger

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/storageutil/uow"
	"github.com/timshannon/badgerhold/v4"
)

const gcInterval = 30 * time.Minute

// dbManager wraps the badgerhold store shared by repositories and ledger.
// Writers are serialized by lock so that optimistic badger transactions
// never conflict at commit.
type dbManager struct {
	store *badgerhold.Store
	lock  *sync.Mutex
	quit  chan struct{}
	once  sync.Once
}

// Begin opens a read-write badger transaction holding the write lock until
// Commit or Rollback.
func (d *dbManager) Begin(_ context.Context) (uow.Tx, error) {
	d.lock.Lock()
	return &dbTx{
		txn:    d.store.Badger().NewTransaction(true),
		unlock: d.lock.Unlock,
	}, nil
}

// ContextKey returns the key shared by repositories and ledger backed by the
// same store.
func (d *dbManager) ContextKey() interface{} {
	return d
}

func (d *dbManager) Close() {
	d.once.Do(func() {
		close(d.quit)
		if err := d.store.Close(); err != nil {
			log.WithError(err).Warn("failed to close badger store")
		}
	})
}

func (d *dbManager) txFromContext(ctx context.Context) *badger.Txn {
	if tx, ok := ctx.Value(d).(*dbTx); ok && tx != nil {
		return tx.txn
	}
	return nil
}

// update runs fn in the transaction carried by ctx, if any, otherwise in a
// new read-write one.
func (d *dbManager) update(
	ctx context.Context, fn func(txn *badger.Txn) error,
) error {
	if txn := d.txFromContext(ctx); txn != nil {
		return fn(txn)
	}

	d.lock.Lock()
	defer d.lock.Unlock()
	return d.store.Badger().Update(fn)
}

// view runs fn in the transaction carried by ctx, if any, otherwise in a new
// read-only one.
func (d *dbManager) view(
	ctx context.Context, fn func(txn *badger.Txn) error,
) error {
	if txn := d.txFromContext(ctx); txn != nil {
		return fn(txn)
	}
	return d.store.Badger().View(fn)
}

type dbTx struct {
	txn    *badger.Txn
	unlock func()
	once   sync.Once
}

func (t *dbTx) Commit() (err error) {
	err = t.txn.Commit()
	t.once.Do(t.unlock)
	return
}

func (t *dbTx) Rollback() error {
	t.txn.Discard()
	t.once.Do(t.unlock)
	return nil
}

type repoManager struct {
	*dbManager

	poolRepository     domain.PoolRepository
	positionRepository domain.PositionRepository
}

// NewRepoManager opens (or creates if not exists) the badger store in the
// given directory and returns a RepoManager and a Ledger sharing it.
// An empty baseDbDir opens an in-memory store.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, ports.Ledger, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, "pool")
	}

	db, err := createDb(dbDir, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening pool db: %w", err)
	}

	return &repoManager{
		dbManager:          db,
		poolRepository:     newPoolRepositoryImpl(db),
		positionRepository: newPositionRepositoryImpl(db),
	}, newLedgerImpl(db), nil
}

func (r *repoManager) PoolRepository() domain.PoolRepository {
	return r.poolRepository
}

func (r *repoManager) PositionRepository() domain.PositionRepository {
	return r.positionRepository
}

func createDb(dbDir string, logger badger.Logger) (*dbManager, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	store, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	db := &dbManager{
		store: store,
		lock:  &sync.Mutex{},
		quit:  make(chan struct{}),
	}

	if !isInMemory {
		ticker := time.NewTicker(gcInterval)

		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := store.Badger().RunValueLogGC(0.5); err != nil &&
						err != badger.ErrNoRewrite {
						log.Error(err)
					}
				case <-db.quit:
					return
				}
			}
		}()
	}

	return db, nil
}
