package postgresdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/storageutil/uow"
)

const (
	uniqueViolation = "23505"

	// writeLockKey identifies the advisory lock serializing writers across
	// connections and processes.
	writeLockKey = 7_305_112_097
)

// querier is implemented by both the connection pool and a pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type dbManager struct {
	pgxPool *pgxpool.Pool
}

// Begin opens a postgres transaction.
func (d *dbManager) Begin(ctx context.Context) (uow.Tx, error) {
	tx, err := d.pgxPool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := lockWrites(ctx, tx); err != nil {
		//nolint
		tx.Rollback(ctx)
		return nil, err
	}
	return &dbTx{ctx, tx}, nil
}

// ContextKey returns the key shared by repositories and ledger backed by the
// same database.
func (d *dbManager) ContextKey() interface{} {
	return d
}

func (d *dbManager) Close() {
	d.pgxPool.Close()
}

func (d *dbManager) txFromContext(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(d).(*dbTx); ok && tx != nil {
		return tx.tx
	}
	return nil
}

// querier returns the transaction carried by ctx, if any, or the pool.
func (d *dbManager) querier(ctx context.Context) querier {
	if tx := d.txFromContext(ctx); tx != nil {
		return tx
	}
	return d.pgxPool
}

// execTx runs txBody in the transaction carried by ctx, if any, otherwise in
// a new one committed only if txBody succeeds.
func (d *dbManager) execTx(
	ctx context.Context, txBody func(q querier) error,
) error {
	if tx := d.txFromContext(ctx); tx != nil {
		return txBody(tx)
	}

	conn, err := d.pgxPool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}

	// Rollback is a no-op if the tx has been already committed.
	defer func() {
		err := tx.Rollback(ctx)
		switch {
		case errors.Is(err, pgx.ErrTxClosed):
			return
		case err != nil:
			log.Errorf("unable to rollback db tx: %v", err)
		}
	}()

	if err := lockWrites(ctx, tx); err != nil {
		return err
	}
	if err := txBody(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// lockWrites waits for other writers to finish. The lock is held until tx
// ends.
func lockWrites(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(
		ctx, "SELECT pg_advisory_xact_lock($1)", int64(writeLockKey),
	); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	return nil
}

type dbTx struct {
	ctx context.Context
	tx  pgx.Tx
}

func (t *dbTx) Commit() error {
	return t.tx.Commit(t.ctx)
}

func (t *dbTx) Rollback() error {
	if err := t.tx.Rollback(t.ctx); err != nil &&
		!errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

type repoManager struct {
	*dbManager

	poolRepository     domain.PoolRepository
	positionRepository domain.PositionRepository
}

// NewRepoManager connects to the postgres database at the given data source,
// applies pending migrations and returns a RepoManager and a Ledger sharing
// the same connection pool.
func NewRepoManager(
	ctx context.Context, dataSource string,
) (ports.RepoManager, ports.Ledger, error) {
	if len(dataSource) <= 0 {
		return nil, nil, fmt.Errorf("missing postgres data source")
	}

	pgxPool, err := pgxpool.New(ctx, dataSource)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pgxPool.Ping(ctx); err != nil {
		pgxPool.Close()
		return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := migrateDb(dataSource); err != nil {
		pgxPool.Close()
		return nil, nil, err
	}

	db := &dbManager{pgxPool}
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
