package uow

import (
	"context"
	"fmt"
)

// Transactional begins a transaction
type Transactional interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx represents an all-or-nothing transaction, by committing or rolling back
// a set of read/write operations
type Tx interface {
	Commit() error
	Rollback() error
}

// Contextual returns a context for a given argument.
type Contextual interface {
	Context(interface{}) context.Context
}

// ContextProvider returns a context key. Transactionals returning the same
// key share the same transaction.
type ContextProvider interface {
	ContextKey() interface{}
}

// UnitOfWork allows to run multiple transactions as one
type UnitOfWork struct {
	parent       context.Context
	repositories []Transactional
	contexts     map[interface{}]Tx
}

// NewUnitOfWork returns a new UnitOfWork with the given Transaction interfaces
func NewUnitOfWork(
	ctx context.Context, repositories ...Transactional,
) *UnitOfWork {
	return &UnitOfWork{
		parent:       ctx,
		repositories: repositories,
		contexts:     map[interface{}]Tx{},
	}
}

// Context returns a child of the parent context carrying the transaction
// opened for the given repository, stored under its context key.
func (u *UnitOfWork) Context(repository interface{}) context.Context {
	key := contextKey(repository)
	return context.WithValue(u.parent, key, u.contexts[key])
}

// Run executes the given function over the current UnitOfWork. The given
// function is likely making read/write operations to different repositories in
// a transactional way. Run makes sure that all the transactions within the
// given function are either all committed to the relative storage or rolled
// back if any error occur
func (u *UnitOfWork) Run(fn func(Contextual) error) (err error) {
	txs := make([]Tx, 0, len(u.repositories))

	defer func() {
		if err == nil {
			return
		}
		for _, tx := range txs {
			if _err := tx.Rollback(); _err != nil {
				err = fmt.Errorf("%s: rollback failed: %w", err, _err)
				return
			}
		}
	}()

	defer func() {
		if err != nil {
			return
		}
		for _, tx := range txs {
			if _err := tx.Commit(); _err != nil {
				err = _err
				return
			}
		}
	}()

	defer func() {
		// panicking returns an error that causes txs rollback
		if rec := recover(); rec != nil {
			err = fmt.Errorf("recovered: %v", rec)
		}
	}()

	for _, r := range u.repositories {
		key := contextKey(r)
		// make sure that the same context providers share the same context
		if _, ok := u.contexts[key]; ok {
			continue
		}

		tx, err := r.Begin(u.parent)
		if err != nil {
			return err
		}
		u.contexts[key] = tx
		txs = append(txs, tx)
	}

	return fn(u)
}

func contextKey(repository interface{}) interface{} {
	if cp, ok := repository.(ContextProvider); ok {
		return cp.ContextKey()
	}
	return repository
}
