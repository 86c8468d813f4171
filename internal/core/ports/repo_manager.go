package ports

import (
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/storageutil/uow"
)

// RepoManager gives access to the repositories of a single storage backend.
// Repositories share the transaction opened by Begin when their context
// carries it.
type RepoManager interface {
	uow.Transactional
	uow.ContextProvider

	PoolRepository() domain.PoolRepository
	PositionRepository() domain.PositionRepository

	Close()
}
