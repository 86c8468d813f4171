package ports

// Metrics is notified about the outcome of every pool operation.
type Metrics interface {
	OperationCompleted(operation string, err error)
	PoolUpdated(poolKey string, totalShares, feesCollectedA uint64)
}
