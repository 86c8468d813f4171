package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/config"
	"github.com/tdex-network/tdex-pool/internal/core/application"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	dbbadger "github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/inmemory"
	postgresdb "github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/pg"
	"github.com/tdex-network/tdex-pool/pkg/stats"
)

func newPoolService(
	ctx context.Context,
) (application.PoolService, func(), error) {
	repoManager, ledger, err := newStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	var metrics ports.Metrics
	var registry *prometheus.Registry
	if config.GetBool(config.EnableMetricsKey) {
		registry = prometheus.NewRegistry()
		poolMetrics, err := stats.NewPoolMetrics(registry)
		if err != nil {
			repoManager.Close()
			return nil, nil, err
		}
		metrics = poolMetrics
	}

	svc, err := application.NewPoolService(repoManager, ledger, metrics)
	if err != nil {
		repoManager.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if registry != nil {
			if err := stats.DumpPrometheus(
				registry, config.GetMetricsFile(),
			); err != nil {
				log.WithError(err).Warn("failed to dump metrics")
			}
		}
		repoManager.Close()
	}
	return svc, cleanup, nil
}

func newStorage(
	ctx context.Context,
) (ports.RepoManager, ports.Ledger, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	switch dbType := config.GetString(config.DBTypeKey); dbType {
	case config.DBInMemory:
		repoManager, ledger := inmemory.NewRepoManager()
		return repoManager, ledger, nil
	case config.DBBadger:
		return dbbadger.NewRepoManager(config.GetDbDir(), nil)
	case config.DBPostgres:
		return postgresdb.NewRepoManager(
			ctx, config.GetString(config.PgConnectAddrKey),
		)
	default:
		return nil, nil, fmt.Errorf("unknown db type %s", dbType)
	}
}
