package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/config"
	"github.com/tdex-network/tdex-pool/internal/core/application"
	"github.com/urfave/cli/v2"
)

const (
	serviceKey = "service"
	cleanupKey = "cleanup"
)

var (
	datadirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "the directory where the pool state is stored",
	}
	dbTypeFlag = &cli.StringFlag{
		Name:  "db_type",
		Usage: "the storage backend, one of inmemory, badger or postgres",
	}
	logLevelFlag = &cli.IntFlag{
		Name:  "log_level",
		Usage: "the logrus log level, from 0 (panic) to 6 (trace)",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "tdexpool"
	app.Usage = "Command line interface for constant product liquidity pools"
	app.Flags = []cli.Flag{datadirFlag, dbTypeFlag, logLevelFlag}
	app.Before = setup
	app.After = teardown
	app.Commands = append(
		app.Commands,
		&fund,
		&balance,
		&deposit,
		&swap,
		&preview,
		&withdraw,
		&pool,
		&pools,
		&price,
		&position,
		&positions,
	)

	return app
}

func setup(ctx *cli.Context) error {
	overrides := map[string]interface{}{}
	if ctx.IsSet(datadirFlag.Name) {
		overrides[config.DatadirKey] = ctx.String(datadirFlag.Name)
	}
	if ctx.IsSet(dbTypeFlag.Name) {
		overrides[config.DBTypeKey] = ctx.String(dbTypeFlag.Name)
	}
	if ctx.IsSet(logLevelFlag.Name) {
		overrides[config.LogLevelKey] = ctx.Int(logLevelFlag.Name)
	}

	if err := config.InitConfig(overrides); err != nil {
		return err
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	svc, cleanup, err := newPoolService(ctx.Context)
	if err != nil {
		return err
	}
	if ctx.App.Metadata == nil {
		ctx.App.Metadata = map[string]interface{}{}
	}
	ctx.App.Metadata[serviceKey] = svc
	ctx.App.Metadata[cleanupKey] = cleanup
	return nil
}

func teardown(ctx *cli.Context) error {
	if cleanup, ok := ctx.App.Metadata[cleanupKey].(func()); ok {
		cleanup()
	}
	delete(ctx.App.Metadata, serviceKey)
	delete(ctx.App.Metadata, cleanupKey)
	return nil
}

func getPoolService(ctx *cli.Context) (application.PoolService, error) {
	svc, ok := ctx.App.Metadata[serviceKey].(application.PoolService)
	if !ok {
		return nil, errors.New("pool service not initialized")
	}
	return svc, nil
}

func printJSON(ctx *cli.Context, resp interface{}) error {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode response: %w", err)
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(buf))
	return err
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[tdexpool] %v\n", err)
	os.Exit(1)
}
