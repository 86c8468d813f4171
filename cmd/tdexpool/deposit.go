package main

import (
	"github.com/tdex-network/tdex-pool/internal/core/application"
	"github.com/urfave/cli/v2"
)

var (
	assetXFlag = &cli.StringFlag{
		Name:     "asset_x",
		Usage:    "one asset of the pool",
		Required: true,
	}
	assetYFlag = &cli.StringFlag{
		Name:     "asset_y",
		Usage:    "the other asset of the pool",
		Required: true,
	}
)

var deposit = cli.Command{
	Name:  "deposit",
	Usage: "provide liquidity to a pool, creating it if not existing",
	Flags: []cli.Flag{
		ownerFlag,
		assetXFlag,
		&cli.Uint64Flag{
			Name:     "amount_x",
			Usage:    "the amount of asset_x to deposit",
			Required: true,
		},
		assetYFlag,
		&cli.Uint64Flag{
			Name:     "amount_y",
			Usage:    "the amount of asset_y to deposit",
			Required: true,
		},
	},
	Action: depositAction,
}

func depositAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	receipt, err := svc.Deposit(ctx.Context, application.DepositRequest{
		Owner:   ctx.String(ownerFlag.Name),
		AssetX:  ctx.String(assetXFlag.Name),
		AmountX: ctx.Uint64("amount_x"),
		AssetY:  ctx.String(assetYFlag.Name),
		AmountY: ctx.Uint64("amount_y"),
	})
	if err != nil {
		return err
	}
	return printJSON(ctx, receipt)
}
