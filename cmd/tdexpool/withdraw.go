package main

import (
	"github.com/tdex-network/tdex-pool/internal/core/application"
	"github.com/urfave/cli/v2"
)

var withdraw = cli.Command{
	Name:   "withdraw",
	Usage:  "redeem the whole position of a participant in a pool",
	Flags:  []cli.Flag{ownerFlag, assetXFlag, assetYFlag},
	Action: withdrawAction,
}

func withdrawAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	receipt, err := svc.Withdraw(ctx.Context, application.WithdrawRequest{
		Owner:  ctx.String(ownerFlag.Name),
		AssetX: ctx.String(assetXFlag.Name),
		AssetY: ctx.String(assetYFlag.Name),
	})
	if err != nil {
		return err
	}
	return printJSON(ctx, receipt)
}
