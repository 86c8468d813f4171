package main

import (
	"github.com/urfave/cli/v2"
)

var pool = cli.Command{
	Name:   "pool",
	Usage:  "get the state of the pool for a pair of assets",
	Flags:  []cli.Flag{assetXFlag, assetYFlag},
	Action: poolAction,
}

var pools = cli.Command{
	Name:   "pools",
	Usage:  "list all pools",
	Action: poolsAction,
}

var price = cli.Command{
	Name:   "price",
	Usage:  "get the spot price of the pool for a pair of assets",
	Flags:  []cli.Flag{assetXFlag, assetYFlag},
	Action: priceAction,
}

func poolAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	p, err := svc.GetPool(
		ctx.Context, ctx.String(assetXFlag.Name), ctx.String(assetYFlag.Name),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, p)
}

func poolsAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	list, err := svc.ListPools(ctx.Context)
	if err != nil {
		return err
	}
	return printJSON(ctx, list)
}

func priceAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	spotPrice, err := svc.GetSpotPrice(
		ctx.Context, ctx.String(assetXFlag.Name), ctx.String(assetYFlag.Name),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, map[string]string{
		"a_price": spotPrice.GetAPrice().String(),
		"b_price": spotPrice.GetBPrice().String(),
	})
}
