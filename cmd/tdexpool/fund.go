package main

import (
	"github.com/urfave/cli/v2"
)

var (
	ownerFlag = &cli.StringFlag{
		Name:     "owner",
		Usage:    "the participant account",
		Required: true,
	}
	assetFlag = &cli.StringFlag{
		Name:     "asset",
		Usage:    "the asset identifier",
		Required: true,
	}
	amountFlag = &cli.Uint64Flag{
		Name:     "amount",
		Usage:    "the amount in base units",
		Required: true,
	}
)

var fund = cli.Command{
	Name:   "fund",
	Usage:  "credit some amount of an asset to a participant account",
	Flags:  []cli.Flag{ownerFlag, assetFlag, amountFlag},
	Action: fundAction,
}

var balance = cli.Command{
	Name:  "balance",
	Usage: "get the balances of an account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "account",
			Usage:    "the participant account or pool custody account",
			Required: true,
		},
	},
	Action: balanceAction,
}

func fundAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	owner := ctx.String(ownerFlag.Name)
	if err := svc.Fund(
		ctx.Context, owner, ctx.String(assetFlag.Name), ctx.Uint64(amountFlag.Name),
	); err != nil {
		return err
	}

	balances, err := svc.GetBalances(ctx.Context, owner)
	if err != nil {
		return err
	}
	return printJSON(ctx, balances)
}

func balanceAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	balances, err := svc.GetBalances(ctx.Context, ctx.String("account"))
	if err != nil {
		return err
	}
	return printJSON(ctx, balances)
}
