package main

import (
	"github.com/urfave/cli/v2"
)

var position = cli.Command{
	Name:   "position",
	Usage:  "get the position of a participant in a pool",
	Flags:  []cli.Flag{ownerFlag, assetXFlag, assetYFlag},
	Action: positionAction,
}

var positions = cli.Command{
	Name:   "positions",
	Usage:  "list all positions of a participant",
	Flags:  []cli.Flag{ownerFlag},
	Action: positionsAction,
}

func positionAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	info, err := svc.GetPosition(
		ctx.Context,
		ctx.String(ownerFlag.Name),
		ctx.String(assetXFlag.Name),
		ctx.String(assetYFlag.Name),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, info)
}

func positionsAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	list, err := svc.ListPositions(ctx.Context, ctx.String(ownerFlag.Name))
	if err != nil {
		return err
	}
	return printJSON(ctx, list)
}
