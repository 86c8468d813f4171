package main

import (
	"github.com/tdex-network/tdex-pool/internal/core/application"
	"github.com/urfave/cli/v2"
)

var swapFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "asset_in",
		Usage:    "the asset sent to the pool",
		Required: true,
	},
	&cli.StringFlag{
		Name:     "asset_out",
		Usage:    "the asset received from the pool",
		Required: true,
	},
	amountFlag,
}

var swap = cli.Command{
	Name:   "swap",
	Usage:  "trade an amount of one pool asset for the other",
	Flags:  append([]cli.Flag{ownerFlag}, swapFlags...),
	Action: swapAction,
}

var preview = cli.Command{
	Name:   "preview",
	Usage:  "quote a swap without executing it",
	Flags:  swapFlags,
	Action: previewAction,
}

func swapAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	req := swapRequestFromFlags(ctx)
	req.Owner = ctx.String(ownerFlag.Name)

	receipt, err := svc.Swap(ctx.Context, req)
	if err != nil {
		return err
	}
	return printJSON(ctx, receipt)
}

func previewAction(ctx *cli.Context) error {
	svc, err := getPoolService(ctx)
	if err != nil {
		return err
	}

	preview, err := svc.PreviewSwap(ctx.Context, swapRequestFromFlags(ctx))
	if err != nil {
		return err
	}
	return printJSON(ctx, preview)
}

func swapRequestFromFlags(ctx *cli.Context) application.SwapRequest {
	return application.SwapRequest{
		InputAsset:  ctx.String("asset_in"),
		OutputAsset: ctx.String("asset_out"),
		Amount:      ctx.Uint64(amountFlag.Name),
	}
}
