package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, datadir string, args ...string) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	app := newApp()
	app.Writer = buf

	err := app.Run(append(
		[]string{"tdexpool", "--datadir", datadir, "--log_level", "2"}, args...,
	))
	require.NoError(t, err)
	return buf.Bytes()
}

func TestCommands(t *testing.T) {
	datadir := t.TempDir()

	runCommand(t, datadir, "fund", "--owner", "alice", "--asset", "lbtc", "--amount", "1000000")
	runCommand(t, datadir, "fund", "--owner", "alice", "--asset", "usdt", "--amount", "2000000")
	runCommand(t, datadir, "fund", "--owner", "bob", "--asset", "lbtc", "--amount", "100300")

	out := runCommand(
		t, datadir, "deposit", "--owner", "alice",
		"--asset_x", "usdt", "--amount_x", "2000000",
		"--asset_y", "lbtc", "--amount_y", "1000000",
	)
	deposit := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(out, &deposit))
	require.EqualValues(t, 1414213, deposit["SharesIssued"])

	out = runCommand(
		t, datadir, "preview",
		"--asset_in", "lbtc", "--asset_out", "usdt", "--amount", "100000",
	)
	preview := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(out, &preview))
	require.EqualValues(t, 100300, preview["AmountIn"])
	require.EqualValues(t, 181819, preview["AmountOut"])

	runCommand(
		t, datadir, "swap", "--owner", "bob",
		"--asset_in", "lbtc", "--asset_out", "usdt", "--amount", "100000",
	)

	out = runCommand(t, datadir, "balance", "--account", "bob")
	balances := map[string]uint64{}
	require.NoError(t, json.Unmarshal(out, &balances))
	require.Equal(t, uint64(181819), balances["usdt"])

	out = runCommand(t, datadir, "withdraw", "--owner", "alice", "--asset_x", "lbtc", "--asset_y", "usdt")
	withdraw := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(out, &withdraw))
	require.EqualValues(t, 1100300, withdraw["PayoutA"])

	out = runCommand(t, datadir, "positions", "--owner", "alice")
	var positions []interface{}
	require.NoError(t, json.Unmarshal(out, &positions))
	require.Empty(t, positions)
}

func TestFailingCommands(t *testing.T) {
	datadir := t.TempDir()

	app := newApp()
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{
		"tdexpool", "--datadir", datadir,
		"swap", "--owner", "bob",
		"--asset_in", "lbtc", "--asset_out", "usdt", "--amount", "10",
	})
	require.Error(t, err)

	err = app.Run([]string{
		"tdexpool", "--datadir", datadir, "--db_type", "mysql", "pools",
	})
	require.Error(t, err)
}
