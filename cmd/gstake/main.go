// gstake is the command line entry point for the staking token module: it
// initializes a state database from a genesis file, applies staking actions
// against it, queries the ledgers and serves the HTTP API.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/naoina/toml"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/genesis"
	"github.com/gstake-network/gstake/internal/stakeapi"
	"github.com/gstake-network/gstake/stakedb/leveldb"
	"github.com/gstake-network/gstake/staking"
	"github.com/gstake-network/gstake/sysaction"
	"github.com/gstake-network/gstake/token"
)

var (
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the state database",
		Value: filepath.Join(os.Getenv("HOME"), ".gstake"),
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging level (trace, debug, info, warn, error)",
		Value: "info",
	}
	fromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "Caller address (hex)",
		Required: true,
	}
	amountFlag = &cli.StringFlag{
		Name:     "amount",
		Usage:    "Token amount (decimal)",
		Required: true,
	}
	genesisFlag = &cli.StringFlag{
		Name:     "genesis",
		Usage:    "Path to the genesis TOML file",
		Required: true,
	}
	httpAddrFlag = &cli.StringFlag{
		Name:  "http.addr",
		Usage: "HTTP API listen address",
		Value: "127.0.0.1:8547",
	}
)

func main() {
	app := &cli.App{
		Name:  "gstake",
		Usage: "staking token ledger",
		Flags: []cli.Flag{dataDirFlag, verbosityFlag},
		Before: func(ctx *cli.Context) error {
			level, err := log.ParseLevel(ctx.String(verbosityFlag.Name))
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Initialize the state database from a genesis file",
				Flags:  []cli.Flag{genesisFlag},
				Action: initGenesis,
			},
			{
				Name:   "stake",
				Usage:  "Lock tokens as stake",
				Flags:  []cli.Flag{fromFlag, amountFlag},
				Action: makeActionCommand(sysaction.ActionStakeCreate, true),
			},
			{
				Name:   "unstake",
				Usage:  "Unlock staked tokens",
				Flags:  []cli.Flag{fromFlag, amountFlag},
				Action: makeActionCommand(sysaction.ActionStakeRemove, true),
			},
			{
				Name:   "distribute",
				Usage:  "Run one reward distribution round (controller only)",
				Flags:  []cli.Flag{fromFlag},
				Action: makeActionCommand(sysaction.ActionRewardDistribute, false),
			},
			{
				Name:   "withdraw",
				Usage:  "Withdraw accrued rewards",
				Flags:  []cli.Flag{fromFlag},
				Action: makeActionCommand(sysaction.ActionRewardWithdraw, false),
			},
			{
				Name:   "query",
				Usage:  "Print stakeholders, stakes, rewards and balances",
				Action: query,
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Flags:  []cli.Flag{httpAddrFlag},
				Action: serve,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openState opens the datadir-backed state database.
func openState(ctx *cli.Context, readonly bool) (*state.StateDB, func(), error) {
	path := filepath.Join(ctx.String(dataDirFlag.Name), "state")
	db, err := leveldb.New(path, 0, 0, readonly)
	if err != nil {
		return nil, nil, fmt.Errorf("open state database: %w", err)
	}
	return state.New(db), func() { db.Close() }, nil
}

func parseFrom(ctx *cli.Context) (common.Address, error) {
	hex := ctx.String(fromFlag.Name)
	if !common.IsHexAddress(hex) {
		return common.Address{}, fmt.Errorf("invalid --from address %q", hex)
	}
	return common.HexToAddress(hex), nil
}

func initGenesis(ctx *cli.Context) error {
	raw, err := os.ReadFile(ctx.String(genesisFlag.Name))
	if err != nil {
		return err
	}
	var g genesis.Genesis
	if err := toml.Unmarshal(raw, &g); err != nil {
		return fmt.Errorf("parse genesis file: %w", err)
	}

	st, closeDB, err := openState(ctx, false)
	if err != nil {
		return err
	}
	defer closeDB()

	if !staking.Controller(st).IsZero() {
		return fmt.Errorf("state database already initialized")
	}
	if err := g.Apply(st); err != nil {
		return err
	}
	if err := st.Commit(); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"controller": g.Controller,
		"allocs":     len(g.Alloc),
	}).Info("initialized state database")
	return nil
}

// makeActionCommand builds a CLI action that submits one system action for
// the --from caller and commits on success.
func makeActionCommand(kind sysaction.ActionKind, wantsAmount bool) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		from, err := parseFrom(ctx)
		if err != nil {
			return err
		}
		var payload interface{}
		if wantsAmount {
			payload = &sysaction.StakePayload{Amount: ctx.String(amountFlag.Name)}
		}
		data, err := sysaction.MakeSysAction(kind, payload)
		if err != nil {
			return err
		}

		st, closeDB, err := openState(ctx, false)
		if err != nil {
			return err
		}
		defer closeDB()

		if _, err := sysaction.Execute(from, data, st); err != nil {
			return err
		}
		if err := st.Commit(); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"action": kind,
			"from":   from,
		}).Info("action applied")
		return nil
	}
}

func query(ctx *cli.Context) error {
	st, closeDB, err := openState(ctx, true)
	if err != nil {
		return err
	}
	defer closeDB()

	ledger := token.New(st)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Stakeholder", "Stake", "Reward", "Balance"})
	for _, addr := range staking.Stakeholders(st) {
		table.Append([]string{
			addr.Hex(),
			staking.StakeOf(st, addr).String(),
			staking.RewardOf(st, addr).String(),
			ledger.BalanceOf(addr).String(),
		})
	}
	table.SetFooter([]string{
		"total",
		staking.TotalStakes(st).String(),
		staking.TotalRewards(st).String(),
		ledger.TotalSupply().String(),
	})
	table.Render()
	return nil
}

func serve(ctx *cli.Context) error {
	st, closeDB, err := openState(ctx, false)
	if err != nil {
		return err
	}
	defer closeDB()

	addr := ctx.String(httpAddrFlag.Name)
	log.WithField("addr", addr).Info("serving HTTP API")
	return http.ListenAndServe(addr, stakeapi.NewServer(st).Handler())
}
