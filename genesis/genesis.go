// Package genesis seeds a fresh state database: it installs the distribution
// controller and mints the initial token allocations.
package genesis

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/staking"
	"github.com/gstake-network/gstake/token"
)

// Genesis describes the initial state, usually decoded from a TOML file.
type Genesis struct {
	// Controller is the only address allowed to trigger reward distribution.
	Controller string `toml:"controller"`

	// Alloc maps hex addresses to initial token balances (decimal strings).
	Alloc map[string]string `toml:"alloc"`
}

// Apply writes the genesis state into db. It validates every address and
// amount before touching state, so a bad file never half-initializes a
// database.
func (g *Genesis) Apply(db *state.StateDB) error {
	if !common.IsHexAddress(g.Controller) {
		return fmt.Errorf("genesis: invalid controller address %q", g.Controller)
	}

	type allocation struct {
		addr   common.Address
		amount *big.Int
	}
	allocs := make([]allocation, 0, len(g.Alloc))
	for addrHex, amountDec := range g.Alloc {
		if !common.IsHexAddress(addrHex) {
			return fmt.Errorf("genesis: invalid alloc address %q", addrHex)
		}
		amount := new(big.Int)
		if _, ok := amount.SetString(amountDec, 10); !ok || amount.Sign() < 0 {
			return fmt.Errorf("genesis: invalid alloc amount %q for %s", amountDec, addrHex)
		}
		allocs = append(allocs, allocation{common.HexToAddress(addrHex), amount})
	}
	// Mint in address order so genesis application is deterministic.
	sort.Slice(allocs, func(i, j int) bool {
		return allocs[i].addr.Hex() < allocs[j].addr.Hex()
	})

	staking.SetController(db, common.HexToAddress(g.Controller))
	ledger := token.New(db)
	for _, a := range allocs {
		if err := ledger.Mint(a.addr, a.amount); err != nil {
			return fmt.Errorf("genesis: mint %v to %s: %w", a.amount, a.addr, err)
		}
	}
	return nil
}
