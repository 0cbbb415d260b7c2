package staking

import (
	"math/big"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/token"
)

// StakeOf returns the staked amount of addr, 0 for unknown addresses.
func StakeOf(db *state.StateDB, addr common.Address) *big.Int {
	return getStake(db, addr)
}

// TotalStakes sums the stakes of every address currently in the registry.
func TotalStakes(db *state.StateDB) *big.Int {
	total := new(big.Int)
	for _, addr := range Stakeholders(db) {
		total.Add(total, getStake(db, addr))
	}
	return total
}

// CreateStake locks amount for caller: the tokens are burned from the
// caller's balance and the caller's stake ledger entry grows by amount. The
// caller joins the registry on the 0 -> non-zero transition. A burn failure
// (insufficient balance) aborts with no state change.
//
// An amount of 0 is a harmless no-op: nothing is burned and the caller is
// not registered.
func CreateStake(db *state.StateDB, caller common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}

	// Burn first: the fallible step precedes every ledger write.
	if err := token.New(db).Burn(caller, amount); err != nil {
		return err
	}

	stake := getStake(db, caller)
	if stake.Sign() == 0 {
		AddStakeholder(db, caller)
	}
	setStake(db, caller, new(big.Int).Add(stake, amount))
	return nil
}

// RemoveStake unlocks amount for caller: the stake ledger entry shrinks by
// amount and the tokens are minted back to the caller's balance. The caller
// leaves the registry when the resulting stake is exactly 0. Removing more
// than the current stake fails with ErrUnderflow and no state change.
func RemoveStake(db *state.StateDB, caller common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	stake := getStake(db, caller)
	if amount.Cmp(stake) > 0 {
		return ErrUnderflow
	}

	remaining := new(big.Int).Sub(stake, amount)
	setStake(db, caller, remaining)
	if remaining.Sign() == 0 {
		RemoveStakeholder(db, caller)
	}
	return token.New(db).Mint(caller, amount)
}
