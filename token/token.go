// Package token implements the fungible token ledger backing the staking
// module. Balances, allowances and the total supply live in storage slots
// owned by params.TokenAddress; staking burns from and mints to this ledger.
package token

import (
	"errors"
	"math/big"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/crypto"
	"github.com/gstake-network/gstake/params"
)

// Sentinel errors surfaced to action callers.
var (
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
	ErrNegativeAmount        = errors.New("token: negative amount")
)

var totalSupplySlot = common.BytesToHash(crypto.Keccak256([]byte("token\x00totalSupply")))

// tokenSlot hashes (addr[20B] || 0x00 || field) for a per-account storage slot.
func tokenSlot(addr common.Address, field string) common.Hash {
	key := make([]byte, 0, common.AddressLength+1+len(field))
	key = append(key, addr.Bytes()...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// allowanceSlot hashes (owner || spender || field) for an allowance slot.
func allowanceSlot(owner, spender common.Address) common.Hash {
	key := make([]byte, 0, 2*common.AddressLength+len("allowance"))
	key = append(key, owner.Bytes()...)
	key = append(key, spender.Bytes()...)
	key = append(key, "allowance"...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// Ledger is the token ledger view over a StateDB.
type Ledger struct {
	state *state.StateDB
}

// New creates a token ledger over the given state.
func New(st *state.StateDB) *Ledger {
	return &Ledger{state: st}
}

func (l *Ledger) getBig(slot common.Hash) *big.Int {
	return l.state.GetState(params.TokenAddress, slot).Big()
}

func (l *Ledger) setBig(slot common.Hash, v *big.Int) {
	l.state.SetState(params.TokenAddress, slot, common.BigToHash(v))
}

// BalanceOf returns the token balance of addr, 0 for unknown accounts.
func (l *Ledger) BalanceOf(addr common.Address) *big.Int {
	return l.getBig(tokenSlot(addr, "balance"))
}

// TotalSupply returns the circulating token supply.
func (l *Ledger) TotalSupply() *big.Int {
	return l.getBig(totalSupplySlot)
}

// Mint credits amount to addr and grows the total supply. Minting is
// infallible for non-negative amounts; a mint of 0 is a no-op.
func (l *Ledger) Mint(addr common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	balanceSlot := tokenSlot(addr, "balance")
	l.setBig(balanceSlot, new(big.Int).Add(l.getBig(balanceSlot), amount))
	l.setBig(totalSupplySlot, new(big.Int).Add(l.TotalSupply(), amount))
	return nil
}

// Burn removes amount from addr's balance and shrinks the total supply.
// Returns ErrInsufficientBalance without touching state if addr holds less
// than amount.
func (l *Ledger) Burn(addr common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	balanceSlot := tokenSlot(addr, "balance")
	balance := l.getBig(balanceSlot)
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if amount.Sign() == 0 {
		return nil
	}
	l.setBig(balanceSlot, new(big.Int).Sub(balance, amount))
	l.setBig(totalSupplySlot, new(big.Int).Sub(l.TotalSupply(), amount))
	return nil
}

// Transfer moves amount from one account to another. Supply is unchanged.
func (l *Ledger) Transfer(from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	fromSlot := tokenSlot(from, "balance")
	fromBal := l.getBig(fromSlot)
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	toSlot := tokenSlot(to, "balance")
	l.setBig(fromSlot, new(big.Int).Sub(fromBal, amount))
	l.setBig(toSlot, new(big.Int).Add(l.getBig(toSlot), amount))
	return nil
}

// Approve sets spender's allowance over owner's balance to amount.
func (l *Ledger) Approve(owner, spender common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	l.setBig(allowanceSlot(owner, spender), amount)
	return nil
}

// Allowance returns the remaining amount spender may move out of owner's
// balance.
func (l *Ledger) Allowance(owner, spender common.Address) *big.Int {
	return l.getBig(allowanceSlot(owner, spender))
}

// TransferFrom moves amount from `from` to `to` on behalf of spender,
// consuming allowance. The allowance check runs before the balance check so a
// spender can never learn more about a balance than its allowance permits.
func (l *Ledger) TransferFrom(spender, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	slot := allowanceSlot(from, spender)
	allowance := l.getBig(slot)
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := l.Transfer(from, to, amount); err != nil {
		return err
	}
	l.setBig(slot, new(big.Int).Sub(allowance, amount))
	return nil
}
