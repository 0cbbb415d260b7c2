package token

import (
	"math/big"
	"testing"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/stakedb/memorydb"
)

// newTestLedger creates a fresh in-memory ledger for tests.
func newTestLedger() *Ledger {
	return New(state.New(memorydb.New()))
}

// tAddr generates a deterministic test address.
func tAddr(b byte) common.Address { return common.Address{b} }

func TestMintGrowsBalanceAndSupply(t *testing.T) {
	l := newTestLedger()
	a := tAddr(0x01)

	if err := l.Mint(a, big.NewInt(500)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if got := l.BalanceOf(a); got.Cmp(big.NewInt(500)) != 0 {
		t.Errorf("balance: got %v, want 500", got)
	}
	if got := l.TotalSupply(); got.Cmp(big.NewInt(500)) != 0 {
		t.Errorf("supply: got %v, want 500", got)
	}
}

func TestBurnInsufficientBalance(t *testing.T) {
	l := newTestLedger()
	a := tAddr(0x01)
	l.Mint(a, big.NewInt(100))

	if err := l.Burn(a, big.NewInt(101)); err != ErrInsufficientBalance {
		t.Fatalf("burn: want ErrInsufficientBalance, got %v", err)
	}
	// State untouched on failure.
	if got := l.BalanceOf(a); got.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("balance after failed burn: got %v, want 100", got)
	}
	if got := l.TotalSupply(); got.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("supply after failed burn: got %v, want 100", got)
	}
}

func TestBurnShrinksSupply(t *testing.T) {
	l := newTestLedger()
	a := tAddr(0x01)
	l.Mint(a, big.NewInt(100))

	if err := l.Burn(a, big.NewInt(40)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if got := l.BalanceOf(a); got.Cmp(big.NewInt(60)) != 0 {
		t.Errorf("balance: got %v, want 60", got)
	}
	if got := l.TotalSupply(); got.Cmp(big.NewInt(60)) != 0 {
		t.Errorf("supply: got %v, want 60", got)
	}
}

func TestMintBurnZeroIsNoop(t *testing.T) {
	l := newTestLedger()
	a := tAddr(0x01)
	if err := l.Mint(a, big.NewInt(0)); err != nil {
		t.Fatalf("mint 0: %v", err)
	}
	if err := l.Burn(a, big.NewInt(0)); err != nil {
		t.Fatalf("burn 0 on empty account: %v", err)
	}
	if got := l.TotalSupply(); got.Sign() != 0 {
		t.Errorf("supply: got %v, want 0", got)
	}
}

func TestTransfer(t *testing.T) {
	l := newTestLedger()
	a, b := tAddr(0x01), tAddr(0x02)
	l.Mint(a, big.NewInt(100))

	if err := l.Transfer(a, b, big.NewInt(30)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := l.BalanceOf(a); got.Cmp(big.NewInt(70)) != 0 {
		t.Errorf("from balance: got %v, want 70", got)
	}
	if got := l.BalanceOf(b); got.Cmp(big.NewInt(30)) != 0 {
		t.Errorf("to balance: got %v, want 30", got)
	}
	if err := l.Transfer(a, b, big.NewInt(71)); err != ErrInsufficientBalance {
		t.Fatalf("overdraw: want ErrInsufficientBalance, got %v", err)
	}
}

func TestTransferFromConsumesAllowance(t *testing.T) {
	l := newTestLedger()
	owner, spender, dst := tAddr(0x01), tAddr(0x02), tAddr(0x03)
	l.Mint(owner, big.NewInt(100))
	l.Approve(owner, spender, big.NewInt(50))

	if err := l.TransferFrom(spender, owner, dst, big.NewInt(30)); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	if got := l.Allowance(owner, spender); got.Cmp(big.NewInt(20)) != 0 {
		t.Errorf("allowance: got %v, want 20", got)
	}
	if err := l.TransferFrom(spender, owner, dst, big.NewInt(21)); err != ErrInsufficientAllowance {
		t.Fatalf("over-allowance: want ErrInsufficientAllowance, got %v", err)
	}
}
