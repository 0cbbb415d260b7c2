package staking

import (
	"math/big"
	"testing"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/token"
)

// fund mints balance tokens to addr.
func fund(db *state.StateDB, addr common.Address, balance int64) {
	if err := token.New(db).Mint(addr, big.NewInt(balance)); err != nil {
		panic(err)
	}
}

func TestCreateStakeBurnsAndRegisters(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)
	fund(db, a, 1000)

	if err := CreateStake(db, a, big.NewInt(300)); err != nil {
		t.Fatalf("create stake: %v", err)
	}
	if got := StakeOf(db, a); got.Cmp(big.NewInt(300)) != 0 {
		t.Errorf("stake: got %v, want 300", got)
	}
	if got := token.New(db).BalanceOf(a); got.Cmp(big.NewInt(700)) != 0 {
		t.Errorf("balance: got %v, want 700", got)
	}
	if ok, _ := IsStakeholder(db, a); !ok {
		t.Error("staker not registered")
	}
	if got := StatusOf(db, a); got != StatusPresent {
		t.Errorf("status: got %v, want StatusPresent", got)
	}
}

func TestCreateStakeInsufficientBalance(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)
	fund(db, a, 100)

	if err := CreateStake(db, a, big.NewInt(101)); err != token.ErrInsufficientBalance {
		t.Fatalf("want ErrInsufficientBalance, got %v", err)
	}
	// No partial state change.
	if got := StakeOf(db, a); got.Sign() != 0 {
		t.Errorf("stake after failed create: got %v, want 0", got)
	}
	if ok, _ := IsStakeholder(db, a); ok {
		t.Error("failed create registered the caller")
	}
	if got := token.New(db).BalanceOf(a); got.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("balance after failed create: got %v, want 100", got)
	}
}

func TestCreateStakeZeroIsNoop(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)
	fund(db, a, 100)

	if err := CreateStake(db, a, big.NewInt(0)); err != nil {
		t.Fatalf("create stake 0: %v", err)
	}
	if ok, _ := IsStakeholder(db, a); ok {
		t.Error("zero stake registered the caller")
	}
	if got := StakeOf(db, a); got.Sign() != 0 {
		t.Errorf("stake: got %v, want 0", got)
	}
}

func TestCreateStakeTopUpDoesNotDuplicate(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)
	fund(db, a, 1000)

	if err := CreateStake(db, a, big.NewInt(200)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := CreateStake(db, a, big.NewInt(300)); err != nil {
		t.Fatalf("second create: %v", err)
	}
	if got := StakeOf(db, a); got.Cmp(big.NewInt(500)) != 0 {
		t.Errorf("stake: got %v, want 500", got)
	}
	assertRegistry(t, db, []common.Address{a})
}

func TestStakeRoundTrip(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)
	fund(db, a, 1000)

	if err := CreateStake(db, a, big.NewInt(400)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := RemoveStake(db, a, big.NewInt(400)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := token.New(db).BalanceOf(a); got.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("balance: got %v, want 1000 restored", got)
	}
	if got := StakeOf(db, a); got.Sign() != 0 {
		t.Errorf("stake: got %v, want 0", got)
	}
	if ok, _ := IsStakeholder(db, a); ok {
		t.Error("caller still registered after full unstake")
	}
}

func TestPartialRemoveKeepsRegistration(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)
	fund(db, a, 1000)
	CreateStake(db, a, big.NewInt(400))

	if err := RemoveStake(db, a, big.NewInt(150)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := StakeOf(db, a); got.Cmp(big.NewInt(250)) != 0 {
		t.Errorf("stake: got %v, want 250", got)
	}
	if ok, _ := IsStakeholder(db, a); !ok {
		t.Error("partial unstake deregistered the caller")
	}
}

func TestRemoveStakeUnderflow(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)
	fund(db, a, 1000)
	CreateStake(db, a, big.NewInt(100))

	if err := RemoveStake(db, a, big.NewInt(101)); err != ErrUnderflow {
		t.Fatalf("want ErrUnderflow, got %v", err)
	}
	// Stake, registry and balance unchanged.
	if got := StakeOf(db, a); got.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("stake: got %v, want 100", got)
	}
	if ok, _ := IsStakeholder(db, a); !ok {
		t.Error("failed remove deregistered the caller")
	}
	if got := token.New(db).BalanceOf(a); got.Cmp(big.NewInt(900)) != 0 {
		t.Errorf("balance: got %v, want 900", got)
	}
}

func TestTotalStakesMatchesRegistry(t *testing.T) {
	db := newTestState()
	stakes := map[byte]int64{0x01: 250, 0x02: 99, 0x03: 10000}
	for b, s := range stakes {
		fund(db, tAddr(b), s)
		if err := CreateStake(db, tAddr(b), big.NewInt(s)); err != nil {
			t.Fatalf("create stake for %#x: %v", b, err)
		}
	}

	want := big.NewInt(250 + 99 + 10000)
	if got := TotalStakes(db); got.Cmp(want) != 0 {
		t.Fatalf("total stakes: got %v, want %v", got, want)
	}

	// Removing one stakeholder shrinks the sum by exactly its stake.
	if err := RemoveStake(db, tAddr(0x02), big.NewInt(99)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	want.Sub(want, big.NewInt(99))
	if got := TotalStakes(db); got.Cmp(want) != 0 {
		t.Fatalf("total stakes after remove: got %v, want %v", got, want)
	}
}
