package staking

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/sysaction"
	"github.com/gstake-network/gstake/token"
)

// execute runs an encoded system action through the full executor path
// (decode, dispatch, snapshot/revert).
func execute(t *testing.T, db *state.StateDB, from common.Address, kind sysaction.ActionKind, payload interface{}) error {
	t.Helper()
	data, err := sysaction.MakeSysAction(kind, payload)
	if err != nil {
		t.Fatalf("encode action: %v", err)
	}
	_, err = sysaction.Execute(from, data, db)
	return err
}

func TestHandlerStakeLifecycle(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)
	SetController(db, controller)
	fund(db, a, 1000)

	if err := execute(t, db, a, sysaction.ActionStakeCreate, &sysaction.StakePayload{Amount: "600"}); err != nil {
		t.Fatalf("stake create: %v", err)
	}
	if err := execute(t, db, controller, sysaction.ActionRewardDistribute, nil); err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if err := execute(t, db, a, sysaction.ActionRewardWithdraw, nil); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if err := execute(t, db, a, sysaction.ActionStakeRemove, &sysaction.StakePayload{Amount: "600"}); err != nil {
		t.Fatalf("stake remove: %v", err)
	}

	// 1000 back plus the 6-token reward from one round on a 600 stake.
	if got := token.New(db).BalanceOf(a); got.Cmp(big.NewInt(1006)) != 0 {
		t.Fatalf("final balance: got %v, want 1006", got)
	}
	if ok, _ := IsStakeholder(db, a); ok {
		t.Fatal("still registered after full lifecycle")
	}
}

func TestHandlerRejectsBadAmounts(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)
	fund(db, a, 1000)

	for _, amount := range []string{"", "-5", "1.5", "abc"} {
		err := execute(t, db, a, sysaction.ActionStakeCreate, &sysaction.StakePayload{Amount: amount})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %q: want ErrInvalidAmount, got %v", amount, err)
		}
	}
	if got := StakeOf(db, a); got.Sign() != 0 {
		t.Fatalf("stake after rejected actions: got %v, want 0", got)
	}
}

func TestHandlerRevertsOnFailure(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)
	fund(db, a, 100)

	// A failed action must leave every slot exactly as it was: force an
	// underflow remove after a successful create, then check nothing moved.
	if err := execute(t, db, a, sysaction.ActionStakeCreate, &sysaction.StakePayload{Amount: "100"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := execute(t, db, a, sysaction.ActionStakeRemove, &sysaction.StakePayload{Amount: "200"}); err != ErrUnderflow {
		t.Fatalf("want ErrUnderflow, got %v", err)
	}
	if got := StakeOf(db, a); got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("stake after reverted remove: got %v, want 100", got)
	}
	if got := token.New(db).BalanceOf(a); got.Sign() != 0 {
		t.Fatalf("balance after reverted remove: got %v, want 0", got)
	}
}

func TestHandlerUnknownActionAndMalformedPayload(t *testing.T) {
	db := newTestState()
	a := tAddr(0x01)

	if _, err := sysaction.Execute(a, []byte(`{"action":"NO_SUCH_ACTION"}`), db); err == nil {
		t.Fatal("expected error for unknown action")
	}
	data, _ := json.Marshal(&sysaction.SysAction{
		Action:  sysaction.ActionStakeCreate,
		Payload: json.RawMessage(`{"amount":42}`), // number, not string
	})
	if _, err := sysaction.Execute(a, data, db); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount for malformed payload, got %v", err)
	}
}
