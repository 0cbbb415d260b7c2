package sysaction

import (
	"errors"
	"math/big"
	"testing"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/stakedb/memorydb"
)

const testActionKind ActionKind = "TEST_ACTION"

var errHandlerFailed = errors.New("handler failed")

// writingHandler writes a storage word before optionally failing, so tests
// can observe whether the executor reverted the write.
type writingHandler struct {
	fail bool
}

func (h *writingHandler) CanHandle(kind ActionKind) bool { return kind == testActionKind }

func (h *writingHandler) Handle(ctx *Context, _ *SysAction) error {
	ctx.StateDB.SetState(ctx.From, common.BigToHash(big.NewInt(1)), common.BigToHash(big.NewInt(42)))
	if h.fail {
		return errHandlerFailed
	}
	return nil
}

func TestExecuteRevertsFailedHandler(t *testing.T) {
	reg := &Registry{}
	h := &writingHandler{fail: true}
	reg.Register(h)

	db := state.New(memorydb.New())
	from := common.Address{0x01}
	ctx := &Context{From: from, StateDB: db}

	old := DefaultRegistry
	DefaultRegistry = reg
	defer func() { DefaultRegistry = old }()

	if err := ExecuteWithContext(ctx, &SysAction{Action: testActionKind}); err != errHandlerFailed {
		t.Fatalf("want errHandlerFailed, got %v", err)
	}
	// The handler's write must have been reverted.
	if got := db.GetState(from, common.BigToHash(big.NewInt(1))); !got.IsZero() {
		t.Fatalf("state after failed action: got %s, want zero", got)
	}

	// A successful run keeps the write.
	h.fail = false
	if err := ExecuteWithContext(ctx, &SysAction{Action: testActionKind}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := db.GetState(from, common.BigToHash(big.NewInt(1))); got.Big().Int64() != 42 {
		t.Fatalf("state after successful action: got %s, want 42", got)
	}
}

func TestExecuteUnknownAction(t *testing.T) {
	old := DefaultRegistry
	DefaultRegistry = &Registry{}
	defer func() { DefaultRegistry = old }()

	db := state.New(memorydb.New())
	if _, err := Execute(common.Address{0x01}, []byte(`{"action":"NOPE"}`), db); err == nil {
		t.Fatal("expected error for unregistered action kind")
	}
}
