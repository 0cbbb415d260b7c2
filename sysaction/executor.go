package sysaction

import (
	"fmt"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/params"
)

// Context carries information available to a system-action handler.
type Context struct {
	From    common.Address
	StateDB *state.StateDB
}

// Handler is implemented by the staking sub-system.
type Handler interface {
	CanHandle(kind ActionKind) bool
	Handle(ctx *Context, sa *SysAction) error
}

// Registry holds registered handlers.
type Registry struct{ handlers []Handler }

// DefaultRegistry is the process-wide handler registry.
var DefaultRegistry = &Registry{}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) { r.handlers = append(r.handlers, h) }

// Execute decodes a system action and dispatches it to a registered handler.
// The state is snapshotted before dispatch and reverted on error, so a failed
// action is all-or-nothing: no partial ledger or registry mutation survives.
func Execute(from common.Address, data []byte, db *state.StateDB) (uint64, error) {
	sa, err := Decode(data)
	if err != nil {
		return params.SysActionGas, err
	}
	ctx := &Context{From: from, StateDB: db}
	return params.SysActionGas, ExecuteWithContext(ctx, sa)
}

// ExecuteWithContext dispatches a decoded action using a pre-built Context.
func ExecuteWithContext(ctx *Context, sa *SysAction) error {
	for _, h := range DefaultRegistry.handlers {
		if h.CanHandle(sa.Action) {
			snap := ctx.StateDB.Snapshot()
			if err := h.Handle(ctx, sa); err != nil {
				ctx.StateDB.RevertToSnapshot(snap)
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("unknown system action: %q", sa.Action)
}
