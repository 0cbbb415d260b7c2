package staking

import (
	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
)

// IsStakeholder reports whether addr is in the stakeholder registry and, if
// so, its current position. The boolean is authoritative: the index is only
// meaningful when the boolean is true, and registry positions are not stable
// across removals (removal swaps the last entry into the vacated position).
func IsStakeholder(db *state.StateDB, addr common.Address) (bool, uint64) {
	idx := readIndexPlusOne(db, addr)
	if idx == 0 {
		return false, 0
	}
	return true, idx - 1
}

// AddStakeholder appends addr to the registry. Idempotent: a no-op if addr is
// already present.
func AddStakeholder(db *state.StateDB, addr common.Address) {
	if ok, _ := IsStakeholder(db, addr); ok {
		return
	}
	n := readStakeholderCount(db)
	writeStakeholderAt(db, n, addr)
	writeIndexPlusOne(db, addr, n+1)
	writeStakeholderCount(db, n+1)
}

// RemoveStakeholder removes addr from the registry by swapping the last entry
// into its position and truncating. A no-op if addr is absent. When addr is
// the last entry the swap degenerates to clearing the tail slot.
func RemoveStakeholder(db *state.StateDB, addr common.Address) {
	ok, i := IsStakeholder(db, addr)
	if !ok {
		return
	}
	last := readStakeholderCount(db) - 1
	if i != last {
		moved := readStakeholderAt(db, last)
		writeStakeholderAt(db, i, moved)
		writeIndexPlusOne(db, moved, i+1)
	}
	clearStakeholderAt(db, last)
	writeIndexPlusOne(db, addr, 0)
	writeStakeholderCount(db, last)
}

// Stakeholders returns the current registry entries in storage order.
func Stakeholders(db *state.StateDB) []common.Address {
	n := readStakeholderCount(db)
	out := make([]common.Address, 0, n)
	for i := uint64(0); i < n; i++ {
		out = append(out, readStakeholderAt(db, i))
	}
	return out
}
