package staking

import (
	"encoding/binary"
	"math/big"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/crypto"
	"github.com/gstake-network/gstake/params"
)

// --- slot derivation ---

// stakingSlot hashes (addr[20B] || 0x00 || field) for a per-address storage
// slot. addr is always exactly 20 bytes — no length-extension ambiguity.
func stakingSlot(addr common.Address, field string) common.Hash {
	key := make([]byte, 0, common.AddressLength+1+len(field))
	key = append(key, addr.Bytes()...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// stakeholderCountSlot stores the current registry length (uint64).
var stakeholderCountSlot = common.BytesToHash(
	crypto.Keccak256([]byte("staking\x00stakeholderCount")))

// controllerSlot stores the address authorized to trigger distributions.
var controllerSlot = common.BytesToHash(
	crypto.Keccak256([]byte("staking\x00controller")))

// stakeholderListSlot returns the slot for the i-th registry entry (0-based).
func stakeholderListSlot(i uint64) common.Hash {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], i)
	return common.BytesToHash(
		crypto.Keccak256(append([]byte("staking\x00stakeholderList\x00"), idx[:]...)))
}

// --- registry state ---

func readStakeholderCount(db *state.StateDB) uint64 {
	raw := db.GetState(params.StakingAddress, stakeholderCountSlot)
	return binary.BigEndian.Uint64(raw[24:])
}

func writeStakeholderCount(db *state.StateDB, n uint64) {
	var val common.Hash
	binary.BigEndian.PutUint64(val[24:], n) // right-aligned in 32 bytes
	db.SetState(params.StakingAddress, stakeholderCountSlot, val)
}

func readStakeholderAt(db *state.StateDB, i uint64) common.Address {
	raw := db.GetState(params.StakingAddress, stakeholderListSlot(i))
	return common.BytesToAddress(raw[12:]) // address is right-aligned
}

func writeStakeholderAt(db *state.StateDB, i uint64, addr common.Address) {
	var val common.Hash
	copy(val[12:], addr.Bytes())
	db.SetState(params.StakingAddress, stakeholderListSlot(i), val)
}

func clearStakeholderAt(db *state.StateDB, i uint64) {
	db.SetState(params.StakingAddress, stakeholderListSlot(i), common.Hash{})
}

// The index map stores position+1 per address; 0 means absent. This keeps
// membership O(1) and removes the "index 0 ambiguous with not-found" hazard
// a bare (found, index) pair would have.
func readIndexPlusOne(db *state.StateDB, addr common.Address) uint64 {
	raw := db.GetState(params.StakingAddress, stakingSlot(addr, "registryIndex"))
	return binary.BigEndian.Uint64(raw[24:])
}

func writeIndexPlusOne(db *state.StateDB, addr common.Address, n uint64) {
	var val common.Hash
	binary.BigEndian.PutUint64(val[24:], n)
	db.SetState(params.StakingAddress, stakingSlot(addr, "registryIndex"), val)
}

// --- stake and reward ledgers ---

func getStake(db *state.StateDB, addr common.Address) *big.Int {
	return db.GetState(params.StakingAddress, stakingSlot(addr, "stake")).Big()
}

func setStake(db *state.StateDB, addr common.Address, amount *big.Int) {
	db.SetState(params.StakingAddress, stakingSlot(addr, "stake"), common.BigToHash(amount))
}

func getReward(db *state.StateDB, addr common.Address) *big.Int {
	return db.GetState(params.StakingAddress, stakingSlot(addr, "reward")).Big()
}

func addReward(db *state.StateDB, addr common.Address, delta *big.Int) {
	cur := getReward(db, addr)
	db.SetState(params.StakingAddress, stakingSlot(addr, "reward"),
		common.BigToHash(new(big.Int).Add(cur, delta)))
}

func clearReward(db *state.StateDB, addr common.Address) {
	db.SetState(params.StakingAddress, stakingSlot(addr, "reward"), common.Hash{})
}

// --- controller ---

// Controller returns the address authorized to trigger reward distributions.
func Controller(db *state.StateDB) common.Address {
	raw := db.GetState(params.StakingAddress, controllerSlot)
	return common.BytesToAddress(raw[12:])
}

// SetController writes the distribution controller. Called once at genesis
// initialization.
func SetController(db *state.StateDB, addr common.Address) {
	var val common.Hash
	copy(val[12:], addr.Bytes())
	db.SetState(params.StakingAddress, controllerSlot, val)
}

// StatusOf derives the registry lifecycle state of addr from its stake.
func StatusOf(db *state.StateDB, addr common.Address) StakeholderStatus {
	if getStake(db, addr).Sign() > 0 {
		return StatusPresent
	}
	return StatusAbsent
}
