// Package staking implements stakeholder registry, stake ledger, reward
// ledger and the controller-gated reward distribution sweep.
package staking

import "errors"

// StakeholderStatus is the registry lifecycle state of an address, derived
// from its stake amount.
type StakeholderStatus uint8

const (
	// StatusAbsent means the address holds no stake and is not in the registry.
	StatusAbsent StakeholderStatus = 0
	// StatusPresent means the address holds a non-zero stake and is registered.
	StatusPresent StakeholderStatus = 1
)

// Sentinel errors returned by system action handlers.
var (
	ErrUnderflow     = errors.New("staking: removal exceeds current stake")
	ErrUnauthorized  = errors.New("staking: caller is not the controller")
	ErrInvalidAmount = errors.New("staking: invalid amount")
)
