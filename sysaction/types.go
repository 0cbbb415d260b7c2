// Package sysaction implements the GSK system action protocol.
//
// System actions are messages addressed to params.SystemActionAddress. Their
// data field is a JSON-encoded SysAction message; sysaction.Execute()
// dispatches it to the appropriate handler (e.g. staking).
package sysaction

import "encoding/json"

// ActionKind identifies the type of system action.
type ActionKind string

const (
	// Staking lifecycle
	ActionStakeCreate ActionKind = "STAKE_CREATE"
	ActionStakeRemove ActionKind = "STAKE_REMOVE"

	// Reward lifecycle
	ActionRewardDistribute ActionKind = "REWARD_DISTRIBUTE"
	ActionRewardWithdraw   ActionKind = "REWARD_WITHDRAW"
)

// SysAction is the top-level envelope carried in an action message.
type SysAction struct {
	Action  ActionKind      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StakePayload is the payload for STAKE_CREATE / STAKE_REMOVE. Amount is an
// unsigned decimal string so arbitrary token quantities survive JSON.
type StakePayload struct {
	Amount string `json:"amount"`
}
