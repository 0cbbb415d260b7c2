package staking

import (
	"math/big"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/params"
	"github.com/gstake-network/gstake/token"
	log "github.com/sirupsen/logrus"
)

// RewardOf returns the accrued, not yet withdrawn reward of addr.
func RewardOf(db *state.StateDB, addr common.Address) *big.Int {
	return getReward(db, addr)
}

// TotalRewards sums the accrued rewards of every address currently in the
// registry.
func TotalRewards(db *state.StateDB) *big.Int {
	total := new(big.Int)
	for _, addr := range Stakeholders(db) {
		total.Add(total, getReward(db, addr))
	}
	return total
}

// CalculateReward returns the reward one distribution round credits to addr:
// stake / params.RewardRateDenominator with floor division, so stakes below
// the denominator contribute 0 for the round.
func CalculateReward(db *state.StateDB, addr common.Address) *big.Int {
	return new(big.Int).Div(getStake(db, addr), big.NewInt(params.RewardRateDenominator))
}

// DistributeRewards runs one distribution round: every current stakeholder's
// reward ledger entry grows by CalculateReward. Only the controller may call
// it; any other caller fails with ErrUnauthorized and no state change.
//
// Rounds are additive and caller-paced: there is no "already distributed"
// bookkeeping, a second immediate call credits the same amounts again.
func DistributeRewards(db *state.StateDB, caller common.Address) error {
	if caller != Controller(db) {
		return ErrUnauthorized
	}
	for _, addr := range Stakeholders(db) {
		reward := CalculateReward(db, addr)
		if reward.Sign() == 0 {
			continue
		}
		addReward(db, addr, reward)

		log.WithFields(log.Fields{
			"stakeholder": addr,
			"stake":       getStake(db, addr),
			"reward":      reward,
		}).Trace("staking: distributed reward")
	}
	return nil
}

// WithdrawReward pays out the caller's accrued reward: the reward ledger
// entry is zeroed first, then the amount is minted to the caller's token
// balance. The ordering matters — a reentrant call during the mint observes
// a zero reward and withdraws nothing. A zero reward is a no-op mint of 0.
func WithdrawReward(db *state.StateDB, caller common.Address) error {
	reward := getReward(db, caller)
	clearReward(db, caller)
	return token.New(db).Mint(caller, reward)
}
