package staking

import (
	"fmt"
	"math/big"

	"github.com/gstake-network/gstake/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&stakingHandler{})
}

// stakingHandler implements sysaction.Handler for stake and reward actions.
type stakingHandler struct{}

func (h *stakingHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionStakeCreate,
		sysaction.ActionStakeRemove,
		sysaction.ActionRewardDistribute,
		sysaction.ActionRewardWithdraw:
		return true
	}
	return false
}

func (h *stakingHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionStakeCreate:
		amount, err := decodeAmount(sa)
		if err != nil {
			return err
		}
		return CreateStake(ctx.StateDB, ctx.From, amount)

	case sysaction.ActionStakeRemove:
		amount, err := decodeAmount(sa)
		if err != nil {
			return err
		}
		return RemoveStake(ctx.StateDB, ctx.From, amount)

	case sysaction.ActionRewardDistribute:
		return DistributeRewards(ctx.StateDB, ctx.From)

	case sysaction.ActionRewardWithdraw:
		return WithdrawReward(ctx.StateDB, ctx.From)
	}
	return fmt.Errorf("staking handler: unsupported action %q", sa.Action)
}

// decodeAmount parses the unsigned decimal amount out of a stake payload.
func decodeAmount(sa *sysaction.SysAction) (*big.Int, error) {
	var p sysaction.StakePayload
	if err := sysaction.DecodePayload(sa, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if p.Amount == "" {
		return nil, fmt.Errorf("%w: missing amount", ErrInvalidAmount)
	}
	amount := new(big.Int)
	if _, ok := amount.SetString(p.Amount, 10); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, p.Amount)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, p.Amount)
	}
	return amount, nil
}
