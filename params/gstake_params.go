// Copyright 2024 The gstake Authors
// This file is part of the gstake library.
//
// The gstake library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gstake library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the gstake library. If not, see <http://www.gnu.org/licenses/>.

package params

import "github.com/gstake-network/gstake/common"

// GSK system addresses — fixed, well-known addresses used by the module.
var (
	// SystemActionAddress is the sentinel To-address for system action
	// payloads. Actions addressed to it carry a JSON-encoded SysAction and
	// are dispatched by the sysaction executor.
	SystemActionAddress = common.HexToAddress("0x0000000000000000000000000000000047534b31") // "GSK1"

	// StakingAddress owns the stakeholder registry, stake ledger and reward
	// ledger storage slots.
	StakingAddress = common.HexToAddress("0x0000000000000000000000000000000047534b32") // "GSK2"

	// TokenAddress owns the token ledger storage slots: balances, allowances
	// and total supply.
	TokenAddress = common.HexToAddress("0x0000000000000000000000000000000047534b33") // "GSK3"
)

// Staking parameters.
const (
	// RewardRateDenominator fixes the distribution rate: every sweep credits
	// each stakeholder stake/RewardRateDenominator, i.e. 1%, using floor
	// division. Stakes below the denominator contribute 0 for the round.
	RewardRateDenominator = 100
)
