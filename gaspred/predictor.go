// Package gaspred computes the next block's base gas from the previous
// block's EMA and base gas plus this block's gas used. All
// arithmetic is deterministic fixed-point integer math scaled by
// consensus.View.ScalingFactor; no floating point anywhere in this package.
package gaspred

import (
	"github.com/holiman/uint256"

	"github.com/opnet-network/indexer/consensus"
)

// State is the gas-state tuple carried across blocks.
type State struct {
	PrevEMA      int64
	PrevBaseGas  int64
	GasUsed      int64
	EMANext      int64
	BaseGasNext  int64
}

// Next computes the next block's EMA and base gas from prev and the gas
// used this block: EMA-smoothed utilization around the target gas level,
// clamped at MinBaseGas, using only fixed-point integer math.
func Next(view *consensus.View, prevEMA, prevBaseGas, gasUsed int64) State {
	sf := view.ScalingFactor
	if sf <= 0 {
		sf = 1
	}

	// gasUsedRatio is gas_used / TARGET_GAS expressed in ScalingFactor
	// fixed point.
	gasUsedRatio := mulDiv(gasUsed, sf, view.TargetGas)

	// EMA smoothing: ema_next = prev_ema + (ratio - prev_ema) / SMOOTHING_FACTOR.
	smoothing := view.SmoothingFactor
	if smoothing <= 0 {
		smoothing = 1
	}
	delta := gasUsedRatio - prevEMA
	emaNext := prevEMA + delta/smoothing

	// Base-gas adjustment: grow when utilization is above U_TARGET (by
	// ALPHA1), shrink when below (by ALPHA2), both expressed as a
	// ScalingFactor-denominated multiplier applied to prev_base_gas.
	var multiplier int64 // fixed point, denominator sf
	if emaNext > view.UTarget {
		over := emaNext - view.UTarget
		growth := over * view.Alpha1
		multiplier = sf + growth
		if view.SmoothOutGasIncrease && multiplier > 2*sf {
			// SMOOTH_OUT_GAS_INCREASE: dampen any single-block increase to
			// at most 2x prev_base_gas, per DESIGN.md's Open Question
			// decision.
			multiplier = 2 * sf
		}
	} else {
		under := view.UTarget - emaNext
		shrink := under * view.Alpha2
		multiplier = sf - shrink
		if multiplier < 0 {
			multiplier = 0
		}
	}

	baseGasNext := mulDivWide(prevBaseGas, multiplier, sf)
	floor := view.MinBaseGas * sf
	if baseGasNext < floor {
		baseGasNext = floor
	}

	return State{
		PrevEMA:     prevEMA,
		PrevBaseGas: prevBaseGas,
		GasUsed:     gasUsed,
		EMANext:     emaNext,
		BaseGasNext: baseGasNext,
	}
}

// mulDiv computes a*b/c using int64 arithmetic, sufficient for the ratio
// computations above where operands stay well within int64 range.
func mulDiv(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	return a * b / c
}

// mulDivWide computes a*b/c using 256-bit intermediate arithmetic so a
// large prev_base_gas times a fixed-point multiplier never silently
// overflows int64 before the division collapses it back down.
func mulDivWide(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	ua := uint256.NewInt(uint64(absInt64(a)))
	ub := uint256.NewInt(uint64(absInt64(b)))
	uc := uint256.NewInt(uint64(absInt64(c)))

	prod := new(uint256.Int).Mul(ua, ub)
	quot := new(uint256.Int).Div(prod, uc)

	result := int64(quot.Uint64())
	if (a < 0) != (b < 0) {
		result = -result
	}
	return result
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
