package gaspred

import (
	"testing"

	"github.com/opnet-network/indexer/consensus"
)

func TestNextClampsAtMinBaseGas(t *testing.T) {
	view := consensus.DefaultMainnet()
	st := Next(view, 0, view.PrevBaseGasDefault(), 0)
	if st.BaseGasNext < view.MinBaseGas*view.ScalingFactor {
		t.Fatalf("base gas fell below floor: %d", st.BaseGasNext)
	}
}

func TestNextGrowsWhenOverTarget(t *testing.T) {
	view := consensus.DefaultMainnet()
	prevBase := view.PrevBaseGasDefault()
	st := Next(view, view.UTarget, prevBase, view.TargetGas*2)
	if st.BaseGasNext <= prevBase {
		t.Fatalf("expected base gas to grow when over target, got %d <= %d", st.BaseGasNext, prevBase)
	}
}

func TestNextShrinksWhenUnderTarget(t *testing.T) {
	view := consensus.DefaultMainnet()
	prevBase := view.PrevBaseGasDefault() * 10
	st := Next(view, view.UTarget, prevBase, 0)
	if st.BaseGasNext >= prevBase {
		t.Fatalf("expected base gas to shrink when under target, got %d >= %d", st.BaseGasNext, prevBase)
	}
}

func TestNextDeterministic(t *testing.T) {
	view := consensus.DefaultMainnet()
	a := Next(view, 100, view.PrevBaseGasDefault(), 5_000_000)
	b := Next(view, 100, view.PrevBaseGasDefault(), 5_000_000)
	if a != b {
		t.Fatal("Next is not deterministic for identical inputs")
	}
}

func TestSmoothOutCapsGrowthAtDoubling(t *testing.T) {
	view := consensus.DefaultMainnet()
	view.SmoothOutGasIncrease = true
	prevBase := view.PrevBaseGasDefault()
	st := Next(view, view.ScalingFactor, prevBase, view.TargetGas*100)
	if st.BaseGasNext > 2*prevBase {
		t.Fatalf("base gas grew more than 2x despite SMOOTH_OUT_GAS_INCREASE: %d > %d", st.BaseGasNext, 2*prevBase)
	}
}
