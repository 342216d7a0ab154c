// Package consensus holds OP_NET's network parameters as an explicit value
// threaded through every component's constructor. There is no process-wide
// mutable singleton: callers that need the current base-layer height go
// through the atomic counter on a View they were handed, never a package
// global.
package consensus

import "sync/atomic"

// Network tags which network a View's parameter set is for; DefaultMainnet
// builds the Mainnet set.
type Network uint8

const (
	Mainnet Network = iota
	Testnet
	Regtest
)

// View is the full set of consensus parameters plus the mutable, atomically
// updated chain-height cursor the mempool admission path consults.
type View struct {
	Network Network

	// Gas predictor parameters.
	MinBaseGas           int64
	TargetGas            int64
	SmoothingFactor      int64
	Alpha1               int64
	Alpha2               int64
	UTarget              int64 // fixed-point, denominator ScalingFactor
	ScalingFactor         int64
	SmoothOutGasIncrease bool

	// Block pipeline gas limits.
	PanicGasCost      int64
	MaxTheoreticalGas int64

	// Envelope size/version caps.
	MaxContractSizeCompressed int
	MaxCalldataSizeCompressed int
	MaxDecompressedSize       int
	CurrentDeploymentVersion  uint8
	MaximumInputs             int
	MaximumOutputs            int
	MaxBurnedFeeSat           int64
	RewardTimelock            int64

	// Mempool parameters.
	ExpirationBlocks                    uint64
	MinimalPSBTAcceptanceFeeVBPerSat    int64
	MaxRawTxSize                        int
	MaxPSBTSize                         int

	// WebSocket parameters.
	MaxSubscriptionsPerConn int
	RequestTimeoutSeconds   int

	height atomic.Uint64
	active atomic.Bool
}

// DefaultMainnet returns the parameter set used in production. All
// arithmetic here is fixed-point; no floats anywhere in the consensus
// parameter set.
func DefaultMainnet() *View {
	v := &View{
		Network:                   Mainnet,
		MinBaseGas:                1_000,
		TargetGas:                 15_000_000,
		SmoothingFactor:           8,
		Alpha1:                    2,
		Alpha2:                    8,
		ScalingFactor:             1_000_000,
		UTarget:                   500_000, // 0.5 in ScalingFactor fixed point
		SmoothOutGasIncrease:      true,
		PanicGasCost:              1_000_000,
		MaxTheoreticalGas:         3_000_000_000,
		MaxContractSizeCompressed: 128 * 1024,
		MaxCalldataSizeCompressed: 64 * 1024,
		MaxDecompressedSize:       4 * 1024 * 1024,
		CurrentDeploymentVersion:  1,
		MaximumInputs:             50,
		MaximumOutputs:            50,
		MaxBurnedFeeSat:           2000,
		RewardTimelock:            100,
		ExpirationBlocks:          288, // ~2 days at 10 min/block
		MinimalPSBTAcceptanceFeeVBPerSat: 2,
		MaxRawTxSize:              400 * 1024,
		MaxPSBTSize:               1024 * 1024,
		MaxSubscriptionsPerConn:   32,
		RequestTimeoutSeconds:     30,
	}
	v.active.Store(true)
	return v
}

// SetBlockHeight is the single entry point that updates the atomic height
// counter the admission path consults; never mutate height any other way.
func (v *View) SetBlockHeight(h uint64) { v.height.Store(h) }

func (v *View) BlockHeight() uint64 { return v.height.Load() }

func (v *View) SetActive(active bool) { v.active.Store(active) }

// IsActive reports whether consensus has activated at the current height;
// the mempool admission path rejects submissions while false.
func (v *View) IsActive() bool { return v.active.Load() }

// PrevBaseGasDefault is used when no previous header exists: MinBaseGas *
// ScalingFactor.
func (v *View) PrevBaseGasDefault() int64 { return v.MinBaseGas * v.ScalingFactor }
