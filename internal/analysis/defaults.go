package analysis

import "time"

// Heuristic weights and thresholds. Named so the scoring stays auditable and
// tunable without touching the algorithms.
const (
	coinjoinMinInputs         = 5
	coinjoinMinOutputs        = 5
	coinjoinMaxRelDev         = 0.05
	coinjoinClassifyThreshold = 0.6

	changeWeightAddressReuse   = 0.4
	changeWeightScriptMatch    = 0.2
	changeWeightRemainder      = 0.2
	changeWeightHighDecimal    = 0.20
	changeWeightRoundAmount    = 0.15
	changeWeightValueCollision = 0.20

	changeSolePositiveBoostSimple   = 0.15
	changeSolePositiveBoostDetailed = 0.12

	changeRemainderCeiling  = 0.95
	changeHighDecimalDigits = 6
	changeRoundAmountZeros  = 5

	peelWeightMonotonicity   = 0.40
	peelWeightRatioStability = 0.30
	peelWeightSmallPeel      = 0.20
	peelWeightHopCount       = 0.10

	peelTargetRatio          = 0.8
	peelRatioMeanShare       = 0.7
	peelRatioDispersionShare = 0.3
	peelDispersionSlope      = 8.0
	peelSmallPeelShare       = 0.05
	peelHopSaturation        = 6
	peelMonotonicityEpsilon  = 1e-9

	peelLikelyThreshold   = 0.75
	peelPossibleThreshold = 0.45

	changeCandidateThreshold = 0.15
)

const (
	interpretationLikely   = "Likely peel chain"
	interpretationPossible = "Possible peel chain"
	interpretationNone     = "No clear peel chain"

	reasonInsufficientData = "insufficient_data"

	hopErrOutspendsFailed = "outspends_failed"
	hopErrOutOfRange      = "vout_index_out_of_range"

	nonStandardAddressLabel = "NON_STD"
)

const (
	// DefaultCallDelay paces successive provider calls. Public Esplora
	// instances throttle aggressive clients.
	DefaultCallDelay = 250 * time.Millisecond

	// DefaultMaxHops bounds a peel trace unless the caller asks otherwise.
	DefaultMaxHops = 8

	// DefaultMaxHistoryTxs bounds the transaction-history window scanned
	// around a seed address.
	DefaultMaxHistoryTxs = 200
)
