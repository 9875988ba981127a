package analysis

import (
	"math"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

// DetectCoinjoin scores a transaction's likelihood of being a mixing
// transaction. Only transactions with at least five inputs and five outputs
// qualify; their strictly-positive output values are then tested for the
// tight dispersion typical of deliberate equalization. The returned flag is
// the score checked against the classification threshold.
func DetectCoinjoin(tx model.Transaction) (bool, float64) {
	if len(tx.Inputs) < coinjoinMinInputs || len(tx.Outputs) < coinjoinMinOutputs {
		return false, 0
	}

	values := make([]float64, 0, len(tx.Outputs))
	for _, out := range tx.Outputs {
		if out.ValueSats > 0 {
			values = append(values, float64(out.ValueSats))
		}
	}
	if len(values) == 0 {
		return false, 0
	}

	mean, stddev := meanStddev(values)
	rel := stddev / mean
	score := math.Max(0, 1-math.Min(rel/coinjoinMaxRelDev, 1))
	return score > coinjoinClassifyThreshold, score
}

// meanStddev returns the mean and population standard deviation.
func meanStddev(values []float64) (float64, float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}
