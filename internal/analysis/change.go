package analysis

import (
	"math"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

// Flag tags attached to scored change candidates.
const (
	FlagAddressReuse      = "address_reuse"
	FlagScriptMatch       = "script_match"
	FlagSmallerThanInputs = "smaller_than_inputs"
	FlagHighDecimal       = "high_decimal"
	FlagRoundAmount       = "round_amount"
	FlagCoinjoinLike      = "coinjoin_like"
	FlagSolePositiveBoost = "sole_positive_boost"
)

// ScoreOutputsSimple scores every output of a transaction with the
// batch-mode change heuristics: address reuse, script-type match, and
// remainder size, each contributing positive weight only. Scores are clamped
// to [0,1].
func ScoreOutputsSimple(tx model.Transaction) []model.ChangeCandidate {
	inputAddrs := make(map[string]struct{}, len(tx.Inputs))
	for _, in := range tx.Inputs {
		if in.PrevoutAddress != "" {
			inputAddrs[in.PrevoutAddress] = struct{}{}
		}
	}
	majority := majorityScriptType(tx.Inputs)
	maxIn := maxInputValue(tx.Inputs)

	candidates := make([]model.ChangeCandidate, 0, len(tx.Outputs))
	for _, out := range tx.Outputs {
		var score float64
		var flags []string

		if out.Address != "" {
			if _, ok := inputAddrs[out.Address]; ok {
				score += changeWeightAddressReuse
				flags = append(flags, FlagAddressReuse)
			}
		}
		if majority != "" && out.ScriptType == majority {
			score += changeWeightScriptMatch
			flags = append(flags, FlagScriptMatch)
		}
		if isRemainderSized(out.ValueSats, maxIn) {
			score += changeWeightRemainder
			flags = append(flags, FlagSmallerThanInputs)
		}

		candidates = append(candidates, model.ChangeCandidate{
			TxID:        tx.TxID,
			OutputIndex: out.Index,
			Address:     out.Address,
			ValueSats:   out.ValueSats,
			Score:       clamp(score, 0, 1),
			Flags:       flags,
		})
	}

	applySolePositiveBoost(candidates, changeSolePositiveBoostSimple, 0, 1)
	return candidates
}

// ScoreOutputsDetailed scores every output with the full heuristic set used
// when investigating a specific address: decimal shape, round amounts,
// script-type match, remainder size, and a value-collision penalty for
// coinjoin-like transactions. Address reuse is deliberately omitted here.
// Scores are clamped to [-1,1].
func ScoreOutputsDetailed(tx model.Transaction) []model.ChangeCandidate {
	majority := majorityScriptType(tx.Inputs)
	maxIn := maxInputValue(tx.Inputs)
	collision := hasValueCollision(tx.Outputs)

	candidates := make([]model.ChangeCandidate, 0, len(tx.Outputs))
	for _, out := range tx.Outputs {
		var score float64
		var flags []string

		if fractionalDigits(out.ValueSats) >= changeHighDecimalDigits {
			score += changeWeightHighDecimal
			flags = append(flags, FlagHighDecimal)
		}
		if trailingZeros(out.ValueSats) >= changeRoundAmountZeros {
			score -= changeWeightRoundAmount
			flags = append(flags, FlagRoundAmount)
		}
		if majority != "" && out.ScriptType == majority {
			score += changeWeightScriptMatch
			flags = append(flags, FlagScriptMatch)
		}
		if isRemainderSized(out.ValueSats, maxIn) {
			score += changeWeightRemainder
			flags = append(flags, FlagSmallerThanInputs)
		}
		if collision {
			score -= changeWeightValueCollision
			flags = append(flags, FlagCoinjoinLike)
		}

		candidates = append(candidates, model.ChangeCandidate{
			TxID:        tx.TxID,
			OutputIndex: out.Index,
			Address:     out.Address,
			ValueSats:   out.ValueSats,
			Score:       clamp(score, -1, 1),
			Flags:       flags,
		})
	}

	applySolePositiveBoost(candidates, changeSolePositiveBoostDetailed, -1, 1)
	return candidates
}

// applySolePositiveBoost bumps the single strictly-positive candidate when
// exactly one exists. Ties leave every score untouched, so the boost never
// depends on output order.
func applySolePositiveBoost(candidates []model.ChangeCandidate, boost, lo, hi float64) {
	positive := -1
	for i := range candidates {
		if candidates[i].Score > 0 {
			if positive >= 0 {
				return
			}
			positive = i
		}
	}
	if positive < 0 {
		return
	}
	candidates[positive].Score = clamp(candidates[positive].Score+boost, lo, hi)
	candidates[positive].Flags = append(candidates[positive].Flags, FlagSolePositiveBoost)
}

// isRemainderSized reports whether a value is strictly between zero and 95%
// of the largest single input, the shape of a leftover returned to the
// sender.
func isRemainderSized(sats, maxIn int64) bool {
	return maxIn > 0 && sats > 0 && float64(sats) < float64(maxIn)*changeRemainderCeiling
}

// majorityScriptType returns the most common input script type, first seen
// winning ties. Inputs without a script type are ignored.
func majorityScriptType(inputs []model.Input) string {
	counts := make(map[string]int, len(inputs))
	var best string
	var bestCount int
	for _, in := range inputs {
		if in.ScriptType == "" {
			continue
		}
		counts[in.ScriptType]++
		if counts[in.ScriptType] > bestCount {
			best = in.ScriptType
			bestCount = counts[in.ScriptType]
		}
	}
	return best
}

func maxInputValue(inputs []model.Input) int64 {
	var max int64
	for _, in := range inputs {
		if in.ValueSats > max {
			max = in.ValueSats
		}
	}
	return max
}

// hasValueCollision reports whether two or more outputs carry an identical
// value, the signature of equalized mixing outputs.
func hasValueCollision(outputs []model.Output) bool {
	counts := make(map[int64]int, len(outputs))
	for _, out := range outputs {
		counts[out.ValueSats]++
		if counts[out.ValueSats] >= 2 {
			return true
		}
	}
	return false
}

// trailingZeros counts trailing decimal zeros of a positive satoshi amount.
func trailingZeros(sats int64) int {
	if sats <= 0 {
		return 0
	}
	var n int
	for sats%10 == 0 {
		n++
		sats /= 10
	}
	return n
}

// fractionalDigits counts the significant fractional digits of the BTC
// decimal representation after trimming trailing zeros. Integer math on the
// sub-BTC remainder avoids float formatting artifacts.
func fractionalDigits(sats int64) int {
	if sats <= 0 {
		return 0
	}
	frac := sats % 100_000_000
	if frac == 0 {
		return 0
	}
	digits := 8
	for frac%10 == 0 {
		digits--
		frac /= 10
	}
	return digits
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
