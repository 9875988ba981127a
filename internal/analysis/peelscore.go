package analysis

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/forensiclabs/utxoscope-backend/internal/clock"
	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

// Scorer grades a traced hop sequence for peel-chain likelihood. The
// small-peel signal needs the spending transactions, so scoring performs
// provider calls of its own.
type Scorer struct {
	src       Source
	logger    *zap.Logger
	callDelay time.Duration
}

// NewScorer constructs a peel-chain scorer. callDelay paces the spending-tx
// probes behind the small-peel signal.
func NewScorer(src Source, callDelay time.Duration, logger *zap.Logger) (*Scorer, error) {
	if src == nil {
		return nil, errors.New("source is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if callDelay < 0 {
		callDelay = 0
	}
	return &Scorer{
		src:       src,
		logger:    logger.Named("peel_scorer"),
		callDelay: callDelay,
	}, nil
}

// Score combines four normalized signals over the chain's positive values:
// monotonic decline, ratio stability around a nominal 20% peel, presence of
// small peeled-off outputs, and hop count. Chains with fewer than two
// positive values are unscoreable and report a reason instead.
func (s *Scorer) Score(ctx context.Context, hops []model.PeelHop) model.PeelScore {
	vals := make([]float64, 0, len(hops))
	sources := make([]string, 0, len(hops))
	for _, hop := range hops {
		if hop.ValueSats > 0 {
			vals = append(vals, float64(hop.ValueSats))
			sources = append(sources, hop.ValueSource)
		}
	}

	breakdown := model.PeelBreakdown{
		HopCount:     len(hops),
		ValueCount:   len(vals),
		ValueSources: sources,
	}
	if len(vals) < 2 {
		breakdown.Reason = reasonInsufficientData
		return model.PeelScore{
			Score:          0,
			Interpretation: interpretationNone,
			Breakdown:      breakdown,
		}
	}

	monotonicCount := 0
	for i := 0; i+1 < len(vals); i++ {
		if vals[i+1] <= vals[i]+peelMonotonicityEpsilon {
			monotonicCount++
		}
	}
	monotonicity := float64(monotonicCount) / float64(len(vals)-1)

	ratios := make([]float64, 0, len(vals)-1)
	for i := 0; i+1 < len(vals); i++ {
		ratios = append(ratios, vals[i+1]/vals[i])
	}
	mean, sd := meanStddev(ratios)
	meanComponent := 1 - math.Min(1, math.Abs(mean-peelTargetRatio)/peelTargetRatio)
	dispersionComponent := 1 / (1 + sd*peelDispersionSlope)
	ratioStability := clamp(meanComponent*peelRatioMeanShare+dispersionComponent*peelRatioDispersionShare, 0, 1)

	smallPeel := s.smallPeelPresence(ctx, hops)
	hopFactor := math.Min(1, float64(len(vals))/float64(peelHopSaturation))

	score := clamp(
		peelWeightMonotonicity*monotonicity+
			peelWeightRatioStability*ratioStability+
			peelWeightSmallPeel*smallPeel+
			peelWeightHopCount*hopFactor,
		0, 1)

	breakdown.Monotonicity = monotonicity
	breakdown.RatioStability = ratioStability
	breakdown.SmallPeelPresence = smallPeel
	breakdown.HopFactor = hopFactor
	breakdown.Ratios = ratios

	return model.PeelScore{
		Score:          score,
		Interpretation: interpret(score),
		Breakdown:      breakdown,
	}
}

// smallPeelPresence probes each hop's spending transaction for a non-largest
// output at or below 5% of the continuation value, a peeled-off payment
// riding alongside the continuation. Hops whose spending transaction cannot
// be fetched are excluded from the denominator rather than held against the
// chain.
func (s *Scorer) smallPeelPresence(ctx context.Context, hops []model.PeelHop) float64 {
	hits, checks := 0, 0
	for _, hop := range hops {
		if hop.SpentInTx == "" || hop.ValueSats <= 0 {
			continue
		}
		tx, err := s.src.Transaction(ctx, hop.SpentInTx)
		if err != nil {
			s.logger.Debug("spending tx probe failed",
				zap.String("txid", hop.SpentInTx),
				zap.Error(err))
			continue
		}
		checks++
		if hasSmallPeel(tx.Outputs, hop.ValueSats) {
			hits++
		}
		if err := clock.SleepWithContext(ctx, s.callDelay); err != nil {
			break
		}
	}
	if checks == 0 {
		return 0
	}
	return float64(hits) / float64(checks)
}

// hasSmallPeel reports whether some non-largest output sits at or below 5%
// of the continuation value. Every copy of the largest value is excluded;
// equal-value continuations are indistinguishable from each other.
func hasSmallPeel(outputs []model.Output, continuationSats int64) bool {
	if len(outputs) == 0 {
		return false
	}
	var largest int64
	for _, out := range outputs {
		if out.ValueSats > largest {
			largest = out.ValueSats
		}
	}
	threshold := math.Max(1, float64(continuationSats)*peelSmallPeelShare)
	for _, out := range outputs {
		if out.ValueSats == largest {
			continue
		}
		if float64(out.ValueSats) <= threshold {
			return true
		}
	}
	return false
}

func interpret(score float64) string {
	switch {
	case score >= peelLikelyThreshold:
		return interpretationLikely
	case score >= peelPossibleThreshold:
		return interpretationPossible
	default:
		return interpretationNone
	}
}
