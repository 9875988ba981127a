package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/forensiclabs/utxoscope-backend/internal/clock"
	"github.com/forensiclabs/utxoscope-backend/internal/model"
	"github.com/forensiclabs/utxoscope-backend/internal/provider"
)

// Tracer follows one output forward through successive spends, resolving
// each hop's value through a fallback chain: the spend status itself, the
// source transaction's own declared value, and finally the spending
// transaction's largest output as a proxy.
type Tracer struct {
	src       Source
	logger    *zap.Logger
	callDelay time.Duration
}

// NewTracer constructs a peel-chain tracer. callDelay paces successive
// provider calls.
func NewTracer(src Source, callDelay time.Duration, logger *zap.Logger) (*Tracer, error) {
	if src == nil {
		return nil, errors.New("source is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if callDelay < 0 {
		callDelay = 0
	}
	return &Tracer{
		src:       src,
		logger:    logger.Named("peel_tracer"),
		callDelay: callDelay,
	}, nil
}

// Trace walks the chain starting at params until the output goes cold, a
// lookup fails, or MaxHops is reached. Provider failures terminate the chain
// with a tagged hop; only caller misuse and context cancellation return an
// error. The walk always continues through output 0 of each spending
// transaction, the conventional position of a peel continuation. That is an
// approximation, not a guarantee.
func (t *Tracer) Trace(ctx context.Context, params TraceParams) ([]model.PeelHop, error) {
	if params.TxID == "" {
		return nil, errors.New("txid is required")
	}
	if params.MaxHops < 1 {
		return nil, fmt.Errorf("max hops must be positive, got %d", params.MaxHops)
	}

	chain := make([]model.PeelHop, 0, params.MaxHops)
	cur, vout := params.TxID, params.Vout

	for hop := 0; hop < params.MaxHops; hop++ {
		status, err := t.src.OutputSpendStatus(ctx, cur, vout)
		if err != nil {
			failed := model.PeelHop{FromTx: cur, FromOutputIndex: vout}
			if errors.Is(err, provider.ErrOutOfRange) {
				failed.ValueSource = model.ValueSourceOutOfRange
				failed.Err = hopErrOutOfRange
			} else {
				failed.ValueSource = model.ValueSourceOutspendsError
				failed.Err = hopErrOutspendsFailed
			}
			t.logger.Warn("spend lookup failed",
				zap.String("txid", cur),
				zap.Uint32("vout", vout),
				zap.Error(err))
			chain = append(chain, failed)
			break
		}

		value, source := t.resolveValue(ctx, cur, vout, status, params.ForceVout)

		var spendingTx *model.Transaction
		if status.Spent && status.SpendingTxID != "" {
			sp, spErr := t.src.Transaction(ctx, status.SpendingTxID)
			if spErr != nil {
				t.logger.Debug("spending tx fetch failed",
					zap.String("txid", status.SpendingTxID),
					zap.Error(spErr))
				if value == 0 {
					source = model.ValueSourceProxyError
				}
			} else {
				spendingTx = &sp
			}
		}
		if value == 0 && spendingTx != nil {
			if largest, ok := largestOutput(*spendingTx); ok && largest.ValueSats > 0 {
				value = largest.ValueSats
				source = model.ValueSourceProxySpentLargest
			}
		}
		if source == "" {
			source = model.ValueSourceUnknown
		}

		record := model.PeelHop{
			FromTx:            cur,
			FromOutputIndex:   vout,
			ValueSats:         value,
			ValueSource:       source,
			Spent:             status.Spent,
			SpentInTx:         status.SpendingTxID,
			SpentInInputIndex: status.SpendingVin,
		}
		if spendingTx != nil {
			if largest, ok := largestOutput(*spendingTx); ok {
				record.SpentToAddress = largest.Address
				if record.SpentToAddress == "" {
					record.SpentToAddress = nonStandardAddressLabel
				}
			}
		}
		chain = append(chain, record)

		if !status.Spent || status.SpendingTxID == "" {
			break
		}
		cur, vout = status.SpendingTxID, 0

		if err := clock.SleepWithContext(ctx, t.callDelay); err != nil {
			return chain, err
		}
	}
	return chain, nil
}

// resolveValue runs the value fallback chain short of the spending-tx proxy,
// which needs the spending transaction the caller fetches anyway.
func (t *Tracer) resolveValue(ctx context.Context, txid string, vout uint32, status model.SpendStatus, forceVout bool) (int64, string) {
	var value int64
	if status.Value != nil {
		value = *status.Value
	}

	if forceVout || value == 0 {
		tx, err := t.src.Transaction(ctx, txid)
		switch {
		case err != nil:
			t.logger.Debug("source tx fetch failed", zap.String("txid", txid), zap.Error(err))
			return value, model.ValueSourceTxVoutError
		case uint64(vout) >= uint64(len(tx.Outputs)):
			return value, model.ValueSourceTxVoutMissingIndex
		default:
			return tx.Outputs[vout].ValueSats, model.ValueSourceTxVout
		}
	}
	return value, model.ValueSourceOutspends
}

// largestOutput returns the highest-value output, first one winning ties.
func largestOutput(tx model.Transaction) (model.Output, bool) {
	if len(tx.Outputs) == 0 {
		return model.Output{}, false
	}
	best := tx.Outputs[0]
	for _, out := range tx.Outputs[1:] {
		if out.ValueSats > best.ValueSats {
			best = out
		}
	}
	return best, true
}

// PeelAnalyzer traces a chain and scores it in one run.
type PeelAnalyzer struct {
	tracer  *Tracer
	scorer  *Scorer
	metrics Metrics
}

// NewPeelAnalyzer constructs a peel analyzer over a shared provider.
func NewPeelAnalyzer(src Source, metrics Metrics, callDelay time.Duration, logger *zap.Logger) (*PeelAnalyzer, error) {
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	tracer, err := NewTracer(src, callDelay, logger)
	if err != nil {
		return nil, fmt.Errorf("create tracer: %w", err)
	}
	scorer, err := NewScorer(src, callDelay, logger)
	if err != nil {
		return nil, fmt.Errorf("create scorer: %w", err)
	}
	return &PeelAnalyzer{tracer: tracer, scorer: scorer, metrics: metrics}, nil
}

// Analyze traces from the given output and grades the resulting chain.
func (p *PeelAnalyzer) Analyze(ctx context.Context, params TraceParams) (report model.PeelReport, err error) {
	started := time.Now()
	defer func() { p.metrics.ObserveRun("peel", err, started) }()

	hops, err := p.tracer.Trace(ctx, params)
	if err != nil {
		return model.PeelReport{}, err
	}
	return model.PeelReport{
		StartTxID: params.TxID,
		StartVout: params.Vout,
		MaxHops:   params.MaxHops,
		ForceVout: params.ForceVout,
		Hops:      hops,
		Score:     p.scorer.Score(ctx, hops),
	}, nil
}
