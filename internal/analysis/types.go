package analysis

import (
	"context"
	"time"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source supplies blockchain data to the engine. Implementations report
	// failures with the sentinel errors of the provider package.
	Source interface {
		Transaction(ctx context.Context, txid string) (model.Transaction, error)
		OutputSpendStatus(ctx context.Context, txid string, index uint32) (model.SpendStatus, error)
		AddressTransactions(ctx context.Context, address, cursor string) (model.AddressTxPage, error)
		AddressStats(ctx context.Context, address string) (model.AddressStats, error)
	}

	// Metrics records completed analysis runs.
	Metrics interface {
		ObserveRun(kind string, err error, started time.Time)
	}
)

// TraceParams identifies the starting output of a peel trace and its bounds.
type TraceParams struct {
	TxID    string
	Vout    uint32
	MaxHops int
	// ForceVout makes the tracer read each hop's value from the source
	// transaction even when the spend status already carries one.
	ForceVout bool
}
