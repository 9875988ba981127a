package transport

import (
	"context"

	"github.com/forensiclabs/utxoscope-backend/internal/analysis"
	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BatchAnalyzer interface {
		Analyze(ctx context.Context, txids []string) (model.BatchReport, error)
	}
	PeelAnalyzer interface {
		Analyze(ctx context.Context, params analysis.TraceParams) (model.PeelReport, error)
	}
	ClusterAnalyzer interface {
		Cluster(ctx context.Context, seed string, maxTxs int) (model.ClusterReport, error)
	}
)
