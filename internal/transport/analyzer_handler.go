// Package transport exposes the HTTP JSON API.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/forensiclabs/utxoscope-backend/internal/analysis"
)

// AnalyzerHandler serves the analysis endpoints. Input shape is validated
// here so the analyzers only ever see plausible ids.
type AnalyzerHandler struct {
	batch   BatchAnalyzer
	peel    PeelAnalyzer
	cluster ClusterAnalyzer
	logger  *zap.Logger
}

func NewAnalyzerHandler(batch BatchAnalyzer, peel PeelAnalyzer, cluster ClusterAnalyzer, logger *zap.Logger) (*AnalyzerHandler, error) {
	if batch == nil {
		return nil, errors.New("batch analyzer is required")
	}
	if peel == nil {
		return nil, errors.New("peel analyzer is required")
	}
	if cluster == nil {
		return nil, errors.New("cluster analyzer is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &AnalyzerHandler{
		batch:   batch,
		peel:    peel,
		cluster: cluster,
		logger:  logger.Named("analyzer_handler"),
	}, nil
}

// Register mounts the handler's routes on mux.
func (h *AnalyzerHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/analyze", h.Analyze)
	mux.HandleFunc("POST /v1/peel", h.Peel)
	mux.HandleFunc("POST /v1/cluster", h.Cluster)
	mux.HandleFunc("GET /healthz", h.Health)
}

type analyzeRequest struct {
	TxIDs []string `json:"txids"`
}

type peelRequest struct {
	TxID      string `json:"txid"`
	Vout      uint32 `json:"vout"`
	MaxHops   int    `json:"max_hops"`
	ForceVout bool   `json:"force_vout"`
}

type clusterRequest struct {
	Address string `json:"address"`
	MaxTxs  int    `json:"max_txs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Analyze runs the batch pipeline over the posted txid list.
func (h *AnalyzerHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(req.TxIDs) == 0 {
		h.writeError(w, http.StatusBadRequest, "at least one txid is required")
		return
	}
	for _, txid := range req.TxIDs {
		if _, err := chainhash.NewHashFromStr(txid); err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid txid %q", txid))
			return
		}
	}

	report, err := h.batch.Analyze(r.Context(), req.TxIDs)
	if err != nil {
		h.logger.Error("batch analysis failed", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "analysis failed")
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// Peel traces and scores a spend chain from the posted output.
func (h *AnalyzerHandler) Peel(w http.ResponseWriter, r *http.Request) {
	var req peelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if _, err := chainhash.NewHashFromStr(req.TxID); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid txid %q", req.TxID))
		return
	}
	if req.MaxHops < 0 {
		h.writeError(w, http.StatusBadRequest, "max_hops must be positive")
		return
	}
	if req.MaxHops == 0 {
		req.MaxHops = analysis.DefaultMaxHops
	}

	report, err := h.peel.Analyze(r.Context(), analysis.TraceParams{
		TxID:      req.TxID,
		Vout:      req.Vout,
		MaxHops:   req.MaxHops,
		ForceVout: req.ForceVout,
	})
	if err != nil {
		h.logger.Error("peel analysis failed", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "analysis failed")
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// Cluster grows a cluster around the posted seed address.
func (h *AnalyzerHandler) Cluster(w http.ResponseWriter, r *http.Request) {
	var req clusterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if _, err := btcutil.DecodeAddress(req.Address, &chaincfg.MainNetParams); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid address %q", req.Address))
		return
	}
	if req.MaxTxs < 0 {
		h.writeError(w, http.StatusBadRequest, "max_txs must be positive")
		return
	}
	if req.MaxTxs == 0 {
		req.MaxTxs = analysis.DefaultMaxHistoryTxs
	}

	report, err := h.cluster.Cluster(r.Context(), req.Address, req.MaxTxs)
	if err != nil {
		h.logger.Error("cluster analysis failed", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "analysis failed")
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// Health reports server health.
func (h *AnalyzerHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *AnalyzerHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *AnalyzerHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}
