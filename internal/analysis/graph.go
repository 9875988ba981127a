package analysis

import (
	"math"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

// GraphBuilder accumulates the bipartite address-transaction edge set of a
// batch, one transaction at a time.
type GraphBuilder struct {
	edges []model.BipartiteEdge
}

// NewGraphBuilder returns an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{}
}

// AddTransaction emits one edge per input and one per output. Inputs without
// a resolvable address fall back to the shared unknown-input node, outputs
// without an address to an index-tagged placeholder.
func (b *GraphBuilder) AddTransaction(tx model.Transaction) {
	txNode := model.TxNode(tx.TxID)
	for _, in := range tx.Inputs {
		from := in.PrevoutAddress
		if from == "" {
			from = model.UnknownInputNode
		}
		b.edges = append(b.edges, model.BipartiteEdge{
			Kind:      model.EdgeAddressToTx,
			From:      from,
			To:        txNode,
			ValueSats: in.ValueSats,
			TxID:      tx.TxID,
		})
	}
	for _, out := range tx.Outputs {
		to := out.Address
		if to == "" {
			to = model.NonStandardOutputNode(out.Index)
		}
		b.edges = append(b.edges, model.BipartiteEdge{
			Kind:      model.EdgeTxToAddress,
			From:      txNode,
			To:        to,
			ValueSats: out.ValueSats,
			TxID:      tx.TxID,
		})
	}
}

// Edges returns a copy of the accumulated edge set, in emission order.
func (b *GraphBuilder) Edges() []model.BipartiteEdge {
	edges := make([]model.BipartiteEdge, len(b.edges))
	copy(edges, b.edges)
	return edges
}

// ProjectEdges converts a bipartite edge set into direct address-to-address
// edges. Within each transaction every output is attributed across the
// inputs in proportion to their share of the total input value. The result
// is a heuristic attribution, not a claim that value traces one-to-one.
// Transactions are processed in first-seen order and zero shares dropped.
func ProjectEdges(edges []model.BipartiteEdge) []model.ProjectedEdge {
	type endpoint struct {
		node string
		sats int64
	}
	inputs := make(map[string][]endpoint)
	outputs := make(map[string][]endpoint)
	seen := make(map[string]struct{})
	var order []string

	for _, e := range edges {
		if _, ok := seen[e.TxID]; !ok {
			seen[e.TxID] = struct{}{}
			order = append(order, e.TxID)
		}
		switch e.Kind {
		case model.EdgeAddressToTx:
			inputs[e.TxID] = append(inputs[e.TxID], endpoint{node: e.From, sats: e.ValueSats})
		case model.EdgeTxToAddress:
			outputs[e.TxID] = append(outputs[e.TxID], endpoint{node: e.To, sats: e.ValueSats})
		}
	}

	var projected []model.ProjectedEdge
	for _, txid := range order {
		var totalIn int64
		for _, in := range inputs[txid] {
			totalIn += in.sats
		}
		if totalIn < 1 {
			totalIn = 1
		}
		for _, out := range outputs[txid] {
			for _, in := range inputs[txid] {
				share := float64(in.sats) / float64(totalIn) * float64(out.sats)
				if share <= 0 {
					continue
				}
				sats := int64(math.Round(share))
				if sats <= 0 {
					continue
				}
				projected = append(projected, model.ProjectedEdge{
					TxID:        txid,
					FromAddress: in.node,
					ToAddress:   out.node,
					ValueSats:   sats,
				})
			}
		}
	}
	return projected
}
