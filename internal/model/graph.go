package model

import "fmt"

// EdgeKind distinguishes the two directions of a bipartite edge.
type EdgeKind string

var (
	// EdgeAddressToTx marks an edge from an input address into a transaction node.
	EdgeAddressToTx EdgeKind = "address_to_tx"
	// EdgeTxToAddress marks an edge from a transaction node to an output address.
	EdgeTxToAddress EdgeKind = "tx_to_address"
)

// UnknownInputNode is the graph node standing in for an input whose previous
// output address could not be resolved.
const UnknownInputNode = "UNKNOWN_INPUT"

// TxNode returns the graph node identifier for a transaction.
func TxNode(txid string) string {
	return "tx:" + txid
}

// NonStandardOutputNode returns the placeholder node for an output without a
// decodable address, tagged with the output position.
func NonStandardOutputNode(index uint32) string {
	return fmt.Sprintf("NON_STD_VOUT_%d", index)
}

// BipartiteEdge links an address node and a transaction node. Edges are
// emitted once per input/output observed and never deduplicated.
type BipartiteEdge struct {
	Kind      EdgeKind `json:"kind"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	ValueSats int64    `json:"value_sats"`
	TxID      string   `json:"txid"`
}

// ProjectedEdge is a derived address-to-address edge carrying the share of an
// output proportionally attributed to one input. Edges with the same address
// pair across different transactions are kept separate.
type ProjectedEdge struct {
	TxID        string `json:"txid"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	ValueSats   int64  `json:"value_sats"`
}
