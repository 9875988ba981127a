// Package model defines the domain records produced and consumed by the
// transaction-graph analysis engine.
package model

// Transaction is a read-only projection of a provider transaction record.
type Transaction struct {
	TxID      string   `json:"txid"`
	Inputs    []Input  `json:"inputs"`
	Outputs   []Output `json:"outputs"`
	Confirmed bool     `json:"confirmed"`
}

// Input references the previous output funding a transaction. An empty
// PrevoutAddress means the funding script had no decodable address.
type Input struct {
	PrevoutAddress string `json:"prevout_address,omitempty"`
	ValueSats      int64  `json:"value_sats"`
	ScriptType     string `json:"script_type,omitempty"`
}

// Output is a value assignment produced by a transaction. Index is the
// 0-based position within the transaction and doubles as the output
// reference used by spend lookups.
type Output struct {
	Index      uint32 `json:"index"`
	Address    string `json:"address,omitempty"`
	ValueSats  int64  `json:"value_sats"`
	ScriptType string `json:"script_type,omitempty"`
}

// SpendStatus reports whether an output has been spent and by whom. Value is
// nil for providers that do not echo the output value in spend lookups.
type SpendStatus struct {
	Spent        bool    `json:"spent"`
	SpendingTxID string  `json:"spending_txid,omitempty"`
	SpendingVin  *uint32 `json:"spending_vin,omitempty"`
	Value        *int64  `json:"value,omitempty"`
}

// AddressStats aggregates on-chain totals for a single address.
type AddressStats struct {
	Address    string `json:"address"`
	TxCount    int64  `json:"tx_count"`
	FundedSats int64  `json:"funded_sats"`
	SpentSats  int64  `json:"spent_sats"`
}

// AddressTxPage is one page of an address's transaction history, most recent
// first. An empty NextCursor ends the iteration.
type AddressTxPage struct {
	Txs        []Transaction `json:"txs"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
