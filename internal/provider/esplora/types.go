package esplora

// transactionDTO mirrors the Esplora /tx/:txid response shape.
type transactionDTO struct {
	TxID   string    `json:"txid"`
	Vin    []vinDTO  `json:"vin"`
	Vout   []voutDTO `json:"vout"`
	Status statusDTO `json:"status"`
}

type vinDTO struct {
	TxID       string   `json:"txid"`
	Vout       uint32   `json:"vout"`
	Prevout    *voutDTO `json:"prevout"`
	IsCoinbase bool     `json:"is_coinbase"`
}

type voutDTO struct {
	ScriptPubKeyType    string `json:"scriptpubkey_type"`
	ScriptPubKeyAddress string `json:"scriptpubkey_address"`
	Value               int64  `json:"value"`
}

type statusDTO struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight uint64 `json:"block_height"`
}

// outspendDTO mirrors one element of the /tx/:txid/outspends array. The
// response carries no output value, only the spend reference.
type outspendDTO struct {
	Spent bool    `json:"spent"`
	TxID  string  `json:"txid"`
	Vin   *uint32 `json:"vin"`
}

// addressDTO mirrors the /address/:addr response.
type addressDTO struct {
	Address    string        `json:"address"`
	ChainStats chainStatsDTO `json:"chain_stats"`
}

type chainStatsDTO struct {
	FundedTxoSum int64 `json:"funded_txo_sum"`
	SpentTxoSum  int64 `json:"spent_txo_sum"`
	TxCount      int64 `json:"tx_count"`
}
