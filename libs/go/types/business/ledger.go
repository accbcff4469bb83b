package business

// LedgerReceipt describes the outcome of a ledger write. Off-chain backends
// fill in a synthetic hash and leave BlockNumber at zero.
type LedgerReceipt struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	Status      uint64 `json:"status"` // 1 = success, 0 = failed
	GasUsed     uint64 `json:"gas_used"`
	Backend     string `json:"backend"`
}

// Succeeded reports whether the write was applied
func (r *LedgerReceipt) Succeeded() bool {
	return r != nil && r.Status == 1
}
