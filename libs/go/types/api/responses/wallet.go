package responses

// WalletResponse represents the connected wallet session
type WalletResponse struct {
	Object    string   `json:"object"`
	Account   string   `json:"account"`
	Connected bool     `json:"connected"`
	Accounts  []string `json:"accounts"`
}
