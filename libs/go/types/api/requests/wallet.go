package requests

// SelectAccountRequest switches the active wallet account
type SelectAccountRequest struct {
	Address string `json:"address" binding:"required"`
}
