package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/0rsallylim46/MuseumHuntFHE/apps/api/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/client/wallet"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/helpers"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/services"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/api/requests"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/api/responses"

	"github.com/gin-gonic/gin"
)

// WalletHandler connects the session to the wallet provider
type WalletHandler struct {
	wallet  interfaces.WalletProvider
	routes  interfaces.RouteService
	session *services.SessionState
}

// Use types from the centralized packages
type (
	SelectAccountRequest = requests.SelectAccountRequest
	WalletResponse       = responses.WalletResponse
)

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(provider interfaces.WalletProvider, routes interfaces.RouteService, session *services.SessionState) *WalletHandler {
	return &WalletHandler{wallet: provider, routes: routes, session: session}
}

// ConnectWallet godoc
// @Summary Connect the wallet
// @Description Requests the wallet's accounts, makes the first one the session account and loads routes
// @Tags wallet
// @Produce json
// @Success 200 {object} WalletResponse
// @Failure 503 {object} ErrorResponse
// @Router /wallet/connect [post]
func (h *WalletHandler) ConnectWallet(c *gin.Context) {
	accounts, err := h.wallet.RequestAccounts(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, wallet.ErrNoAccounts) {
			status = http.StatusServiceUnavailable
		}
		sendError(c, status, err.Error(), err)
		return
	}

	h.session.SetAccount(accounts[0])
	h.session.Refresh(c.Request.Context(), h.routes)

	sendSuccess(c, http.StatusOK, h.walletResponse())
}

// GetWallet godoc
// @Summary Current wallet session
// @Description Returns the connected account and the accounts the wallet exposes
// @Tags wallet
// @Produce json
// @Success 200 {object} WalletResponse
// @Router /wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	sendSuccess(c, http.StatusOK, h.walletResponse())
}

// SelectAccount godoc
// @Summary Switch the active account
// @Description Selects another wallet account. Subscribers receive an accountsChanged event.
// @Tags wallet
// @Accept json
// @Produce json
// @Param body body SelectAccountRequest true "Account to select"
// @Success 200 {object} WalletResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /wallet/account [put]
func (h *WalletHandler) SelectAccount(c *gin.Context) {
	var req SelectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}
	address := strings.TrimSpace(req.Address)
	if !helpers.IsAddressValid(address) {
		sendError(c, http.StatusBadRequest, "invalid wallet address", nil)
		return
	}

	if err := h.wallet.SelectAccount(helpers.ChecksumAddress(address)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, wallet.ErrUnknownAccount) {
			status = http.StatusNotFound
		}
		sendError(c, status, err.Error(), err)
		return
	}

	if accounts := h.wallet.Accounts(); len(accounts) > 0 {
		h.session.SetAccount(accounts[0])
	}
	sendSuccess(c, http.StatusOK, h.walletResponse())
}

func (h *WalletHandler) walletResponse() WalletResponse {
	accounts := h.wallet.Accounts()
	if accounts == nil {
		accounts = []string{}
	}
	account := h.session.Account()
	return WalletResponse{
		Object:    "wallet",
		Account:   account,
		Connected: account != "",
		Accounts:  accounts,
	}
}
