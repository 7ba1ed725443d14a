package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fixhub/middleware"
	"fixhub/services/wallet"
)

// WalletHandler exposes wallet balance, history and top-ups.
type WalletHandler struct {
	Svc wallet.WalletService
}

// GetBalance handles GET /api/wallet/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	actorID, role := middleware.Actor(c)

	balance, err := h.Svc.Balance(actorID, role.Kind())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// ListTransactions handles GET /api/wallet/transactions.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	actorID, role := middleware.Actor(c)

	txs, err := h.Svc.Transactions(actorID, role.Kind())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// TopUp handles POST /api/wallet/topup.
func (h *WalletHandler) TopUp(c *gin.Context) {
	actorID, role := middleware.Actor(c)

	var in wallet.TopUpInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Svc.TopUp(actorID, role.Kind(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CheckConsistency handles GET /api/wallet/consistency (admin tooling).
func (h *WalletHandler) CheckConsistency(c *gin.Context) {
	actorID, role := middleware.Actor(c)

	report, err := h.Svc.CheckConsistency(actorID, role.Kind())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
