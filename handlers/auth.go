package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fixhub/middleware"
	"fixhub/models"
	"fixhub/services/account"
)

// AuthHandler exposes registration, login and account profile endpoints.
type AuthHandler struct {
	Svc account.AccountService
}

// RegisterClient handles POST /api/auth/register/client.
func (h *AuthHandler) RegisterClient(c *gin.Context) {
	var in account.RegisterClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Svc.RegisterClient(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegisterProvider handles POST /api/auth/register/provider.
func (h *AuthHandler) RegisterProvider(c *gin.Context) {
	var in account.RegisterProviderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Svc.RegisterProvider(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Svc.Login(in.Email, in.Password, in.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile handles GET /api/account/me.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	actorID, role := middleware.Actor(c)

	if role == models.RoleProvider {
		p, err := h.Svc.GetProvider(actorID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
		return
	}
	cl, err := h.Svc.GetClient(actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

// SetAvailability handles PUT /api/providers/availability.
func (h *AuthHandler) SetAvailability(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	var in struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "available is required"})
		return
	}

	if err := h.Svc.SetAvailability(actorID, *in.Available); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": *in.Available})
}

// UpdateSettings handles PUT /api/providers/settings.
func (h *AuthHandler) UpdateSettings(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	var in account.ProviderSettingsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	provider, err := h.Svc.UpdateSettings(actorID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}
