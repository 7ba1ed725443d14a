package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fixhub/middleware"
	"fixhub/models"
	"fixhub/services/request"
)

// RequestHandler exposes the request lifecycle over HTTP.
type RequestHandler struct {
	Svc request.RequestService
}

// CreateRequest handles POST /api/requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	var in request.CreateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req, err := h.Svc.Create(actorID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// GetRequest handles GET /api/requests/:id.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	actorID, role := middleware.Actor(c)

	req, err := h.Svc.GetByID(actorID, role, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ListMine handles GET /api/requests/mine for both roles.
func (h *RequestHandler) ListMine(c *gin.Context) {
	actorID, role := middleware.Actor(c)

	var (
		reqs []models.ServiceRequest
		err  error
	)
	if role == models.RoleProvider {
		reqs, err = h.Svc.ListForProvider(actorID)
	} else {
		reqs, err = h.Svc.ListForClient(actorID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

// AcceptRequest handles PUT /api/requests/:id/accept.
func (h *RequestHandler) AcceptRequest(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	req, err := h.Svc.Accept(actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ConfirmRequest handles PUT /api/requests/:id/confirm.
func (h *RequestHandler) ConfirmRequest(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	req, err := h.Svc.Confirm(actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// CancelRequest handles PUT /api/requests/:id/cancel.
func (h *RequestHandler) CancelRequest(c *gin.Context) {
	actorID, role := middleware.Actor(c)

	var in struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req, err := h.Svc.Cancel(actorID, role, c.Param("id"), in.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// IssueStartOtp handles POST /api/requests/:id/start-otp.
func (h *RequestHandler) IssueStartOtp(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	req, err := h.Svc.IssueStartOtp(actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status, "message": "code sent to the client"})
}

// StartRequest handles PUT /api/requests/:id/start.
func (h *RequestHandler) StartRequest(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	var in struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req, err := h.Svc.SubmitStartOtp(actorID, c.Param("id"), in.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// IssueEndOtp handles POST /api/requests/:id/end-otp.
func (h *RequestHandler) IssueEndOtp(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	req, err := h.Svc.IssueEndOtp(actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status, "message": "code sent to the client"})
}

// CompleteRequest handles PUT /api/requests/:id/complete.
func (h *RequestHandler) CompleteRequest(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	var in struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req, err := h.Svc.SubmitEndOtp(actorID, c.Param("id"), in.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ArchiveRequest handles PUT /api/requests/:id/archive.
func (h *RequestHandler) ArchiveRequest(c *gin.Context) {
	actorID, role := middleware.Actor(c)

	req, err := h.Svc.Archive(actorID, role, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
