package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/server/http/dto"
)

// CredentialHandler manages the operator's store id and API key.
type CredentialHandler struct {
	facade CredentialFacade
}

// NewCredentialHandler constructs CredentialHandler.
func NewCredentialHandler(facade CredentialFacade) *CredentialHandler {
	return &CredentialHandler{facade: facade}
}

// Get handles GET /store and GET /store/credentials.
func (h *CredentialHandler) Get(c *gin.Context) {
	cfg := h.facade.StoreConfig(c.Request.Context(), CurrentSessionID(c))
	c.JSON(http.StatusOK, toCredentialsResponse(cfg))
}

// Save handles PUT /store/credentials.
func (h *CredentialHandler) Save(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid credentials payload")
		return
	}
	cfg, err := h.facade.SaveStoreConfig(c.Request.Context(), CurrentSessionID(c), req.StoreID, req.APIKey)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCredentialsResponse(cfg))
}

// Logout handles DELETE /store/credentials.
func (h *CredentialHandler) Logout(c *gin.Context) {
	h.facade.Logout(c.Request.Context(), CurrentSessionID(c))
	c.Status(http.StatusNoContent)
}

func toCredentialsResponse(cfg model.StoreConfig) dto.CredentialsResponse {
	return dto.CredentialsResponse{
		StoreID:    cfg.StoreID,
		Configured: cfg.Configured(),
		HasAPIKey:  cfg.APIKey != "",
	}
}
