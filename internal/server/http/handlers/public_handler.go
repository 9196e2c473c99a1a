package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
)

// StoreSetupPath is where operators without stored credentials are sent.
const StoreSetupPath = "/store"

// PublicBoardHandler serves the "now serving" display.
type PublicBoardHandler struct {
	facade BoardFacade
}

// NewPublicBoardHandler constructs PublicBoardHandler.
func NewPublicBoardHandler(facade BoardFacade) *PublicBoardHandler {
	return &PublicBoardHandler{facade: facade}
}

// Show handles GET /store/public.
func (h *PublicBoardHandler) Show(c *gin.Context) {
	b, err := h.facade.PublicBoard(c.Request.Context(), CurrentSessionID(c))
	if err != nil {
		if domainErrors.IsConfig(err) {
			c.Redirect(http.StatusSeeOther, StoreSetupPath)
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPublicBoardResponse(b.View()))
}
