package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kakigori/storefront/internal/server/http/dto"
	"github.com/kakigori/storefront/internal/usecase"
)

// OrderingHandler serves the customer ordering flow.
type OrderingHandler struct {
	facade OrderingFacade
}

// NewOrderingHandler constructs OrderingHandler.
func NewOrderingHandler(facade OrderingFacade) *OrderingHandler {
	return &OrderingHandler{facade: facade}
}

// State handles GET /order/:storeId.
func (h *OrderingHandler) State(c *gin.Context) {
	storeID, ok := storeParam(c)
	if !ok {
		return
	}
	state, err := h.facade.OrderState(c.Request.Context(), CurrentSessionID(c), storeID)
	h.respondFlow(c, state, err)
}

// Next handles POST /order/:storeId/flow/next.
func (h *OrderingHandler) Next(c *gin.Context) {
	storeID, ok := storeParam(c)
	if !ok {
		return
	}
	state, err := h.facade.FlowNext(c.Request.Context(), CurrentSessionID(c), storeID)
	h.respondFlow(c, state, err)
}

// Back handles POST /order/:storeId/flow/back.
func (h *OrderingHandler) Back(c *gin.Context) {
	storeID, ok := storeParam(c)
	if !ok {
		return
	}
	state, err := h.facade.FlowBack(c.Request.Context(), CurrentSessionID(c), storeID)
	h.respondFlow(c, state, err)
}

func (h *OrderingHandler) respondFlow(c *gin.Context, state usecase.FlowState, err error) {
	if err != nil {
		// The step is still reported when only the menu fetch failed.
		if state.StoreID == "" {
			writeError(c, err)
			return
		}
		status := StatusFor(err)
		c.JSON(status, dto.FlowErrorResponse{
			ErrorResponse: dto.ErrorResponse{Error: errorCode(status), Message: err.Error()},
			Flow:          toFlowResponse(state),
		})
		return
	}
	c.JSON(http.StatusOK, toFlowResponse(state))
}

// Select handles PUT /order/:storeId/selection.
func (h *OrderingHandler) Select(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid selection payload")
		return
	}
	storeID, ok := storeParam(c)
	if !ok {
		return
	}
	flow, err := h.facade.SelectMenuItem(CurrentSessionID(c), storeID, req.MenuItemID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FlowResponse{
		StoreID:    storeID,
		Step:       string(flow.Current()),
		MenuItemID: flow.MenuItemID,
	})
}

// Place handles POST /order/:storeId/orders. The body is optional; a
// menu_item_id in it overrides the session selection.
func (h *OrderingHandler) Place(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid order payload")
		return
	}
	storeID, ok := storeParam(c)
	if !ok {
		return
	}
	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentSessionID(c), storeID, req.MenuItemID)
	if err != nil {
		writeError(c, err)
		return
	}
	location := usecase.ReceiptPath(storeID, order.ID)
	c.Header("Location", location)
	c.JSON(http.StatusSeeOther, dto.PlaceOrderResponse{
		Order:       toOrderResponse(*order),
		ReceiptPath: location,
	})
}

// Receipt handles GET /order/:storeId/receipt/:orderId.
func (h *OrderingHandler) Receipt(c *gin.Context) {
	storeID, ok := storeParam(c)
	if !ok {
		return
	}
	orderID := c.Param("orderId")
	if err := usecase.ValidateOrderID(orderID); err != nil {
		writeError(c, err)
		return
	}
	order, err := h.facade.Receipt(c.Request.Context(), storeID, orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}
