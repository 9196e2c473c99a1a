package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kakigori/storefront/internal/board"
	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/server/http/dto"
)

// Pointer event types accepted by BoardHandler.Pointer.
const (
	PointerDown   = "down"
	PointerMove   = "move"
	PointerUp     = "up"
	PointerCancel = "cancel"
)

// BoardHandler serves the operator's kanban board.
type BoardHandler struct {
	facade BoardFacade
}

// NewBoardHandler constructs BoardHandler.
func NewBoardHandler(facade BoardFacade) *BoardHandler {
	return &BoardHandler{facade: facade}
}

func (h *BoardHandler) controller(c *gin.Context) (*board.Controller, bool) {
	ctrl, err := h.facade.Board(c.Request.Context(), CurrentSessionID(c))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return ctrl, true
}

func statusParam(c *gin.Context) (model.OrderStatus, bool) {
	status, err := model.ParseOrderStatus(c.Param("status"))
	if err != nil {
		writeError(c, domainErrors.ErrInvalidStatus)
		return "", false
	}
	return status, true
}

// Show handles GET /store/board.
func (h *BoardHandler) Show(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(ctrl.View()))
}

// Reload handles POST /store/board/reload. A failed load is reported in the
// board's error state.
func (h *BoardHandler) Reload(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	_ = ctrl.Reload(c.Request.Context())
	c.JSON(http.StatusOK, toBoardResponse(ctrl.View()))
}

// Transition handles POST /store/board/orders/:orderId/transition.
func (h *BoardHandler) Transition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid transition payload")
		return
	}
	from, err := model.ParseOrderStatus(req.From)
	if err != nil {
		writeError(c, domainErrors.ErrInvalidStatus)
		return
	}
	to, err := model.ParseOrderStatus(req.To)
	if err != nil {
		writeError(c, domainErrors.ErrInvalidStatus)
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctrl.Transition(c.Request.Context(), c.Param("orderId"), from, to); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(ctrl.View()))
}

// Toggle handles POST /store/board/selection/:status/toggle.
func (h *BoardHandler) Toggle(c *gin.Context) {
	status, ok := statusParam(c)
	if !ok {
		return
	}
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		badRequest(c, "order_id is required")
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctrl.Toggle(status, req.OrderID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(ctrl.View()))
}

// ToggleAll handles POST /store/board/selection/:status/all.
func (h *BoardHandler) ToggleAll(c *gin.Context) {
	status, ok := statusParam(c)
	if !ok {
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctrl.ToggleAll(status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(ctrl.View()))
}

// ClearSelection handles DELETE /store/board/selection[?status=].
func (h *BoardHandler) ClearSelection(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctrl.ClearSelection(model.OrderStatus(c.Query("status"))); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(ctrl.View()))
}

// Bulk handles POST /store/board/bulk/:status. Partial failures are reported
// per order together with the reloaded board.
func (h *BoardHandler) Bulk(c *gin.Context) {
	status, ok := statusParam(c)
	if !ok {
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	result, err := ctrl.Bulk(c.Request.Context(), status)
	if err != nil && len(result.Failed) == 0 {
		writeError(c, err)
		return
	}
	resp := dto.BulkResponse{
		From:      string(result.From),
		To:        string(result.To),
		Succeeded: result.Succeeded,
		Board:     toBoardResponse(ctrl.View()),
	}
	if resp.Succeeded == nil {
		resp.Succeeded = []string{}
	}
	code := http.StatusOK
	if len(result.Failed) > 0 {
		resp.Failed = make(map[string]string, len(result.Failed))
		for id, ferr := range result.Failed {
			resp.Failed[id] = ferr.Error()
		}
		code = http.StatusMultiStatus
	}
	c.JSON(code, resp)
}

// Layout handles PUT /store/board/layout.
func (h *BoardHandler) Layout(c *gin.Context) {
	var req dto.LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid layout payload")
		return
	}
	layout := make(board.Layout, 0, len(req.Columns))
	for _, col := range req.Columns {
		status, err := model.ParseOrderStatus(col.Status)
		if err != nil {
			writeError(c, domainErrors.ErrInvalidStatus)
			return
		}
		layout = append(layout, board.Column{Status: status, Bounds: toRect(col.RectRequest)})
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	ctrl.SetLayout(layout)
	c.Status(http.StatusNoContent)
}

// Pointer handles POST /store/board/pointer.
func (h *BoardHandler) Pointer(c *gin.Context) {
	var req dto.PointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid pointer payload")
		return
	}
	at := board.Point{X: req.X, Y: req.Y}

	var down struct {
		origin model.OrderStatus
		card   board.Rect
	}
	switch req.Type {
	case PointerDown:
		origin, err := model.ParseOrderStatus(req.Status)
		if err != nil || req.OrderID == "" || req.Card == nil {
			badRequest(c, "down requires order_id, status and card")
			return
		}
		down.origin = origin
		down.card = toRect(*req.Card)
	case PointerMove, PointerUp, PointerCancel:
	default:
		badRequest(c, "unknown pointer event type")
		return
	}

	ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	var resp dto.PointerResponse
	switch req.Type {
	case PointerDown:
		ctrl.PointerDown(req.OrderID, down.origin, at, down.card)
	case PointerMove:
		ctrl.PointerMove(at)
	case PointerUp:
		if drop, ok := ctrl.PointerUp(); ok {
			resp.Drop = &dto.DropResponse{OrderID: drop.OrderID, From: string(drop.From), To: string(drop.To)}
		}
	case PointerCancel:
		ctrl.PointerCancel()
	}
	resp.Board = toBoardResponse(ctrl.View())
	c.JSON(http.StatusOK, resp)
}

func toRect(r dto.RectRequest) board.Rect {
	return board.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
