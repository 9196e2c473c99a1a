package handlers

import (
	"time"

	"github.com/kakigori/storefront/internal/board"
	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/server/http/dto"
	"github.com/kakigori/storefront/internal/usecase"
)

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:          order.ID,
		MenuItemID:  order.MenuItemID,
		MenuName:    order.MenuName,
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		Label:       order.Status.Label(),
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toFlowResponse(state usecase.FlowState) dto.FlowResponse {
	steps := make([]string, 0, len(usecase.Steps))
	for _, s := range usecase.Steps {
		steps = append(steps, string(s))
	}
	resp := dto.FlowResponse{
		StoreID:    state.StoreID,
		Step:       string(state.Step),
		Steps:      steps,
		MenuItemID: state.Flow.MenuItemID,
	}
	for _, item := range state.Menu {
		resp.Menu = append(resp.Menu, dto.MenuItemResponse{ID: item.ID, Name: item.Name, Description: item.Description})
	}
	return resp
}

func toColumnResponse(col board.ColumnView) dto.ColumnResponse {
	return dto.ColumnResponse{
		Status:        string(col.Status),
		Label:         col.Label,
		Orders:        toOrderResponses(col.Orders),
		Selected:      col.Selected,
		AllSelected:   col.AllSelected,
		BulkTarget:    string(col.BulkTarget),
		SelectedCount: col.SelectedCount,
	}
}

func toPoint(p *board.Point) *dto.PointResponse {
	if p == nil {
		return nil
	}
	return &dto.PointResponse{X: p.X, Y: p.Y}
}

func toDragResponse(state board.DragState) dto.DragResponse {
	resp := dto.DragResponse{
		Phase:        string(state.Phase),
		Ghost:        toPoint(state.Ghost),
		GhostTopLeft: toPoint(state.GhostTopLeft),
		Highlight:    string(state.Highlight),
	}
	if s := state.Session; s != nil {
		resp.OrderID = s.OrderID
		resp.Origin = string(s.Origin)
		resp.CardWidth = s.CardSize.Width
		resp.CardHeight = s.CardSize.Height
	}
	return resp
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func toBoardResponse(view board.View) dto.BoardResponse {
	resp := dto.BoardResponse{
		StoreID:     view.StoreID,
		Phase:       string(view.Phase),
		Loading:     view.Loading,
		Error:       errorString(view.Error),
		ActionError: errorString(view.ActionError),
		Columns:     make([]dto.ColumnResponse, 0, len(view.Columns)),
		Drag:        toDragResponse(view.Drag),
		UpdatedAt:   timePtr(view.UpdatedAt),
	}
	for _, col := range view.Columns {
		resp.Columns = append(resp.Columns, toColumnResponse(col))
	}
	return resp
}

func toPublicBoardResponse(view board.PublicView) dto.PublicBoardResponse {
	resp := dto.PublicBoardResponse{
		StoreID:   view.StoreID,
		Phase:     string(view.Phase),
		Loading:   view.Loading,
		Error:     errorString(view.Error),
		Columns:   make([]dto.ColumnResponse, 0, len(view.Columns)),
		UpdatedAt: timePtr(view.UpdatedAt),
	}
	for _, col := range view.Columns {
		resp.Columns = append(resp.Columns, dto.ColumnResponse{
			Status: string(col.Status),
			Label:  col.Label,
			Orders: toOrderResponses(col.Orders),
		})
	}
	return resp
}
