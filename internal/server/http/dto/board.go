package dto

import "time"

// ColumnResponse is one status column of a board.
type ColumnResponse struct {
	Status        string          `json:"status"`
	Label         string          `json:"label"`
	Orders        []OrderResponse `json:"orders"`
	Selected      []string        `json:"selected,omitempty"`
	AllSelected   bool            `json:"all_selected"`
	BulkTarget    string          `json:"bulk_target,omitempty"`
	SelectedCount int             `json:"selected_count"`
}

// PointResponse is a position in board coordinates.
type PointResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DragResponse describes the drag gesture in progress.
type DragResponse struct {
	Phase        string         `json:"phase"`
	OrderID      string         `json:"order_id,omitempty"`
	Origin       string         `json:"origin,omitempty"`
	Ghost        *PointResponse `json:"ghost,omitempty"`
	GhostTopLeft *PointResponse `json:"ghost_top_left,omitempty"`
	CardWidth    float64        `json:"card_width,omitempty"`
	CardHeight   float64        `json:"card_height,omitempty"`
	Highlight    string         `json:"highlight,omitempty"`
}

// BoardResponse is the admin board view.
type BoardResponse struct {
	StoreID     string           `json:"store_id"`
	Phase       string           `json:"phase"`
	Loading     bool             `json:"loading"`
	Error       string           `json:"error,omitempty"`
	ActionError string           `json:"action_error,omitempty"`
	Columns     []ColumnResponse `json:"columns"`
	Drag        DragResponse     `json:"drag"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

// PublicBoardResponse is the "now serving" board view.
type PublicBoardResponse struct {
	StoreID   string           `json:"store_id"`
	Phase     string           `json:"phase"`
	Loading   bool             `json:"loading"`
	Error     string           `json:"error,omitempty"`
	Columns   []ColumnResponse `json:"columns"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
}

// TransitionRequest moves one order between statuses.
type TransitionRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ToggleRequest flips the selection of one order.
type ToggleRequest struct {
	OrderID string `json:"order_id"`
}

// BulkResponse reports a bulk transition per order.
type BulkResponse struct {
	From      string            `json:"from"`
	To        string            `json:"to"`
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed,omitempty"`
	Board     BoardResponse     `json:"board"`
}

// RectRequest is a rectangle in board coordinates.
type RectRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ColumnRectRequest places a status column on screen.
type ColumnRectRequest struct {
	Status string `json:"status"`
	RectRequest
}

// LayoutRequest registers the rendered columns for drag hit-testing.
type LayoutRequest struct {
	Columns []ColumnRectRequest `json:"columns"`
}

// PointerRequest forwards one pointer event to the drag recognizer.
type PointerRequest struct {
	Type    string       `json:"type"`
	OrderID string       `json:"order_id"`
	Status  string       `json:"status"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Card    *RectRequest `json:"card"`
}

// DropResponse describes a transition produced by a drop.
type DropResponse struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// PointerResponse is returned for every pointer event.
type PointerResponse struct {
	Drop  *DropResponse `json:"drop,omitempty"`
	Board BoardResponse `json:"board"`
}
