package dto

// OrderResponse describes a single order.
type OrderResponse struct {
	ID          string `json:"id"`
	MenuItemID  string `json:"menu_item_id"`
	MenuName    string `json:"menu_name"`
	OrderNumber int    `json:"order_number"`
	Status      string `json:"status"`
	Label       string `json:"label"`
}

// MenuItemResponse describes a menu entry.
type MenuItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FlowResponse is the ordering flow state of a session.
type FlowResponse struct {
	StoreID    string             `json:"store_id"`
	Step       string             `json:"step"`
	Steps      []string           `json:"steps"`
	MenuItemID string             `json:"menu_item_id,omitempty"`
	Menu       []MenuItemResponse `json:"menu,omitempty"`
}

// SelectionRequest chooses a menu item.
type SelectionRequest struct {
	MenuItemID string `json:"menu_item_id"`
}

// PlaceOrderResponse is returned after an order is created.
type PlaceOrderResponse struct {
	Order       OrderResponse `json:"order"`
	ReceiptPath string        `json:"receipt_path"`
}

// FlowErrorResponse reports a failure while still describing the flow step.
type FlowErrorResponse struct {
	ErrorResponse
	Flow FlowResponse `json:"flow"`
}
