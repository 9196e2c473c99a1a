package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
	"github.com/kakigori/storefront/internal/domain/model"
)

// LookupMode selects how a single order is resolved by GetOrder.
type LookupMode string

const (
	// LookupScan lists the store's orders and finds the id locally.
	LookupScan LookupMode = "scan"
	// LookupDirect calls the single-resource endpoint.
	LookupDirect LookupMode = "direct"
	// LookupAuto calls the single-resource endpoint and scans when it is unavailable.
	LookupAuto LookupMode = "auto"
)

// ParseLookupMode validates a configured lookup mode.
func ParseLookupMode(raw string) (LookupMode, error) {
	switch mode := LookupMode(raw); mode {
	case LookupScan, LookupDirect, LookupAuto:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown order lookup mode %q", raw)
	}
}

// Client exposes operations of the external order service.
type Client interface {
	ListMenu(ctx context.Context, storeID string, creds model.Credentials) ([]model.MenuItem, error)
	CreateOrder(ctx context.Context, storeID, menuItemID string, creds model.Credentials) (*model.Order, error)
	GetOrder(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error)
	ListOrders(ctx context.Context, storeID string, filter *model.OrderStatus, creds model.Credentials) ([]model.Order, error)
	AdvanceToWaitingPickup(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error)
	AdvanceToComplete(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error)
}

// Options tune the HTTP client.
type Options struct {
	ClientKeyHeader string
	APIKeyHeader    string
	LookupMode      LookupMode
	Timeout         time.Duration
}

const (
	defaultClientKeyHeader = "X-Client-Key"
	defaultAPIKeyHeader    = "X-API-Key"
	defaultTimeout         = 10 * time.Second
)

// HTTPClient implements Client via the order service HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	opts       Options
}

type orderPayload struct {
	ID          string `json:"id"`
	MenuItemID  string `json:"menu_item_id"`
	MenuName    string `json:"menu_name"`
	OrderNumber int    `json:"order_number"`
	Status      string `json:"status,omitempty"`
}

type menuItemPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type menuResponse struct {
	Menu []menuItemPayload `json:"menu"`
}

type ordersResponse struct {
	Orders []orderPayload `json:"orders"`
}

type createOrderRequest struct {
	MenuItemID string `json:"menu_item_id"`
}

// errorResponse mirrors the error body returned by the order service.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewHTTPClient creates an order service client for the given base URL.
func NewHTTPClient(baseURL string, opts Options, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse order api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, errors.New("order api url must be absolute")
	}
	if opts.ClientKeyHeader == "" {
		opts.ClientKeyHeader = defaultClientKeyHeader
	}
	if opts.APIKeyHeader == "" {
		opts.APIKeyHeader = defaultAPIKeyHeader
	}
	if opts.LookupMode == "" {
		opts.LookupMode = LookupScan
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		opts:    opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}, nil
}

// ListMenu returns the menu of a store.
func (c *HTTPClient) ListMenu(ctx context.Context, storeID string, creds model.Credentials) ([]model.MenuItem, error) {
	if err := checkStore(storeID); err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodGet, c.storeURL(storeID, "menu"), nil, creds)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.failure(resp, "menu fetch failed")
	}
	var data menuResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	items := make([]model.MenuItem, 0, len(data.Menu))
	for _, m := range data.Menu {
		items = append(items, model.MenuItem{ID: m.ID, Name: m.Name, Description: m.Description})
	}
	return items, nil
}

// CreateOrder places an order for a menu item. Only 201 Created counts as success.
func (c *HTTPClient) CreateOrder(ctx context.Context, storeID, menuItemID string, creds model.Credentials) (*model.Order, error) {
	if err := checkStore(storeID); err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, c.storeURL(storeID, "orders"), createOrderRequest{MenuItemID: menuItemID}, creds)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, c.failure(resp, "order create failed")
	}
	return decodeOrder(resp.Body)
}

// GetOrder resolves a single order according to the configured lookup mode.
func (c *HTTPClient) GetOrder(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error) {
	if err := checkStore(storeID); err != nil {
		return nil, err
	}
	if !model.IsPathSegment(orderID) {
		return nil, domainErrors.ErrInvalidOrderID
	}
	switch c.opts.LookupMode {
	case LookupDirect:
		return c.getOrderDirect(ctx, storeID, orderID, creds)
	case LookupAuto:
		order, err := c.getOrderDirect(ctx, storeID, orderID, creds)
		if err == nil || !endpointUnavailable(err) {
			return order, err
		}
		c.logger.Debug("single order endpoint unavailable, scanning collection", slog.String("store", storeID))
		return c.getOrderScan(ctx, storeID, orderID, creds)
	default:
		return c.getOrderScan(ctx, storeID, orderID, creds)
	}
}

// ListOrders returns the store's orders, optionally restricted to one status.
// The filter is re-applied locally since the service is not trusted to honor it.
func (c *HTTPClient) ListOrders(ctx context.Context, storeID string, filter *model.OrderStatus, creds model.Credentials) ([]model.Order, error) {
	if err := checkStore(storeID); err != nil {
		return nil, err
	}
	return c.listOrders(ctx, storeID, filter, creds, "order list failed")
}

// AdvanceToWaitingPickup moves an order to waitingPickup.
func (c *HTTPClient) AdvanceToWaitingPickup(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error) {
	return c.advance(ctx, storeID, orderID, "waiting-pickup", creds)
}

// AdvanceToComplete moves an order to completed.
func (c *HTTPClient) AdvanceToComplete(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error) {
	return c.advance(ctx, storeID, orderID, "complete", creds)
}

func (c *HTTPClient) advance(ctx context.Context, storeID, orderID, action string, creds model.Credentials) (*model.Order, error) {
	if err := checkStore(storeID); err != nil {
		return nil, err
	}
	if !model.IsPathSegment(orderID) {
		return nil, domainErrors.ErrInvalidOrderID
	}
	resp, err := c.do(ctx, http.MethodPost, c.storeURL(storeID, "orders", orderID, action), nil, creds)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.failure(resp, "order update failed")
	}
	return decodeOrder(resp.Body)
}

func (c *HTTPClient) getOrderDirect(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error) {
	resp, err := c.do(ctx, http.MethodGet, c.storeURL(storeID, "orders", orderID), nil, creds)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return decodeOrder(resp.Body)
	case resp.StatusCode == http.StatusNotFound && c.opts.LookupMode == LookupDirect:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, domainErrors.ErrOrderNotFound
	default:
		return nil, c.failure(resp, "order fetch failed")
	}
}

func (c *HTTPClient) getOrderScan(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error) {
	orders, err := c.listOrders(ctx, storeID, nil, creds, "order fetch failed")
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrOrderNotFound
}

func (c *HTTPClient) listOrders(ctx context.Context, storeID string, filter *model.OrderStatus, creds model.Credentials, failMsg string) ([]model.Order, error) {
	endpoint := c.storeURL(storeID, "orders")
	if filter != nil {
		q := endpoint.Query()
		q.Set("status", string(*filter))
		endpoint.RawQuery = q.Encode()
	}

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, creds)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.failure(resp, failMsg)
	}
	var data ordersResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	orders := make([]model.Order, 0, len(data.Orders))
	for _, p := range data.Orders {
		order := toOrder(p)
		if filter != nil && order.Status != *filter {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// storeURL appends escaped segments to the base URL. Ids are never cleaned
// or split, so each one stays a single segment.
func (c *HTTPClient) storeURL(storeID string, elems ...string) *url.URL {
	u := *c.baseURL
	path := strings.TrimSuffix(u.Path, "/")
	raw := strings.TrimSuffix(u.EscapedPath(), "/")
	for _, seg := range append([]string{"v1", "stores", storeID}, elems...) {
		path += "/" + seg
		raw += "/" + url.PathEscape(seg)
	}
	u.Path, u.RawPath = path, raw
	return &u
}

func checkStore(storeID string) error {
	if storeID == "" {
		return domainErrors.ErrMissingStoreID
	}
	if !model.IsStoreID(storeID) {
		return domainErrors.ErrInvalidStoreID
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method string, endpoint *url.URL, payload any, creds model.Credentials) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds.ClientKey != "" {
		req.Header.Set(c.opts.ClientKeyHeader, creds.ClientKey)
	}
	if creds.APIKey != "" {
		req.Header.Set(c.opts.APIKeyHeader, creds.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint.Path, err)
	}
	return resp, nil
}

// failure converts a non-success response into a NetworkError, preferring the
// message supplied by the service.
func (c *HTTPClient) failure(resp *http.Response, fallback string) error {
	body, _ := io.ReadAll(resp.Body)
	c.logger.Error("order api request failed",
		slog.String("method", resp.Request.Method),
		slog.String("path", resp.Request.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(body)),
	)

	var data errorResponse
	if err := json.Unmarshal(body, &data); err == nil && data.Message != "" {
		return &domainErrors.NetworkError{Status: resp.StatusCode, Message: data.Message}
	}
	return &domainErrors.NetworkError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("%s (%d)", fallback, resp.StatusCode),
	}
}

func endpointUnavailable(err error) bool {
	netErr, ok := domainErrors.AsNetwork(err)
	if !ok {
		return false
	}
	switch netErr.Status {
	case http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return true
	}
	return false
}

func decodeOrder(r io.Reader) (*model.Order, error) {
	var p orderPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	order := toOrder(p)
	return &order, nil
}

func toOrder(p orderPayload) model.Order {
	status := model.OrderStatus(p.Status)
	if status == "" {
		status = model.OrderStatusPending
	}
	return model.Order{
		ID:          p.ID,
		MenuItemID:  p.MenuItemID,
		MenuName:    p.MenuName,
		OrderNumber: p.OrderNumber,
		Status:      status,
	}
}

var _ Client = (*HTTPClient)(nil)
