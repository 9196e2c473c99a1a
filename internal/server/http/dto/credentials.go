package dto

// CredentialsRequest carries the operator's store id and API key.
type CredentialsRequest struct {
	StoreID string `json:"store_id"`
	APIKey  string `json:"api_key"`
}

// CredentialsResponse reports the stored configuration. The key itself is
// never echoed back.
type CredentialsResponse struct {
	StoreID    string `json:"store_id"`
	Configured bool   `json:"configured"`
	HasAPIKey  bool   `json:"has_api_key"`
}
