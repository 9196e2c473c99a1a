package model

// StoreConfig holds the operator credentials remembered for a session.
type StoreConfig struct {
	StoreID string
	APIKey  string
}

// Configured reports whether a store has been selected.
func (c StoreConfig) Configured() bool {
	return c.StoreID != ""
}

// Credentials are the optional keys attached to order service requests.
type Credentials struct {
	ClientKey string
	APIKey    string
}

// Credentials returns request credentials for the stored operator key.
func (c StoreConfig) Credentials(clientKey string) Credentials {
	return Credentials{ClientKey: clientKey, APIKey: c.APIKey}
}
