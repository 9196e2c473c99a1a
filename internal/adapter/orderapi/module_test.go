package orderapi

import (
	"testing"

	"github.com/kakigori/storefront/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{
		OrderAPIAddress: "http://example.com",
		OrderLookupMode: "auto",
		APIKeyHeader:    "X-Store-Key",
	}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.opts.LookupMode != LookupAuto {
		t.Fatalf("expected auto lookup, got %s", client.opts.LookupMode)
	}
	if client.opts.APIKeyHeader != "X-Store-Key" {
		t.Fatalf("expected configured api key header, got %s", client.opts.APIKeyHeader)
	}
	if client.opts.ClientKeyHeader != defaultClientKeyHeader {
		t.Fatalf("expected default client key header, got %s", client.opts.ClientKeyHeader)
	}
}

func TestNewClientRejectsUnknownLookupMode(t *testing.T) {
	cfg := &config.Config{OrderAPIAddress: "http://example.com", OrderLookupMode: "guess"}
	if _, err := newClient(clientParams{Config: cfg, Logger: testLogger()}); err == nil {
		t.Fatal("expected error for unknown lookup mode")
	}
}
