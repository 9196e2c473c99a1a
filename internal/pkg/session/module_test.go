package session

import (
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/config"
)

func TestModuleProvidesSigner(t *testing.T) {
	cfg := &config.Config{SessionSecret: "secret", SessionTTL: time.Hour}

	var signer *Signer
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		Module,
		fx.Populate(&signer),
	)
	if err := app.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signer.TTL() != time.Hour {
		t.Fatalf("unexpected ttl: %s", signer.TTL())
	}
	if _, err := signer.Parse(signer.Issue("abc")); err != nil {
		t.Fatalf("expected configured secret to verify, got %v", err)
	}
}
