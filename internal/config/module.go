package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module provides the loaded Config and reports insecure settings at startup.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(warnInsecure),
)

// InsecureSessionSecret reports whether cookies are signed with the built-in secret.
func (c *Config) InsecureSessionSecret() bool {
	return c.SessionSecret == defaultSessionSecret
}

func warnInsecure(cfg *Config, logger *slog.Logger) {
	if cfg.InsecureSessionSecret() {
		logger.Warn("session cookies are signed with the default secret; set SESSION_SECRET")
	}
	if cfg.ClientKey == "" {
		logger.Warn("CLIENT_KEY is empty; the order service may reject requests")
	}
}
