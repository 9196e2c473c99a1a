package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// SessionIDContextKey is a gin context key for the session identifier.
	SessionIDContextKey = "sessionID"
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "kakigori_session"
)

// SessionCodec issues and verifies session tokens.
type SessionCodec interface {
	NewSession() (id, token string)
	Parse(token string) (string, error)
	TTL() time.Duration
}

// Session resolves the caller's session from its cookie, starting a new one
// when the cookie is missing, expired or forged.
func Session(codec SessionCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookieName); err == nil {
			if id, err := codec.Parse(token); err == nil {
				c.Set(SessionIDContextKey, id)
				c.Next()
				return
			}
		}

		id, token := codec.NewSession()
		setSessionCookie(c, token, codec.TTL())
		c.Set(SessionIDContextKey, id)
		c.Next()
	}
}

func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", c.Request.TLS != nil, true)
}
