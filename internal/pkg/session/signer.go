package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

const defaultTTL = 30 * 24 * time.Hour

// Options configures Signer.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}

// Signer issues and verifies session tokens signed with HMAC-SHA256.
// A token carries the session id and its expiry.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner builds a Signer with the given secret.
func NewSigner(secret string, opts Options) *Signer {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: now}
}

// TTL is how long an issued token stays valid.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// NewSession creates a random session id and its token.
func (s *Signer) NewSession() (id, token string) {
	id = uuid.NewString()
	return id, s.Issue(id)
}

// Issue returns a signed token for the session id.
func (s *Signer) Issue(sessionID string) string {
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s:%d", sessionID, expires)
	token := payload + ":" + s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(token))
}

// Parse validates the token and returns the session id.
func (s *Signer) Parse(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 || parts[0] == "" {
		return "", ErrInvalidToken
	}

	payload := parts[0] + ":" + parts[1]
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[2])) {
		return "", ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !s.now().Before(time.Unix(expires, 0)) {
		return "", ErrInvalidToken
	}

	return parts[0], nil
}

func (s *Signer) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
