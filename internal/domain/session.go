package domain

import (
	"strings"
	"time"
)

// Session represents an access-token record created by the hosting app's
// OAuth flow. Offline sessions carry the long-lived tokens used for
// server-to-server Admin API calls; the quote pipeline only ever reads them.
type Session struct {
	ID          string     `json:"id"`
	Shop        string     `json:"shop"`
	IsOnline    bool       `json:"is_online"`
	AccessToken string     `json:"access_token"`
	Scope       string     `json:"scope"`
	Expires     *time.Time `json:"expires,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HasScope reports whether the granted scope string contains the given scope.
// Shopify stores scopes as a comma-separated list; entries are compared
// exactly, not by substring.
func (s *Session) HasScope(scope string) bool {
	for _, granted := range strings.Split(s.Scope, ",") {
		if strings.TrimSpace(granted) == scope {
			return true
		}
	}
	return false
}

// Expired reports whether the session has expired at the given time.
// A nil Expires means the token never expires.
func (s *Session) Expired(now time.Time) bool {
	return s.Expires != nil && !s.Expires.After(now)
}
