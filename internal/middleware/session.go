package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const sessionIDKey = "sid"

// SessionCookies reads and writes the session cookie. The cookie carries
// only the server-side session id, signed by a gorilla/sessions cookie
// store so a tampered value decodes as absent.
type SessionCookies struct {
	store *sessions.CookieStore
	name  string
}

// SessionCookieConfig configures SessionCookies.
type SessionCookieConfig struct {
	Name   string
	Secret string
	MaxAge time.Duration
	Secure bool
}

// NewSessionCookies creates the cookie codec.
func NewSessionCookies(cfg SessionCookieConfig) *SessionCookies {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	// also bounds the age accepted by the cookie codecs
	store.MaxAge(int(cfg.MaxAge.Seconds()))

	return &SessionCookies{store: store, name: cfg.Name}
}

// Name returns the cookie name.
func (c *SessionCookies) Name() string {
	return c.name
}

// Read returns the session id carried by the request cookie.
func (c *SessionCookies) Read(r *http.Request) (string, bool) {
	session, err := c.store.Get(r, c.name)
	if err != nil || session.IsNew {
		return "", false
	}

	id, ok := session.Values[sessionIDKey].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Write sets the session cookie for sessionID.
func (c *SessionCookies) Write(w http.ResponseWriter, r *http.Request, sessionID string) error {
	session, _ := c.store.New(r, c.name)
	session.Values[sessionIDKey] = sessionID
	return session.Save(r, w)
}

// Clear expires the session cookie on the client.
func (c *SessionCookies) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := c.store.New(r, c.name)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
