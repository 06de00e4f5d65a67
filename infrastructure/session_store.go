package infrastructure

import (
	"net/http"
	"time"
)

// SessionCookie is the fixed name under which the browser keeps its session.
const SessionCookie = "token"

// SessionStore persists the bearer credential between requests.
type SessionStore interface {
	// Load returns the stored credential, or "" when there is none.
	Load(r *http.Request) (string, error)
	Save(w http.ResponseWriter, r *http.Request, credential string) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

type cookieOptions struct {
	secure bool
	maxAge time.Duration
}

func (o cookieOptions) set(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(o.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   o.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (o cookieOptions) expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func readCookie(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// CookieStore keeps the credential itself in the session cookie.
type CookieStore struct {
	opts cookieOptions
}

// NewCookieStore creates a cookie backed session store
func NewCookieStore(cfg SessionConfig) *CookieStore {
	return &CookieStore{opts: cookieOptions{secure: cfg.CookieSecure, maxAge: cfg.MaxAge}}
}

func (s *CookieStore) Load(r *http.Request) (string, error) {
	return readCookie(r), nil
}

func (s *CookieStore) Save(w http.ResponseWriter, _ *http.Request, credential string) error {
	s.opts.set(w, credential)
	return nil
}

func (s *CookieStore) Clear(w http.ResponseWriter, _ *http.Request) error {
	s.opts.expire(w)
	return nil
}
