package web

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"flaskr/internal/config"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const (
	sessionName = "session"
	loggedInKey = "logged_in"
	flashesKey  = "_flashes"

	// maxFlashes bounds the queue so clients that never render a page
	// cannot grow the cookie past securecookie's size limit.
	maxFlashes = 10
)

// NewSessionStore returns a cookie store whose signing and encryption keys
// are derived from the configured secret.
func NewSessionStore(cfg config.Config) (*sessions.CookieStore, error) {
	hashKey, blockKey, err := sessionKeys(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("derive session keys: %w", err)
	}
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 31,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

func sessionKeys(secret string) (hashKey []byte, blockKey []byte, err error) {
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("flaskr session cookie"))
	hashKey = make([]byte, 64)
	blockKey = make([]byte, 32)
	if _, err := io.ReadFull(kdf, hashKey); err != nil {
		return nil, nil, err
	}
	if _, err := io.ReadFull(kdf, blockKey); err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}

// Session is the typed view of the cookie. LoggedIn is the only
// authorization signal the app knows about.
type Session struct {
	LoggedIn bool

	raw     *sessions.Session
	flashes []string
	dirty   bool
}

func (app *App) session(r *http.Request) *Session {
	raw, err := app.Store.Get(r, sessionName)
	if err != nil {
		// A tampered or stale cookie yields a fresh, anonymous session.
		slog.Debug("Discarding unreadable session cookie", "error", err)
	}
	return decodeSession(raw)
}

func decodeSession(raw *sessions.Session) *Session {
	s := &Session{raw: raw}
	s.LoggedIn, _ = raw.Values[loggedInKey].(bool)
	s.flashes, _ = raw.Values[flashesKey].([]string)
	return s
}

func (s *Session) encode() {
	if s.LoggedIn {
		s.raw.Values[loggedInKey] = true
	} else {
		delete(s.raw.Values, loggedInKey)
	}
	if len(s.flashes) > 0 {
		s.raw.Values[flashesKey] = s.flashes
	} else {
		delete(s.raw.Values, flashesKey)
	}
}

func (s *Session) LogIn() {
	s.LoggedIn = true
	s.dirty = true
}

func (s *Session) LogOut() {
	s.LoggedIn = false
	s.dirty = true
}

// Flash queues msg for the next rendered page. Past maxFlashes the oldest
// messages are dropped.
func (s *Session) Flash(msg string) {
	s.flashes = append(s.flashes, msg)
	if n := len(s.flashes); n > maxFlashes {
		s.flashes = append([]string(nil), s.flashes[n-maxFlashes:]...)
	}
	s.dirty = true
}

// DrainFlashes returns the queued messages and empties the queue.
func (s *Session) DrainFlashes() []string {
	out := s.flashes
	if len(out) > 0 {
		s.flashes = nil
		s.dirty = true
	}
	return out
}

// Save writes the cookie if anything changed since it was read.
func (s *Session) Save(w http.ResponseWriter, r *http.Request) error {
	if !s.dirty {
		return nil
	}
	s.encode()
	if err := s.raw.Save(r, w); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
