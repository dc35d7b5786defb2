package web

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	flashCookie   = "fyyur_flash"
	sessionCookie = "fyyur_session"

	flashConsumedKey = "fyyur.flashes_consumed"
)

// FlashStore carries one-shot messages from a request that redirects to the
// request that follows it.
type FlashStore interface {
	// Save queues msgs for the next request from the same client.
	Save(c *gin.Context, msgs []string) error
	// Load returns and clears the queued messages.
	Load(c *gin.Context) ([]string, error)
}

// CookieStore keeps the messages themselves in a short-lived cookie.
type CookieStore struct {
	MaxAge int
}

func NewCookieStore() *CookieStore {
	return &CookieStore{MaxAge: 600}
}

// Save appends msgs to any messages still unread in the cookie.
func (s *CookieStore) Save(c *gin.Context, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}

	var queued []string
	if !c.GetBool(flashConsumedKey) {
		// An unreadable cookie is dropped rather than failing the redirect.
		queued, _ = decodeFlashCookie(c)
	}

	raw, err := json.Marshal(append(queued, msgs...))
	if err != nil {
		return err
	}
	setCookie(c, flashCookie, base64.RawURLEncoding.EncodeToString(raw), s.MaxAge)
	return nil
}

func (s *CookieStore) Load(c *gin.Context) ([]string, error) {
	if c.GetBool(flashConsumedKey) {
		return nil, nil
	}
	c.Set(flashConsumedKey, true)

	if value, err := c.Cookie(flashCookie); err != nil || value == "" {
		return nil, nil
	}
	setCookie(c, flashCookie, "", -1)
	return decodeFlashCookie(c)
}

func decodeFlashCookie(c *gin.Context) ([]string, error) {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	var msgs []string
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// FlashBackend stores messages under a session id. The Redis client
// implements it.
type FlashBackend interface {
	PushFlashes(ctx context.Context, sessionID string, msgs []string) error
	PopFlashes(ctx context.Context, sessionID string) ([]string, error)
}

// SessionStore keeps only a random session id in the cookie and the messages
// in a FlashBackend.
type SessionStore struct {
	backend FlashBackend
	MaxAge  int
}

func NewSessionStore(backend FlashBackend) *SessionStore {
	return &SessionStore{backend: backend, MaxAge: 86400}
}

func (s *SessionStore) Save(c *gin.Context, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	sid, err := c.Cookie(sessionCookie)
	if err != nil || uuid.Validate(sid) != nil {
		sid = uuid.NewString()
		setCookie(c, sessionCookie, sid, s.MaxAge)
	}
	return s.backend.PushFlashes(c.Request.Context(), sid, msgs)
}

func (s *SessionStore) Load(c *gin.Context) ([]string, error) {
	sid, err := c.Cookie(sessionCookie)
	if err != nil || uuid.Validate(sid) != nil {
		return nil, nil
	}
	return s.backend.PopFlashes(c.Request.Context(), sid)
}

func setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", false, true)
}
