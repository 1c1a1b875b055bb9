package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"moviepicks/internal/model"
)

// CookieName is the cookie carrying the signed session ID.
const CookieName = "session"

// Session is the per-request view of a visitor's session. Authenticated is
// false for anonymous visitors; UserID and Username are then zero values.
type Session struct {
	ID            string
	Authenticated bool
	UserID        int64
	Username      string
}

// Manager issues and loads sessions. The session ID is a random UUID wrapped
// in an HS256 JWT before it goes into the cookie, so the raw ID never leaves
// the server unsigned and a tampered cookie falls back to a fresh session.
type Manager struct {
	store  Store
	secret []byte
	maxAge time.Duration
}

func NewManager(store Store, secret string, maxAge time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		maxAge: maxAge,
	}
}

// Load resolves the request's session, minting a new one (and setting the
// cookie) for first-time or tampered visitors.
func (m *Manager) Load(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if sid, err := m.parseToken(cookie.Value); err == nil {
			return m.resolve(ctx, sid)
		}
	}

	sid := uuid.New().String()
	token, err := m.signToken(sid)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return &Session{ID: sid}, nil
}

func (m *Manager) resolve(ctx context.Context, sid string) (*Session, error) {
	userID, username, err := m.store.GetUser(ctx, sid)
	if err != nil {
		if err == ErrNoSession {
			return &Session{ID: sid}, nil
		}
		return nil, err
	}

	return &Session{
		ID:            sid,
		Authenticated: true,
		UserID:        userID,
		Username:      username,
	}, nil
}

// SetCurrentUser binds the user to the session (login, or signup-implies-login).
func (m *Manager) SetCurrentUser(ctx context.Context, sess *Session, user *model.User) error {
	if err := m.store.SetUser(ctx, sess.ID, user.ID, user.Username); err != nil {
		return err
	}
	sess.Authenticated = true
	sess.UserID = user.ID
	sess.Username = user.Username
	return nil
}

// ClearCurrentUser removes the identity from the session (logout). Flash
// messages queued for the post-logout redirect survive.
func (m *Manager) ClearCurrentUser(ctx context.Context, sess *Session) error {
	if err := m.store.ClearUser(ctx, sess.ID); err != nil {
		return err
	}
	sess.Authenticated = false
	sess.UserID = 0
	sess.Username = ""
	return nil
}

// PushFlash queues a one-shot message for the next render.
func (m *Manager) PushFlash(ctx context.Context, sess *Session, key, message string) error {
	return m.store.PushFlash(ctx, sess.ID, key, message)
}

// DrainFlash returns all queued messages and clears them.
func (m *Manager) DrainFlash(ctx context.Context, sess *Session) (map[string]string, error) {
	return m.store.DrainFlash(ctx, sess.ID)
}

func (m *Manager) signToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(m.maxAge).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", jwt.ErrTokenInvalidClaims
	}

	return sid, nil
}
