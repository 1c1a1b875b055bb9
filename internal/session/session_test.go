package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviepicks/internal/model"
)

func newTestManager() *Manager {
	return NewManager(NewMemoryStore(), "test-secret", time.Hour)
}

func loadSession(t *testing.T, m *Manager) (*Session, *http.Cookie) {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	sess, err := m.Load(context.Background(), w, r)
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}
	return sess, cookies[0]
}

func loadWithCookie(t *testing.T, m *Manager, cookie *http.Cookie) *Session {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)

	sess, err := m.Load(context.Background(), w, r)
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	return sess
}

func TestManager_Load_NewVisitorGetsCookie(t *testing.T) {
	m := newTestManager()

	sess, cookie := loadSession(t, m)

	if sess.ID == "" {
		t.Error("expected a session ID")
	}
	if sess.Authenticated {
		t.Error("new sessions must be anonymous")
	}
	if cookie.Name != CookieName {
		t.Errorf("cookie name = %q, want %q", cookie.Name, CookieName)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	// The cookie must carry the signed token, never the raw session ID
	if cookie.Value == sess.ID {
		t.Error("cookie must not contain the unsigned session ID")
	}
}

func TestManager_Load_ReturningVisitorKeepsSession(t *testing.T) {
	m := newTestManager()

	first, cookie := loadSession(t, m)
	second := loadWithCookie(t, m, cookie)

	if second.ID != first.ID {
		t.Errorf("session ID changed across requests: %q vs %q", second.ID, first.ID)
	}
}

func TestManager_Load_TamperedCookieGetsFreshSession(t *testing.T) {
	m := newTestManager()

	_, cookie := loadSession(t, m)
	cookie.Value = cookie.Value + "x"

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)

	sess, err := m.Load(context.Background(), w, r)
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}

	if sess.Authenticated {
		t.Error("tampered cookie must not resolve to an authenticated session")
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("a fresh cookie should replace the tampered one")
	}
}

func TestManager_CurrentUserRoundTrip(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, cookie := loadSession(t, m)

	user := &model.User{ID: 7, Username: "alice"}
	if err := m.SetCurrentUser(ctx, sess, user); err != nil {
		t.Fatalf("failed to set current user: %v", err)
	}

	if !sess.Authenticated || sess.UserID != 7 || sess.Username != "alice" {
		t.Errorf("session not updated in place: %+v", sess)
	}

	// A later request with the same cookie sees the identity
	again := loadWithCookie(t, m, cookie)
	if !again.Authenticated {
		t.Fatal("expected authenticated session on the next request")
	}
	if again.UserID != 7 || again.Username != "alice" {
		t.Errorf("got user %d/%q, want 7/alice", again.UserID, again.Username)
	}

	// Logout clears the identity but keeps the session usable
	if err := m.ClearCurrentUser(ctx, again); err != nil {
		t.Fatalf("failed to clear current user: %v", err)
	}

	after := loadWithCookie(t, m, cookie)
	if after.Authenticated {
		t.Error("session should be anonymous after logout")
	}
}

func TestManager_FlashIsOneShot(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, _ := loadSession(t, m)

	if err := m.PushFlash(ctx, sess, "movieAdded", "Dune added to your list"); err != nil {
		t.Fatalf("failed to push flash: %v", err)
	}
	if err := m.PushFlash(ctx, sess, "loggedOut", "You have been logged out"); err != nil {
		t.Fatalf("failed to push flash: %v", err)
	}

	flash, err := m.DrainFlash(ctx, sess)
	if err != nil {
		t.Fatalf("failed to drain flash: %v", err)
	}

	if len(flash) != 2 {
		t.Fatalf("got %d flash messages, want 2", len(flash))
	}
	if flash["movieAdded"] != "Dune added to your list" {
		t.Errorf("unexpected flash: %q", flash["movieAdded"])
	}

	// Drained messages must not leak into the next cycle
	again, err := m.DrainFlash(ctx, sess)
	if err != nil {
		t.Fatalf("failed to drain flash twice: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second drain returned %d messages, want 0", len(again))
	}
}

func TestManager_FlashSurvivesLogout(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, _ := loadSession(t, m)
	if err := m.SetCurrentUser(ctx, sess, &model.User{ID: 1, Username: "alice"}); err != nil {
		t.Fatalf("failed to set current user: %v", err)
	}

	if err := m.ClearCurrentUser(ctx, sess); err != nil {
		t.Fatalf("failed to clear current user: %v", err)
	}
	if err := m.PushFlash(ctx, sess, "loggedOut", "You have been logged out"); err != nil {
		t.Fatalf("failed to push flash: %v", err)
	}

	flash, err := m.DrainFlash(ctx, sess)
	if err != nil {
		t.Fatalf("failed to drain flash: %v", err)
	}
	if flash["loggedOut"] == "" {
		t.Error("flash queued around logout should still be delivered")
	}
}
