package handler

import (
	"errors"
	"log"
	"net/http"

	"moviepicks/internal/httputil"
	"moviepicks/internal/model"
	"moviepicks/internal/service"
	"moviepicks/internal/session"
	"moviepicks/internal/transport/http/middleware"
)

// Flash message keys. The keys (and wording) match what the login and home
// views have always shown.
const (
	FlashNeedUsername      = "needUser"
	FlashNeedPassword      = "needPassword"
	FlashDuplicateName     = "duplicateName"
	FlashUserDoesntExist   = "userDoesntExist"
	FlashIncorrectPassword = "incorrectPassword"
	FlashLoggedOut         = "loggedOut"
	FlashGenericFailure    = "genericFailure"
)

// AuthHandler groups the signup/login/logout endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	sessions    *session.Manager
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// loginView is the view model for the login/signup page
type loginView struct {
	Flash map[string]string `json:"flash"`
}

// LoginPage renders the login/signup view model
// GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	flash, err := h.sessions.DrainFlash(r.Context(), sess)
	if err != nil {
		log.Printf("[auth] failed to drain flash: %v", err)
		flash = map[string]string{}
	}

	httputil.WriteJSON(w, http.StatusOK, loginView{Flash: flash})
}

// Signup creates an account and logs the new user in
// POST /users/new with user[username], user[password]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	req := &model.RegisterRequest{
		Username: r.PostFormValue("user[username]"),
		Password: r.PostFormValue("user[password]"),
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPasswordRequired):
			h.flash(r, sess, FlashNeedPassword, "Please enter a password")
		case errors.Is(err, model.ErrUsernameRequired):
			h.flash(r, sess, FlashNeedUsername, "Please enter a valid username")
		case errors.Is(err, model.ErrUsernameExists):
			h.flash(r, sess, FlashDuplicateName, "Username already in use")
		default:
			log.Printf("[auth] signup failed: %v", err)
			h.flash(r, sess, FlashGenericFailure, "Something went wrong, please try again")
		}
		httputil.Redirect(w, r, "/login")
		return
	}

	// Signup implies login
	if err := h.sessions.SetCurrentUser(r.Context(), sess, user); err != nil {
		log.Printf("[auth] failed to set session user after signup: %v", err)
		h.flash(r, sess, FlashGenericFailure, "Something went wrong, please try again")
		httputil.Redirect(w, r, "/login")
		return
	}

	httputil.Redirect(w, r, "/")
}

// Login authenticates and binds the user to the session
// POST /session with user[username], user[password]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	req := &model.LoginRequest{
		Username: r.PostFormValue("user[username]"),
		Password: r.PostFormValue("user[password]"),
	}

	user, err := h.userService.Login(r.Context(), req)
	if err != nil {
		// Same error kind either way; only the flash wording differs, which
		// is what the login page has always shown.
		if errors.Is(err, model.ErrUserNotFound) {
			h.flash(r, sess, FlashUserDoesntExist, "Incorrect Username")
		} else if errors.Is(err, model.ErrInvalidCredentials) {
			h.flash(r, sess, FlashIncorrectPassword, "Incorrect Password")
		} else {
			log.Printf("[auth] login failed: %v", err)
			h.flash(r, sess, FlashGenericFailure, "Something went wrong, please try again")
		}
		httputil.Redirect(w, r, "/login")
		return
	}

	if err := h.sessions.SetCurrentUser(r.Context(), sess, user); err != nil {
		log.Printf("[auth] failed to set session user: %v", err)
		h.flash(r, sess, FlashGenericFailure, "Something went wrong, please try again")
		httputil.Redirect(w, r, "/login")
		return
	}

	httputil.Redirect(w, r, "/")
}

// Logout clears the session identity
// DELETE /session (forms reach this via the _method override)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	if err := h.sessions.ClearCurrentUser(r.Context(), sess); err != nil {
		log.Printf("[auth] failed to clear session: %v", err)
	}

	h.flash(r, sess, FlashLoggedOut, "You have been logged out")
	httputil.Redirect(w, r, "/login")
}

func (h *AuthHandler) flash(r *http.Request, sess *session.Session, key, message string) {
	if err := h.sessions.PushFlash(r.Context(), sess, key, message); err != nil {
		log.Printf("[auth] failed to push flash %q: %v", key, err)
	}
}
