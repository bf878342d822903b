package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/audit"
	"github.com/whisperwall/whisperwall/auth"
	"github.com/whisperwall/whisperwall/http/resp"
	"github.com/whisperwall/whisperwall/http/session"
)

// LoginForm renders the login page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.Html(w, r, resp.Unauthed(), resp.Tmpls(loginTmpl))
}

// Login authenticates the submitted credentials and establishes a session.
//
// Unknown usernames and bad passwords are indistinguishable to the client;
// both flash the same message and land back on the login form.
// Every attempt, pass or fail, is recorded with the audit sink.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	event := audit.Event{
		Actor:  username,
		Action: audit.ActionLogin,
		Target: "session",
		Detail: "from " + ipAddr(r),
	}

	user, err := h.users.FindByUsername(username)
	if err == nil {
		err = auth.ComparePassword(user.Password, password)
	}

	if err != nil {
		event.Detail += "; failed"
		h.record(r.Context(), event)
		h.Redirect(w, r, resp.Url("/login"), resp.Flash(session.Flash{
			Class: session.FlashError,
			Msg:   session.BadCredsMsg,
		}))
		return
	}

	s, serr := h.session(r)
	if serr == nil {
		serr = s.RegisterUser(w, r, user.ID)
	}

	if serr != nil {
		event.Detail += "; failed"
		h.record(r.Context(), event)
		h.Err(w, r, serr)
		return
	}

	event.TargetID = strconv.Itoa(int(user.ID))
	event.Detail += "; succeeded"
	h.record(r.Context(), event)

	h.Redirect(w, r, resp.Url(nextOrDefault(r, "/secrets")))
}

// RegisterForm renders the registration page.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.Html(w, r, resp.Unauthed(), resp.Tmpls(registerTmpl))
}

// Register creates a local-credential account.
//
// On success the session is established and the client lands on /login.
// A taken username flashes a dedicated message; all failures return to the form.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	event := audit.Event{
		Actor:  username,
		Action: audit.ActionRegister,
		Target: "user",
		Detail: "from " + ipAddr(r),
	}

	if username == "" || password == "" {
		event.Detail += "; failed"
		h.record(r.Context(), event)
		h.Redirect(w, r, resp.Url("/register"), resp.Flash(session.Flash{
			Class: session.FlashError,
			Msg:   session.BadInputMsg,
		}))
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		event.Detail += "; failed"
		h.record(r.Context(), event)
		h.Err(w, r, err)
		return
	}

	user := &whisperwall.User{Username: username, Password: hash}
	if err := h.users.Create(user); err != nil {
		event.Detail += "; failed"
		h.record(r.Context(), event)

		msg := session.DefaultErrMsg
		if errors.Is(err, whisperwall.ErrExists) {
			msg = session.TakenMsg
		}

		h.logger.Error("failed creating user: "+err.Error(), nil)
		h.Redirect(w, r, resp.Url("/register"), resp.Flash(session.Flash{
			Class: session.FlashError,
			Msg:   msg,
		}))
		return
	}

	s, serr := h.session(r)
	if serr == nil {
		serr = s.RegisterUser(w, r, user.ID)
	}
	if serr != nil {
		h.logger.Error("failed establishing session post-registration: "+serr.Error(), nil)
	}

	event.TargetID = strconv.Itoa(int(user.ID))
	event.Detail += "; succeeded"
	h.record(r.Context(), event)

	h.Redirect(w, r, resp.Url("/login"))
}

// Logout removes the user from their session and deletes it,
// invalidating the cookie so replays fail.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		h.Redirect(w, r, resp.ToRoot())
		return
	}

	if err := s.DeregisterUser(w, r); err != nil {
		h.logger.Error("failed deregistering user: "+err.Error(), nil)
	}

	if err := s.Delete(w, r); err != nil {
		h.logger.Error("failed deleting session: "+err.Error(), nil)
	}

	h.Redirect(w, r, resp.ToRoot())
}

// nextOrDefault returns the relative URL in the "next" query param,
// falling back to def.
//
// Only same-site paths are honored.
func nextOrDefault(r *http.Request, def string) string {
	next := r.URL.Query().Get("next")
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}

	return def
}
