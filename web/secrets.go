package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/whisperwall/whisperwall/audit"
	"github.com/whisperwall/whisperwall/http/resp"
	"github.com/whisperwall/whisperwall/http/session"
)

// secretsPage is the data rendered by the secrets listing.
type secretsPage struct {
	Secrets []string
}

// Secrets lists every published secret anonymously.
//
// Only the secret text crosses the wire; records without one are filtered
// out by the store, and no identity accompanies any entry.
func (h *Handler) Secrets(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.WithSecrets()
	if err != nil {
		h.Html(w, r, resp.Unauthed(), resp.Tmpls(secretsTmpl), resp.Err(err), resp.Data(secretsPage{}))
		return
	}

	page := secretsPage{Secrets: make([]string, 0, len(users))}
	for _, u := range users {
		if u.HasSecret() {
			page.Secrets = append(page.Secrets, u.Secret.String)
		}
	}

	opts := []resp.Fn{resp.Tmpls(secretsTmpl), resp.Data(page)}
	if user, ok := h.currentUser(r); ok {
		opts = append(opts, resp.Authed(), resp.User(user))
	} else {
		opts = append(opts, resp.Unauthed())
	}

	h.Html(w, r, opts...)
}

// SubmitForm renders the secret submission form for the authenticated user.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	h.Html(w, r, resp.Authed(), resp.Tmpls(submitTmpl))
}

// Submit overwrites the authenticated user's secret.
//
// The user is resolved strictly from the session-populated context;
// nothing in the form selects whose record mutates.
// A failed write surfaces a flash instead of silently redirecting.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		h.Redirect(w, r, resp.Url("/login"), resp.Code(http.StatusUnauthorized))
		return
	}

	event := audit.Event{
		Actor:    user.Username,
		Action:   audit.ActionSubmit,
		Target:   "secret",
		TargetID: strconv.Itoa(int(user.ID)),
		Detail:   "from " + ipAddr(r),
	}

	secret := strings.TrimSpace(r.PostFormValue("secret"))
	if secret == "" {
		event.Detail += "; failed"
		h.record(r.Context(), event)
		h.Redirect(w, r, resp.Url("/submit"), resp.Flash(session.Flash{
			Class: session.FlashError,
			Msg:   session.BadInputMsg,
		}))
		return
	}

	if err := h.users.SaveSecret(user.ID, secret); err != nil {
		event.Detail += "; failed"
		h.record(r.Context(), event)
		h.logger.Error("failed saving secret: "+err.Error(), nil)
		h.Redirect(w, r, resp.Url("/submit"), resp.Flash(session.Flash{
			Class: session.FlashError,
			Msg:   session.DefaultErrMsg,
		}))
		return
	}

	event.Detail += "; succeeded"
	h.record(r.Context(), event)

	h.Redirect(w, r, resp.Url("/secrets"))
}
