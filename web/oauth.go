package web

import (
	"net/http"
	"strconv"

	"github.com/whisperwall/whisperwall/audit"
	"github.com/whisperwall/whisperwall/http/resp"
	"github.com/whisperwall/whisperwall/http/session"
)

// OAuthRedirect kicks off the Google handshake,
// sending the client to the provider's consent screen
// with a signed state parameter binding the round trip.
func (h *Handler) OAuthRedirect(w http.ResponseWriter, r *http.Request) {
	url, err := h.oauth.LoginURL()
	if err != nil {
		h.logger.Error("failed building consent URL: "+err.Error(), nil)
		h.Redirect(w, r, resp.Url("/login"), resp.Flash(session.Flash{
			Class: session.FlashError,
			Msg:   session.DefaultErrMsg,
		}))
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// OAuthCallback completes the Google handshake:
// verify state, exchange the code, fetch the profile,
// find or create the matching account, and establish a session.
//
// Any failure lands back on /login; the audit sink records the outcome either way.
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	event := audit.Event{
		Actor:  "google",
		Action: audit.ActionOAuth,
		Target: "user",
		Detail: "from " + ipAddr(r),
	}

	fail := func(err error) {
		event.Detail += "; failed"
		h.record(r.Context(), event)
		h.logger.Error("google sign-in failed: "+err.Error(), nil)
		h.Redirect(w, r, resp.Url("/login"), resp.Flash(session.Flash{
			Class: session.FlashError,
			Msg:   session.BadCredsMsg,
		}))
	}

	if err := h.oauth.VerifyState(r.URL.Query().Get("state")); err != nil {
		fail(err)
		return
	}

	token, err := h.oauth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		fail(err)
		return
	}

	info, err := h.oauth.FetchUser(r.Context(), token)
	if err != nil {
		fail(err)
		return
	}

	user, err := h.users.FindOrCreateByGoogleID(info.Id)
	if err != nil {
		fail(err)
		return
	}

	s, err := h.session(r)
	if err == nil {
		err = s.RegisterUser(w, r, user.ID)
	}

	if err != nil {
		fail(err)
		return
	}

	event.TargetID = strconv.Itoa(int(user.ID))
	event.Detail += "; succeeded"
	h.record(r.Context(), event)

	h.Redirect(w, r, resp.Url("/secrets"))
}
