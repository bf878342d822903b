package web

import (
	"net/http"

	"github.com/whisperwall/whisperwall/http/resp"
)

// Home renders the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.Html(w, r, resp.Unauthed(), resp.Tmpls(homeTmpl))
}

// Terms renders the terms and conditions page.
func (h *Handler) Terms(w http.ResponseWriter, r *http.Request) {
	h.Html(w, r, resp.Unauthed(), resp.Tmpls(termsTmpl))
}
