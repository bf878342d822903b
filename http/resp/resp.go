// Package resp standardizes writing structured data as HTTP responses.
//
// A single *Responder is constructed once and shared across handlers;
// each response composes Fn options to select templates, status codes,
// redirect destinations and so forth.
package resp

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/whisperwall/whisperwall/http/session"
	"github.com/whisperwall/whisperwall/logger"
)

// A Response is the domain object governing how
// an HTTP response is written.
type Response struct {
	w http.ResponseWriter
	r *http.Request

	code  int
	data  any
	tmpls []string
	url   *url.URL
	user  any
}

// A Fn is a functional option mutating the final Response.
type Fn func(Responder, *Response) error

// Authed prepends the authenticated root template
// to the list of templates to be rendered.
//
// Authed requires a user in the request context, set there by User()
// or upstream middleware.
func Authed() Fn {
	return func(d Responder, r *Response) error {
		if d.templates.authed == "" {
			return fmt.Errorf("%w: no authed template configured", ErrBadConfig)
		}

		if r.user == nil {
			if err := User(nil)(d, r); err != nil {
				return fmt.Errorf("%w: no user to render authed template with", ErrMissingData)
			}
		}

		r.tmpls = append([]string{d.templates.authed}, r.tmpls...)
		return nil
	}
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data sets the data to be rendered or written out.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err logs the given error and defaults the response code
// to 500 when no code is yet set.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		d.logger.Error(e.Error(), newLogContext(r, e))
		if r.code == 0 {
			r.code = http.StatusInternalServerError
		}
		return nil
	}
}

// Flash adds the session.Flash to the session
// to be rendered on the next response.
func Flash(flash session.Flash) Fn {
	return func(d Responder, r *Response) error {
		s, err := d.Session(r.r.Context())
		if err != nil {
			return err
		}

		return s.SetFlash(r.w, r.r, flash)
	}
}

// GenericErr combines Err and a flash carrying the Responder's
// contact error message so the end user sees something actionable.
func GenericErr(e error) Fn {
	return func(d Responder, r *Response) error {
		if err := Err(e)(d, r); err != nil {
			return err
		}

		msg := d.contactErrMsg
		if msg == "" {
			msg = session.DefaultErrMsg
		}

		// NOTE: a missing session is not fatal here,
		// the error is already logged.
		if err := Flash(session.Flash{Class: session.FlashError, Msg: msg})(d, r); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		return nil
	}
}

// Param adds the key-value query parameter to the redirect destination.
//
// Param requires Url() or ToRoot() to have been called before it.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: no resp.url to append %q to", ErrMissingData, key)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// Success sets a session.FlashSuccess with the given message.
func Success(msg string) Fn {
	return func(d Responder, r *Response) error {
		return Flash(session.Flash{Class: session.FlashSuccess, Msg: msg})(d, r)
	}
}

// Tmpls appends the given template filepaths to those to be rendered.
func Tmpls(fps ...string) Fn {
	return func(_ Responder, r *Response) error {
		r.tmpls = append(r.tmpls, fps...)
		return nil
	}
}

// ToRoot sets the redirect destination to the application's root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		root := "/"
		if d.rootUrl != nil {
			root = d.rootUrl.String()
		}

		return Url(root)(d, r)
	}
}

// Unauthed prepends the unauthenticated root template
// to the list of templates to be rendered.
func Unauthed() Fn {
	return func(d Responder, r *Response) error {
		if d.templates.unauthed == "" {
			return fmt.Errorf("%w: no unauthed template configured", ErrBadConfig)
		}

		r.tmpls = append([]string{d.templates.unauthed}, r.tmpls...)
		return nil
	}
}

// Url sets the redirect destination, validating u parses.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(strings.TrimSpace(u))
		if err != nil {
			return fmt.Errorf("%w: cannot parse %q: %s", ErrInvalid, u, err)
		}

		r.url = parsed
		return nil
	}
}

// User sets the user to be rendered or written out.
//
// When u is nil, User falls back to the user stored in the request context.
func User(u any) Fn {
	return func(d Responder, r *Response) error {
		if u != nil {
			r.user = u
			return nil
		}

		ctxUser, err := d.CurrentUser(r.r.Context())
		if err != nil {
			return err
		}

		r.user = ctxUser
		return nil
	}
}

// newLogContext assembles the logger.LogContext for an errored Response.
func newLogContext(r *Response, e error) *logger.LogContext {
	ctx := &logger.LogContext{Error: e, Request: r.r}
	if u, ok := r.user.(logger.LogUser); ok {
		ctx.User = u
	}
	return ctx
}
