package resp

import (
	"net/url"
	"strings"

	"github.com/whisperwall/whisperwall/http/template"
	"github.com/whisperwall/whisperwall/logger"
)

// A ResponderOptFn configures a *Responder when passed to NewResponder.
type ResponderOptFn func(*Responder)

// WithAuthTemplate sets the root authenticated template to be parsed
// when Authed() is called.
func WithAuthTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.authed = fp
	}
}

// WithContactErrMsg sets the error message directing an end user
// to contact who operates the application.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithErrTemplate sets the root error template to be parsed
// when no other response can be formed.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.err = fp
	}
}

// WithLogger sets the logging back to use.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithParser sets the template.Parser to render templates with.
func WithParser(p template.Parser) ResponderOptFn {
	return func(d *Responder) {
		d.parser = p
	}
}

// WithRootUrl sets the root URL for the Responder to refer back to.
//
// An invalid URL swallows the error and sets "https://example.com".
func WithRootUrl(u string) ResponderOptFn {
	return func(d *Responder) {
		parsed, err := url.ParseRequestURI(strings.TrimSpace(u))
		if err != nil {
			parsed, _ = url.ParseRequestURI("https://example.com")
		}
		d.rootUrl = parsed
	}
}

// WithUnauthTemplate sets the root unauthenticated template to be parsed
// when Unauthed() is called.
func WithUnauthTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.unauthed = fp
	}
}
