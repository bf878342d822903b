package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
)

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser with a focus on utilizing embedded HTML templates through fs.FS.
type Parse struct {
	fs  fs.FS
	fns html.FuncMap
}

// NewParser constructs a Parse with the provided functional options.
//
// Without WithFS, templates resolve against the current working directory.
func NewParser(opts ...ParserOptFn) Parser {
	p := &Parse{fns: make(html.FuncMap)}
	for _, opt := range opts {
		opt(p)
	}

	if p.fs == nil {
		p.fs = os.DirFS(".")
	}

	return p
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
//
// The first filepath names the root template; empty filepaths are skipped.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	cleaned := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp == "" {
			continue
		}
		cleaned = append(cleaned, fp)
	}

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	return html.New(path.Base(cleaned[0])).Funcs(p.fns).ParseFS(p.fs, cleaned...)
}
