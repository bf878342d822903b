package web

import (
	"embed"
	"io/fs"
)

//go:embed tmpl
var templates embed.FS

//go:embed assets
var assets embed.FS

// Templates exposes the embedded HTML templates for parsing.
func Templates() fs.FS { return templates }

// Assets exposes the embedded static files, rooted at the assets directory,
// for serving under /assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}

	return sub
}
