package web

import "embed"

// Templates holds the server-rendered pages and partials.
//
//go:embed templates/*.html
var Templates embed.FS

// Static holds the browser assets served under /static.
//
//go:embed static
var Static embed.FS
