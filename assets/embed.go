// Package assets holds the static files served under /assets.
package assets

import "embed"

//go:embed *.js *.css *.svg
var FS embed.FS
