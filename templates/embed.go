// Package templates holds the page templates compiled into the binary.
package templates

import "embed"

//go:embed layouts views partials
var FS embed.FS
