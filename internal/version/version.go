// Package version holds the build version reported by the CLI.
package version

// Version is set at build time via -ldflags.
var Version = "0.1.0-dev"
