// Package build holds version information set at release time.
package build

// Version is overridden at build time via -ldflags.
var Version = "dev"
