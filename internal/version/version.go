// Package version holds the application version.
package version

// Version is the current application version.
// It can be overridden at build time via -ldflags "-X opus-gate/internal/version.Version=x.y.z".
var Version = "1.0.0"
