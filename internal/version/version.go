// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - tcell backend, headless frame command, YAML config
// 0.2.0 - Hero overlay with spring entrance, halo tinting
// 0.1.0 - Initial release: drifting, twinkling star field in the terminal
