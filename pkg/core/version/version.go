// ============================================================================
// calc - Interaktiver Rechner
// ============================================================================
//
// Package:     version
// Description: Central version management for the calc binary and its
//              front ends
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for calc components
const (
	// Application version
	Platform = "0.2.0"

	// Component versions
	Language = "0.2.0"
	REPL     = "0.2.0"
	TUI      = "0.1.0"
	Server   = "0.1.0"

	// Protocol is the version of the websocket message format
	Protocol = "1.0.0"
)

// Set at build time via -ldflags "-X github.com/msto63/calc/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "language":
		return Language
	case "repl":
		return REPL
	case "tui":
		return TUI
	case "server":
		return Server
	case "protocol":
		return Protocol
	default:
		return Platform
	}
}

// String returns the one-line version banner
func String() string {
	return fmt.Sprintf("calc %s (commit %s, built %s, %s %s/%s)",
		Platform, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
