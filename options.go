package retheme

import (
	"log/slog"

	"github.com/tsawler/retheme/internal/logging"
	"github.com/tsawler/retheme/theme"
)

// ApplyOptions holds configuration for a theme application.
type ApplyOptions struct {
	// Layout names, filled from explicit setters first and then the profile
	layouts theme.Config
	profile string

	logger *slog.Logger
}

// defaultOptions returns the default options.
func defaultOptions() ApplyOptions {
	return ApplyOptions{
		logger: logging.NewNop(),
	}
}

// clone creates a copy of ApplyOptions. All fields are values or shared
// read-only pointers.
func (o ApplyOptions) clone() ApplyOptions {
	return ApplyOptions{
		layouts: o.layouts,
		profile: o.profile,
		logger:  o.logger,
	}
}
