// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package logging provides the process-wide structured logger used by the
// renderer core. It follows the same package-level-logger convention used
// elsewhere in the ecosystem (a single *zap.Logger reached through a
// package variable rather than threaded through every call), so call sites
// read as logging.Log.Debug(...), logging.Log.Warn(...), and so on.
package logging

import (
	"go.uber.org/zap"
)

// Log is the process-wide logger. It is safe for concurrent use by
// multiple goroutines, which matters here since bucket workers log
// independently. Log starts as a no-op logger; call Init to install a
// production or development logger.
var Log = zap.NewNop()

// Init installs the process-wide logger. When debug is true, Init builds a
// development-style colored console encoder; otherwise it builds a JSON
// encoder suitable for ingestion by log collectors. Init panics if the
// underlying zap configuration fails to build, since a broken logger
// configuration is a programming error, not a runtime condition callers
// should recover from.
func Init(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		panic("logging: failed to build logger: " + err.Error())
	}
	Log = l
}

// Sync flushes any buffered log entries. Callers should defer Sync in
// main after calling Init.
func Sync() error {
	return Log.Sync()
}
