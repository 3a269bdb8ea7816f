// Package logging provides structured logging configuration for filemock.
//
// This package wraps log/slog so the parser, renderer, fetcher and engine
// all emit diagnostics the same way.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Warn("skipping mock file", "file", path, "error", err)
//
// Components accept a *slog.Logger in their constructor. A nil logger is
// replaced by Nop().
package logging
