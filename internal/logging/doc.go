// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

// Package logging provides the process-wide zerolog logger.
//
// The logger is usable before Init is called; main reconfigures it from
// the loaded configuration:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//	logging.Info().Str("addr", addr).Msg("Server listening")
//
// Handlers log through Ctx so the request ID set by the HTTP middleware is
// included:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Update rejected")
//
// Two bridges adapt zerolog to libraries with their own logger contracts:
// SlogHandler for the suture supervisor (via sutureslog) and GormLogger for
// the GORM-backed store.
//
// Environment:
//   - LOG_LEVEL: trace, debug, info, warn, error (default info)
//   - LOG_FORMAT: json or console (default json)
//   - LOG_CALLER: include file:line (default false)
//   - LOG_SILENT=1: disable output before Init, used by tests
//
// Always finish an event with Msg or Send, otherwise nothing is written.
package logging
