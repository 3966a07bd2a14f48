// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package logging provides the zerolog-based logger used across Forkfeed.

A global logger is configured once at startup:

	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})

Components take a zerolog.Logger by value, usually built with WithComponent:

	engine := recommend.NewEngine(cfg, graph, c, logging.WithComponent("recommend"))

Request-scoped entries pick up the request, correlation and viewer ids that
the HTTP middleware stores in the context:

	logging.Ctx(ctx).Warn().Err(err).Msg("Suggestion lookup failed")

Libraries that speak log/slog (sutureslog, Watermill) are bridged through
SlogHandler:

	slogger := logging.NewSlogLogger()

Always terminate event chains with Msg or Send; an unterminated chain is
never written.
*/
package logging
