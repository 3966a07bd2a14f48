// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package services adapts Forkfeed components to suture.Service.

  - HTTPServerService: runs an *http.Server and shuts it down gracefully
    when the supervisor stops it.
  - SuggestionWarmer: periodically recomputes follow suggestions for known
    users so cached lists stay fresh.

Each service implements fmt.Stringer so supervisor events name it.
*/
package services
