// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

/*
Package services provides suture.Service wrappers for the long-running parts
of the recommendation service.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer, which suture uses to name the service in its events.

# Available Services

HTTPServerService (api-layer):
  - Runs *http.Server.ListenAndServe in a goroutine
  - Calls Shutdown with a bounded timeout when the context is canceled
  - Returns listen errors so the supervisor restarts it

StoreMonitorService (data-layer):
  - Pings the store and counts records on a fixed interval
  - Publishes the store_up and recommendations_total gauges
  - Logs health transitions once instead of on every tick
*/
package services
