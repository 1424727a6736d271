// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

/*
Package supervisor provides process supervision using suture v4.

# Overview

Every long-running component runs under a two-layer tree:

	RootSupervisor ("recommendations")
	├── DataSupervisor ("data-layer")
	│   └── StoreMonitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A listener that crashes is restarted by the api-layer without touching the
store monitor, and a monitor that fails does not take the API down.

Supervisor events (start, failure, backoff, restart) are written to a
*slog.Logger through sutureslog. cmd/server passes logging.NewSlogLogger, so
they end up in the same zerolog stream as the rest of the service.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewStoreMonitorService(store, 30*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh
	tree.LogUnstoppedServices()

# Configuration

Zero fields of TreeConfig take suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# What Is NOT Supervised

The store itself is not a service. DuckDB is embedded and GORM manages its
own pool. The circuit breaker in the database package isolates store failures
at the call level, and the store monitor reports them.
*/
package supervisor
