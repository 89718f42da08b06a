// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

/*
Package api serves the recommendation HTTP interface on a chi router.

Routes:

	GET  /                                   service banner {"message": "<title> is running!"}
	POST /recommendations                    {"user_email","page","size"} -> {"roomIds":[...]}
	GET  /api/v1/recommendations/{userID}    ?page=&size=, APIResponse envelope
	GET  /api/v1/health/live                 always 200
	GET  /api/v1/health/ready                503 until the first similarity graph exists
	POST /api/v1/admin/refresh               202, or 409 while a refresh runs
	GET  /api/v1/admin/status                refresh state and engine counters
	GET  /metrics                            Prometheus exposition

Middleware, outermost first: request ID with logging context, real IP,
panic recovery, CORS, then per-group rate limiting (go-chi/httprate) and
Prometheus instrumentation.

Engine errors map to HTTP as follows:

	recommend.ErrUpstreamFetch      502 UPSTREAM_ERROR
	recommend.ErrPersistence        500 DATABASE_ERROR
	context.DeadlineExceeded        504 TIMEOUT
	recommend.ErrRefreshInProgress  409 REFRESH_IN_PROGRESS
*/
package api
