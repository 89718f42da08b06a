// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

/*
Package main is the entry point for the Challengerec server.

Challengerec recommends challenge rooms to a user from the activity of users
with a similar category profile, falling back to the full catalog.

Component initialization order:

 1. Configuration: koanf v2 (defaults, YAML file, environment)
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB holding the action log and versioned similarity graph
 4. Cache: redis, badger or memory store for per-user ranked lists
 5. Upstream: challenge service client with rate limit, breaker and retry
 6. Engine: loads the committed graph version
 7. Supervisor tree: refresh scheduler, cache GC and HTTP server

The process stops on SIGINT or SIGTERM. In-flight requests drain for up to
the configured server timeout and an interrupted refresh leaves the previous
graph in place.
*/
package main
