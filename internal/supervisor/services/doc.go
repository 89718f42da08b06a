// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

/*
Package services adapts Challengerec components to suture.Service.

Each service blocks in Serve until its context is canceled and returns
ctx.Err() on a clean stop, so suture never treats shutdown as a crash.
Services depend on small interfaces rather than concrete packages:

	RefreshService   -> Refresher        (*recommend.Engine)
	CacheGCService   -> GarbageCollector (*cache.BadgerStore)
	HTTPServerService -> HTTPServer      (*http.Server)
*/
package services
