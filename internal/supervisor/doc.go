// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

/*
Package supervisor runs the long-lived services of Challengerec under a suture
v4 supervisor tree.

	RootSupervisor ("challengerec")
	├── DataSupervisor ("data-layer")
	│   └── RefreshService
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheGCService (badger cache backend only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A refresh that keeps failing is restarted with backoff inside the data layer
while the API layer continues to serve the last committed similarity graph.
Supervisor events are logged through sutureslog and the zerolog slog adapter.

Shutdown cancels the root context; each layer waits up to ShutdownTimeout for
its services to return.
*/
package supervisor
