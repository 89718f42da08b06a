// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

// Package testinfra starts throwaway Docker containers for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// Tests call SkipIfNoDocker first so the suite still passes on machines
// without a Docker daemon.
//
//	func TestRedis(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    rc, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, rc)
//	    // dial rc.Addr
//	}
package testinfra
