// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

/*
Package upstream fetches the user action log and the challenge catalog from the
challenge service.

Endpoints:
  - GET {base}/data     -> {"data":[{"userEmail","challengeId","category","startTime"}]}
  - GET {base}/data/id  -> {"data":[{"roomId"}]}

Resilience, outermost first:
  - Retry: exponential backoff (cenkalti/backoff/v5). 4xx responses other
    than 429 and an open circuit stop retrying immediately. A Retry-After
    header on 429 sets the next delay.
  - Rate limiting: a token bucket (x/time/rate) shared by both endpoints.
  - Circuit breaker: sony/gobreaker opens after repeated server or network
    failures. Client errors do not count against the breaker.
  - Timeout: each attempt is bounded by the configured HTTP timeout.

Every returned error wraps recommend.ErrUpstreamFetch. The client never
substitutes stale or partial data.
*/
package upstream
