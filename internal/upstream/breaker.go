// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package upstream

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/challengerec/internal/metrics"
)

const breakerName = "challenge-api"

// defaultBreakerSettings opens after 5 consecutive failures and probes again
// after 30 seconds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func defaultBreakerSettings(logger zerolog.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= 5
			if trip {
				logger.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
		},
	}
}

// newBreaker wires metrics into st and treats client errors as successes,
// since a malformed request says nothing about upstream health.
func newBreaker(st gobreaker.Settings) *gobreaker.CircuitBreaker[[]byte] {
	if st.Name == "" {
		st.Name = breakerName
	}
	userHook := st.OnStateChange
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		if userHook != nil {
			userHook(name, from, to)
		}
	}
	st.IsSuccessful = func(err error) bool {
		if err == nil {
			return true
		}
		var se *statusError
		return errors.As(err, &se) && se.clientFault()
	}

	metrics.CircuitBreakerState.WithLabelValues(st.Name).Set(0)
	return gobreaker.NewCircuitBreaker[[]byte](st)
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
