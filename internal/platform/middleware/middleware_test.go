// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexushost/api/internal/platform/middleware"
)

func hitOnce(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	request := httptest.NewRequest("GET", "/", nil)
	request.RemoteAddr = remoteAddr
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRateLimit verifies the per-IP token bucket and that each constructed
limiter tracks its clients independently.
*/
func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	limited := middleware.RateLimit(ctx, 10, 2)(next)

	// The burst admits exactly maxRequests, then the bucket is empty
	assert.Equal(t, http.StatusOK, hitOnce(limited, "203.0.113.7:5555").Code)
	assert.Equal(t, http.StatusOK, hitOnce(limited, "203.0.113.7:5555").Code)

	exhausted := hitOnce(limited, "203.0.113.7:5555")
	assert.Equal(t, http.StatusTooManyRequests, exhausted.Code)
	assert.Contains(t, exhausted.Body.String(), "Too many requests")

	// A different IP has its own bucket
	assert.Equal(t, http.StatusOK, hitOnce(limited, "203.0.113.8:5555").Code)

	// A freshly constructed limiter carries no state from the first one
	fresh := middleware.RateLimit(ctx, 10, 2)(next)
	assert.Equal(t, http.StatusOK, hitOnce(fresh, "203.0.113.7:5555").Code)
}
