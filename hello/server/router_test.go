// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.helloworld.dev/hello/settings"
)

func TestMain(m *testing.M) {
	log.SetOutput(&bytes.Buffer{})
	os.Exit(m.Run())
}

// Make a test request
func makeTestRequest(t *testing.T, router http.Handler, request *http.Request) *httptest.ResponseRecorder {
	responseRecorder := httptest.NewRecorder()
	router.ServeHTTP(responseRecorder, request)
	t.Logf("test(%v) = %v", request.URL, responseRecorder.Code)
	return responseRecorder
}

func newTestRouter(t *testing.T, modify func(s *settings.Settings)) http.Handler {
	s := settings.Default()
	if modify != nil {
		modify(s)
	}
	router, err := NewRouter(s)
	require.NoError(t, err)
	return router
}

func TestRootReturnsHelloWorld(t *testing.T) {
	router := newTestRouter(t, nil)

	for i := 0; i < 3; i++ {
		responseRecorder := makeTestRequest(t, router, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, responseRecorder.Code)
		assert.Equal(t, "Hello World", responseRecorder.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", responseRecorder.Header().Get("Content-Type"))
	}
}

func TestRootInProductionMode(t *testing.T) {
	router := newTestRouter(t, func(s *settings.Settings) {
		s.Debug = false
		s.AllowedHosts = []string{"example.com"}
	})

	responseRecorder := makeTestRequest(t, router, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.Equal(t, "Hello World", responseRecorder.Body.String())
}

func TestDefaultMiddlewareHeaders(t *testing.T) {
	router := newTestRouter(t, nil)

	responseRecorder := makeTestRequest(t, router, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, "SAMEORIGIN", responseRecorder.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, responseRecorder.Result().Cookies())
}

func TestNoMiddleware(t *testing.T) {
	router := newTestRouter(t, func(s *settings.Settings) { s.Middleware = nil })

	responseRecorder := makeTestRequest(t, router, httptest.NewRequest("POST", "/", nil))
	assert.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.Equal(t, "Hello World", responseRecorder.Body.String())
	assert.Empty(t, responseRecorder.Header().Get("X-Frame-Options"))
	assert.Empty(t, responseRecorder.Result().Cookies())
}

func TestPostWithoutCSRFTokenIsForbidden(t *testing.T) {
	router := newTestRouter(t, nil)

	responseRecorder := makeTestRequest(t, router, httptest.NewRequest("POST", "/", nil))
	assert.Equal(t, http.StatusForbidden, responseRecorder.Code)
}

func TestUnmatchedPathIsNotFound(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		body  string
	}{
		{"production", false, "<h1>Not Found</h1><p>The requested resource was not found on this server.</p>"},
		{"debug", true, "<h1>Page not found (404)</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, func(s *settings.Settings) { s.Debug = tt.debug })

			for _, path := range []string{"/hello", "/index.html", "/a/b/c/"} {
				responseRecorder := makeTestRequest(t, router, httptest.NewRequest("GET", path, nil))
				assert.Equal(t, http.StatusNotFound, responseRecorder.Code, path)
				assert.Contains(t, responseRecorder.Body.String(), tt.body, path)
			}
		})
	}
}

func TestNewRouterRejectsBadSettings(t *testing.T) {
	s := settings.Default()
	s.SecretKey = ""
	_, err := NewRouter(s)
	assert.True(t, errors.Is(err, settings.ErrImproperlyConfigured))

	s = settings.Default()
	s.RootURLConf = "missing"
	_, err = NewRouter(s)
	assert.True(t, errors.Is(err, settings.ErrImproperlyConfigured))
}
