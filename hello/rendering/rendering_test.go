// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendering

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.helloworld.dev/hello/urls"
)

func TestRenderPages(t *testing.T) {
	tests := []struct {
		name   string
		render func(w http.ResponseWriter, r *http.Request)
		status int
		body   string
	}{
		{"bad request", RenderBadRequest, http.StatusBadRequest, "<h1>Bad Request (400)</h1>"},
		{"forbidden", RenderForbidden, http.StatusForbidden, "<h1>403 Forbidden</h1>"},
		{"not found", RenderNotFound, http.StatusNotFound,
			"<h1>Not Found</h1><p>The requested resource was not found on this server.</p>"},
		{"server error", RenderServerError, http.StatusInternalServerError, "<h1>Server Error (500)</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responseRecorder := httptest.NewRecorder()
			tt.render(responseRecorder, httptest.NewRequest("GET", "/missing", nil))

			assert.Equal(t, tt.status, responseRecorder.Code)
			assert.Equal(t, tt.body, responseRecorder.Body.String())
			assert.Equal(t, "text/html; charset=utf-8", responseRecorder.Header().Get("Content-Type"))
		})
	}
}

func TestRenderCSRFFailureHidesReasonOutsideDebug(t *testing.T) {
	responseRecorder := httptest.NewRecorder()
	RenderCSRFFailure(responseRecorder, httptest.NewRequest("POST", "/", nil), "CSRF cookie not set.", false)
	assert.Equal(t, http.StatusForbidden, responseRecorder.Code)
	assert.NotContains(t, responseRecorder.Body.String(), "cookie not set")

	responseRecorder = httptest.NewRecorder()
	RenderCSRFFailure(responseRecorder, httptest.NewRequest("POST", "/", nil), "CSRF cookie not set.", true)
	assert.Equal(t, http.StatusForbidden, responseRecorder.Code)
	assert.Contains(t, responseRecorder.Body.String(), "Reason given for failure: CSRF cookie not set.")
}

func TestRenderDebugNotFoundListsPatterns(t *testing.T) {
	conf := &urls.URLConf{Name: "demo", Routes: []urls.Route{{Pattern: "/"}, {Pattern: "/about/"}}}
	responseRecorder := httptest.NewRecorder()

	RenderDebugNotFound(responseRecorder, httptest.NewRequest("GET", "/%3Cscript%3E", nil), conf)

	body := responseRecorder.Body.String()
	assert.Equal(t, http.StatusNotFound, responseRecorder.Code)
	assert.Contains(t, body, "Page not found (404)")
	assert.Contains(t, body, "Using the URLconf defined in demo")
	assert.Contains(t, body, "<ol><li>/</li><li>/about/</li></ol>")
	assert.Contains(t, body, "The current path, /&lt;script&gt;, didn&#39;t match")
}

func TestRenderDebugServerError(t *testing.T) {
	responseRecorder := httptest.NewRecorder()
	RenderDebugServerError(responseRecorder, httptest.NewRequest("GET", "/", nil), "boom", []byte("goroutine 1"))

	assert.Equal(t, http.StatusInternalServerError, responseRecorder.Code)
	assert.Contains(t, responseRecorder.Body.String(), "Exception Value: boom")
	assert.Contains(t, responseRecorder.Body.String(), "<pre>goroutine 1</pre>")
}

func TestRenderMethodNotAllowed(t *testing.T) {
	responseRecorder := httptest.NewRecorder()
	RenderMethodNotAllowed(responseRecorder, httptest.NewRequest("DELETE", "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, responseRecorder.Code)
	assert.Contains(t, responseRecorder.Body.String(), "Method DELETE is not allowed for /.")
}
