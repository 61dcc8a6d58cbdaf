// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendering

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"go.helloworld.dev/hello/urls"
)

const (
	badRequestPage   = "<h1>Bad Request (400)</h1>"
	forbiddenPage    = "<h1>403 Forbidden</h1>"
	csrfFailurePage  = "<h1>Forbidden (403)</h1><p>CSRF verification failed. Request aborted.</p>"
	notFoundPage     = "<h1>Not Found</h1><p>The requested resource was not found on this server.</p>"
	serverErrorPage  = "<h1>Server Error (500)</h1>"
	notAllowedFormat = "<h1>Method Not Allowed (405)</h1><p>Method %s is not allowed for %s.</p>"
)

// RenderHTML writes page with the given status code.
func RenderHTML(status int, w http.ResponseWriter, r *http.Request, page string) {
	render.Status(r, status)
	render.HTML(w, r, page)
}

// RenderBadRequest renders the page returned for requests with a disallowed Host header.
func RenderBadRequest(w http.ResponseWriter, r *http.Request) {
	RenderHTML(http.StatusBadRequest, w, r, badRequestPage)
}

// RenderForbidden renders the generic permission denied page.
func RenderForbidden(w http.ResponseWriter, r *http.Request) {
	RenderHTML(http.StatusForbidden, w, r, forbiddenPage)
}

// RenderCSRFFailure renders the CSRF rejection page. The reason is only
// shown when debug is set.
func RenderCSRFFailure(w http.ResponseWriter, r *http.Request, reason string, debug bool) {
	page := csrfFailurePage
	if debug {
		page += fmt.Sprintf("<p>Reason given for failure: %s</p>", html.EscapeString(reason))
	}
	RenderHTML(http.StatusForbidden, w, r, page)
}

// RenderNotFound renders the production not found page.
func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	RenderHTML(http.StatusNotFound, w, r, notFoundPage)
}

// RenderDebugNotFound renders a not found page listing the patterns of conf
// that were tried, in order.
func RenderDebugNotFound(w http.ResponseWriter, r *http.Request, conf *urls.URLConf) {
	var b strings.Builder
	b.WriteString("<h1>Page not found (404)</h1>")
	fmt.Fprintf(&b, "<p>Request Method: %s<br>Request URL: %s</p>",
		html.EscapeString(r.Method), html.EscapeString(r.URL.String()))
	fmt.Fprintf(&b, "<p>Using the URLconf defined in %s, tried these URL patterns, in this order:</p><ol>",
		html.EscapeString(conf.Name))
	for _, pattern := range conf.Patterns() {
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(pattern))
	}
	fmt.Fprintf(&b, "</ol><p>The current path, %s, didn't match any of these.</p>",
		html.EscapeString(r.URL.Path))
	RenderHTML(http.StatusNotFound, w, r, b.String())
}

// RenderMethodNotAllowed renders the page for a matched path with an unrouted method.
func RenderMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	RenderHTML(http.StatusMethodNotAllowed, w, r,
		fmt.Sprintf(notAllowedFormat, html.EscapeString(r.Method), html.EscapeString(r.URL.Path)))
}

// RenderServerError renders the production internal error page.
func RenderServerError(w http.ResponseWriter, r *http.Request) {
	RenderHTML(http.StatusInternalServerError, w, r, serverErrorPage)
}

// RenderDebugServerError renders an internal error page with the recovered
// value and the goroutine stack.
func RenderDebugServerError(w http.ResponseWriter, r *http.Request, recovered interface{}, stack []byte) {
	var b strings.Builder
	b.WriteString(serverErrorPage)
	fmt.Fprintf(&b, "<p>Request Method: %s<br>Request URL: %s</p>",
		html.EscapeString(r.Method), html.EscapeString(r.URL.String()))
	fmt.Fprintf(&b, "<p>Exception Value: %s</p>", html.EscapeString(fmt.Sprint(recovered)))
	fmt.Fprintf(&b, "<pre>%s</pre>", html.EscapeString(string(stack)))
	RenderHTML(http.StatusInternalServerError, w, r, b.String())
}
