// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"

	"go.helloworld.dev/hello/rendering"
	"go.helloworld.dev/hello/settings"
	"go.helloworld.dev/hello/urls"
)

// Middleware wraps an http.Handler.
type Middleware func(next http.Handler) http.Handler

// Build returns the middlewares named in s.Middleware, in order.
// The first entry is the outermost.
func Build(s *settings.Settings, conf *urls.URLConf) ([]Middleware, error) {
	chain := make([]Middleware, 0, len(s.Middleware))
	for _, name := range s.Middleware {
		switch name {
		case settings.MiddlewareCommon:
			mw, err := CommonMiddleware(s, conf)
			if err != nil {
				return nil, err
			}
			chain = append(chain, mw)
		case settings.MiddlewareCSRF:
			chain = append(chain, CSRFMiddleware(s))
		case settings.MiddlewareClickjacking:
			chain = append(chain, XFrameOptionsMiddleware(s.XFrameOptions))
		default:
			return nil, fmt.Errorf("%w: unknown middleware %q", settings.ErrImproperlyConfigured, name)
		}
	}
	return chain, nil
}

// AccessLogMiddleware logs each request, at error level for non-2xx/3xx responses.
func AccessLogMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debugf("-> %s %s %v", r.Method, r.URL, r.Header)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := http.StatusOK
			if ww.Status() != 0 {
				status = ww.Status()
			}

			entry := log.WithFields(log.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"request_id": middleware.GetReqID(r.Context()),
			})
			if status/100 == 4 {
				entry.Warn("request")
			} else if status/100 == 5 {
				entry.Error("request")
			} else {
				entry.Info("request")
			}
		})
	}
}

// RecovererMiddleware turns a panic in next into a 500 page. The panic value and
// stack are only rendered when debug is set.
func RecovererMiddleware(debugPage bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				stack := debug.Stack()
				log.WithField("panic", rvr).Errorf("Internal Server Error: %s\n%s", r.URL.Path, stack)
				if debugPage {
					rendering.RenderDebugServerError(w, r, rvr, stack)
				} else {
					rendering.RenderServerError(w, r)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
