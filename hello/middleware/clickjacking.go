// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package middleware

import "net/http"

// XFrameOptionsMiddleware sets the X-Frame-Options header to value.
// Handlers may still override it.
func XFrameOptionsMiddleware(value string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if w.Header().Get("X-Frame-Options") == "" {
				w.Header().Set("X-Frame-Options", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
