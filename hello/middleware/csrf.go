// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"go.helloworld.dev/hello/rendering"
	"go.helloworld.dev/hello/settings"
)

const (
	// CSRFFormField is the form field checked when the header is absent.
	CSRFFormField = "csrfmiddlewaretoken"

	csrfNonceLength  = 32
	csrfTokenLength  = 2 * csrfNonceLength
	csrfCookieMaxAge = 60 * 60 * 24 * 7 * 52
)

// Reasons a request fails CSRF verification.
const (
	ReasonNoCSRFCookie  = "CSRF cookie not set."
	ReasonBadCSRFCookie = "CSRF cookie has an invalid format."
	ReasonNoCSRFToken   = "CSRF token missing."
	ReasonBadCSRFToken  = "CSRF token incorrect."
)

type csrfContextKey struct{}

// NewCSRFToken returns a fresh token signed with secret.
func NewCSRFToken(secret string) string {
	nonce := strings.ReplaceAll(uuid.New().String(), "-", "")
	return nonce + csrfSignature(secret, nonce)
}

// ValidCSRFToken reports whether token was produced by NewCSRFToken with secret.
func ValidCSRFToken(secret, token string) bool {
	if len(token) != csrfTokenLength {
		return false
	}
	if _, err := hex.DecodeString(token); err != nil {
		return false
	}
	nonce, sig := token[:csrfNonceLength], token[csrfNonceLength:]
	return hmac.Equal([]byte(sig), []byte(csrfSignature(secret, nonce)))
}

func csrfSignature(secret, nonce string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("csrf:" + nonce))
	return hex.EncodeToString(mac.Sum(nil))[:csrfNonceLength]
}

// CSRFToken returns the token of the current request, empty when the CSRF
// middleware is not installed.
func CSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfContextKey{}).(string)
	return token
}

// CSRFMiddleware issues a signed token cookie on safe requests and rejects
// unsafe requests whose submitted token does not match the cookie.
func CSRFMiddleware(s *settings.Settings) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cookieToken string
			if c, err := r.Cookie(s.CSRFCookieName); err == nil {
				cookieToken = c.Value
			}

			if safeMethod(r.Method) {
				if !ValidCSRFToken(s.SecretKey, cookieToken) {
					cookieToken = NewCSRFToken(s.SecretKey)
					http.SetCookie(w, &http.Cookie{
						Name:     s.CSRFCookieName,
						Value:    cookieToken,
						Path:     "/",
						MaxAge:   csrfCookieMaxAge,
						SameSite: http.SameSiteLaxMode,
					})
				}
				next.ServeHTTP(w, withCSRFToken(r, cookieToken))
				return
			}

			if reason := checkCSRF(s, r, cookieToken); reason != "" {
				log.WithFields(log.Fields{"path": r.URL.Path, "reason": reason}).Warn("Forbidden (CSRF)")
				rendering.RenderCSRFFailure(w, r, reason, s.Debug)
				return
			}
			next.ServeHTTP(w, withCSRFToken(r, cookieToken))
		})
	}
}

func checkCSRF(s *settings.Settings, r *http.Request, cookieToken string) string {
	if cookieToken == "" {
		return ReasonNoCSRFCookie
	}
	if !ValidCSRFToken(s.SecretKey, cookieToken) {
		return ReasonBadCSRFCookie
	}

	submitted := r.Header.Get(s.CSRFHeaderName)
	if submitted == "" {
		submitted = r.PostFormValue(CSRFFormField)
	}
	if submitted == "" {
		return ReasonNoCSRFToken
	}
	if !hmac.Equal([]byte(submitted), []byte(cookieToken)) {
		return ReasonBadCSRFToken
	}
	return ""
}

func withCSRFToken(r *http.Request, token string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), csrfContextKey{}, token))
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
