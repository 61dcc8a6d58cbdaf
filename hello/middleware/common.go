// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"net"
	"net/http"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"go.helloworld.dev/hello/rendering"
	"go.helloworld.dev/hello/settings"
	"go.helloworld.dev/hello/urls"
)

// hosts allowed in debug mode when AllowedHosts is empty
var debugAllowedHosts = []string{".localhost", "127.0.0.1", "[::1]"}

// CommonMiddleware rejects disallowed user agents and hosts, and redirects
// paths missing a trailing slash when AppendSlash is set.
func CommonMiddleware(s *settings.Settings, conf *urls.URLConf) (Middleware, error) {
	agents, err := s.UserAgentPatterns()
	if err != nil {
		return nil, err
	}

	allowed := s.AllowedHosts
	if s.Debug && len(allowed) == 0 {
		allowed = debugAllowedHosts
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if disallowedUserAgent(agents, r.UserAgent()) {
				log.WithField("user_agent", r.UserAgent()).Warn("Forbidden user agent")
				rendering.RenderForbidden(w, r)
				return
			}

			if !ValidateHost(r.Host, allowed) {
				log.WithField("host", r.Host).Warn("Invalid HTTP_HOST header")
				rendering.RenderBadRequest(w, r)
				return
			}

			if s.AppendSlash && shouldRedirectWithSlash(conf, r) {
				target := r.URL.Path + "/"
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, http.StatusMovedPermanently)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func disallowedUserAgent(patterns []*regexp.Regexp, agent string) bool {
	for _, re := range patterns {
		if re.MatchString(agent) {
			return true
		}
	}
	return false
}

func shouldRedirectWithSlash(conf *urls.URLConf, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	path := r.URL.Path
	if strings.HasSuffix(path, "/") {
		return false
	}
	if _, ok := conf.Resolve(path); ok {
		return false
	}
	_, ok := conf.Resolve(path + "/")
	return ok
}

// ValidateHost reports whether host, with any port removed, matches one of
// patterns. "*" matches every host and a leading dot matches the domain and
// all of its subdomains. Matching is case insensitive.
func ValidateHost(host string, patterns []string) bool {
	host = strings.ToLower(stripPort(host))
	if host == "" {
		return false
	}
	host = strings.TrimSuffix(host, ".")

	for _, pattern := range patterns {
		pattern = strings.ToLower(pattern)
		switch {
		case pattern == "*":
			return true
		case strings.HasPrefix(pattern, "."):
			if host == pattern[1:] || strings.HasSuffix(host, pattern) {
				return true
			}
		case host == pattern:
			return true
		}
	}
	return false
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		if strings.Contains(h, ":") {
			return "[" + h + "]"
		}
		return h
	}
	return host
}
