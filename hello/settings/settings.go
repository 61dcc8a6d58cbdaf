// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package settings holds the in-process configuration of the application:
// a fixed set of defaults, optionally overlaid by a TOML file and by
// environment variables.
package settings

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	log "github.com/sirupsen/logrus"
)

const (
	// EnvDebug overrides Settings.Debug.
	EnvDebug = "HELLOWORLD_DEBUG"
	// EnvSecretKey overrides Settings.SecretKey.
	EnvSecretKey = "HELLOWORLD_SECRET_KEY"
	// EnvAllowedHosts overrides Settings.AllowedHosts, comma separated.
	EnvAllowedHosts = "HELLOWORLD_ALLOWED_HOSTS"
)

// Middleware names accepted in Settings.Middleware.
const (
	MiddlewareCommon       = "common"
	MiddlewareCSRF         = "csrf"
	MiddlewareClickjacking = "clickjacking"
)

// X-Frame-Options values.
const (
	FrameDeny       = "DENY"
	FrameSameOrigin = "SAMEORIGIN"
)

// DefaultURLConf is the name of the URL configuration shipped with the application.
const DefaultURLConf = "helloworld"

// not for production use
const developmentSecretKey = "thisisthesecretkey"

// ErrImproperlyConfigured is wrapped by every validation error.
var ErrImproperlyConfigured = errors.New("improperly configured")

// Settings is the application configuration.
type Settings struct {
	Debug                bool     `toml:"debug"`
	SecretKey            string   `toml:"secret_key"`
	RootURLConf          string   `toml:"root_urlconf"`
	Middleware           []string `toml:"middleware"`
	AllowedHosts         []string `toml:"allowed_hosts"`
	AppendSlash          bool     `toml:"append_slash"`
	XFrameOptions        string   `toml:"x_frame_options"`
	DisallowedUserAgents []string `toml:"disallowed_user_agents"`
	CSRFCookieName       string   `toml:"csrf_cookie_name"`
	CSRFHeaderName       string   `toml:"csrf_header_name"`
}

// Default returns the settings the application runs with when nothing is configured.
func Default() *Settings {
	return &Settings{
		Debug:       true,
		SecretKey:   developmentSecretKey,
		RootURLConf: DefaultURLConf,
		Middleware: []string{
			MiddlewareCommon,
			MiddlewareCSRF,
			MiddlewareClickjacking,
		},
		AllowedHosts:   []string{"*"},
		AppendSlash:    true,
		XFrameOptions:  FrameSameOrigin,
		CSRFCookieName: "csrftoken",
		CSRFHeaderName: "X-CSRFToken",
	}
}

// Load returns the defaults overlaid with the keys present in the TOML file at path.
// An empty path returns the defaults.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	log.WithField("path", path).Debug("Loaded settings file")
	return s, nil
}

// LoadEnv applies environment variable overrides.
func (s *Settings) LoadEnv() error {
	if v, ok := os.LookupEnv(EnvDebug); ok {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrImproperlyConfigured, EnvDebug, v)
		}
		s.Debug = debug
	}
	if v := os.Getenv(EnvSecretKey); v != "" {
		s.SecretKey = v
	}
	if v := os.Getenv(EnvAllowedHosts); v != "" {
		var hosts []string
		for _, h := range strings.Split(v, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hosts = append(hosts, h)
			}
		}
		s.AllowedHosts = hosts
	}
	return nil
}

// Validate reports the first configuration problem found.
func (s *Settings) Validate() error {
	if s.SecretKey == "" {
		return fmt.Errorf("%w: the secret key must not be empty", ErrImproperlyConfigured)
	}
	if s.RootURLConf == "" {
		return fmt.Errorf("%w: root_urlconf must not be empty", ErrImproperlyConfigured)
	}

	seen := make(map[string]bool, len(s.Middleware))
	for _, name := range s.Middleware {
		switch name {
		case MiddlewareCommon, MiddlewareCSRF, MiddlewareClickjacking:
		default:
			return fmt.Errorf("%w: unknown middleware %q", ErrImproperlyConfigured, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: middleware %q listed twice", ErrImproperlyConfigured, name)
		}
		seen[name] = true
	}

	if s.XFrameOptions != FrameDeny && s.XFrameOptions != FrameSameOrigin {
		return fmt.Errorf("%w: x_frame_options must be %s or %s, got %q",
			ErrImproperlyConfigured, FrameDeny, FrameSameOrigin, s.XFrameOptions)
	}

	if seen[MiddlewareCSRF] && (s.CSRFCookieName == "" || s.CSRFHeaderName == "") {
		return fmt.Errorf("%w: csrf middleware needs a cookie and a header name", ErrImproperlyConfigured)
	}

	if _, err := s.UserAgentPatterns(); err != nil {
		return err
	}
	return nil
}

// UserAgentPatterns compiles DisallowedUserAgents.
func (s *Settings) UserAgentPatterns() ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(s.DisallowedUserAgents))
	for _, expr := range s.DisallowedUserAgents {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: disallowed user agent %q: %v", ErrImproperlyConfigured, expr, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// Uses reports whether the named middleware is enabled.
func (s *Settings) Uses(name string) bool {
	for _, m := range s.Middleware {
		if m == name {
			return true
		}
	}
	return false
}
