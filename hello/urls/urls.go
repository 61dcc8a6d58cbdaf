// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package urls maps URL patterns to views. A URLConf is looked up by the
// name given in the root_urlconf setting.
package urls

import (
	"fmt"
	"net/http"
	"sync"

	"go.helloworld.dev/hello/handler"
	"go.helloworld.dev/hello/settings"
)

// Route is a URL pattern mapped to a handler.
type Route struct {
	Pattern string
	Name    string
	Handler http.Handler
}

// URLConf is a named, ordered set of routes.
type URLConf struct {
	Name   string
	Routes []Route
}

// Resolve returns the route whose pattern equals path.
func (c *URLConf) Resolve(path string) (Route, bool) {
	for _, route := range c.Routes {
		if route.Pattern == path {
			return route, true
		}
	}
	return Route{}, false
}

// Patterns returns the route patterns in declaration order.
func (c *URLConf) Patterns() []string {
	patterns := make([]string, 0, len(c.Routes))
	for _, route := range c.Routes {
		patterns = append(patterns, route.Pattern)
	}
	return patterns
}

var (
	mu       sync.RWMutex
	registry = map[string]*URLConf{}
)

func init() {
	Register(&URLConf{
		Name: settings.DefaultURLConf,
		Routes: []Route{
			{Pattern: "/", Name: "index", Handler: handler.NewIndexHandler()},
		},
	})
}

// Register makes conf available to Lookup, replacing any conf with the same name.
func Register(conf *URLConf) {
	mu.Lock()
	defer mu.Unlock()
	registry[conf.Name] = conf
}

// Lookup returns the URL conf registered under name.
func Lookup(name string) (*URLConf, error) {
	mu.RLock()
	defer mu.RUnlock()
	conf, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: no URL conf named %q", settings.ErrImproperlyConfigured, name)
	}
	return conf, nil
}
