// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"

	"go.helloworld.dev/hello/middleware"
	"go.helloworld.dev/hello/rendering"
	"go.helloworld.dev/hello/settings"
	"go.helloworld.dev/hello/urls"
)

// NewRouter returns a new instance of chi router serving the URL conf
// named by s.RootURLConf behind the configured middleware.
func NewRouter(s *settings.Settings) (http.Handler, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	conf, err := urls.Lookup(s.RootURLConf)
	if err != nil {
		return nil, err
	}

	chain, err := middleware.Build(s, conf)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.AccessLogMiddleware())
	router.Use(middleware.RecovererMiddleware(s.Debug))
	for _, mw := range chain {
		router.Use(mw)
	}

	for _, route := range conf.Routes {
		router.Handle(route.Pattern, route.Handler)
	}

	if s.Debug {
		router.NotFound(func(w http.ResponseWriter, r *http.Request) {
			rendering.RenderDebugNotFound(w, r, conf)
		})
	} else {
		router.NotFound(rendering.RenderNotFound)
	}
	router.MethodNotAllowed(rendering.RenderMethodNotAllowed)

	return router, nil
}
