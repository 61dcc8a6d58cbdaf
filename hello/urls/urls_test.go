// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package urls

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.helloworld.dev/hello/settings"
)

func TestDefaultURLConfIsRegistered(t *testing.T) {
	conf, err := Lookup(settings.DefaultURLConf)
	require.NoError(t, err)

	route, ok := conf.Resolve("/")
	require.True(t, ok)
	assert.Equal(t, "index", route.Name)
	assert.NotNil(t, route.Handler)
	assert.Equal(t, []string{"/"}, conf.Patterns())
}

func TestResolveIsExact(t *testing.T) {
	conf, err := Lookup(settings.DefaultURLConf)
	require.NoError(t, err)

	for _, path := range []string{"", "/index", "//", "/x/"} {
		_, ok := conf.Resolve(path)
		assert.False(t, ok, path)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("missing")
	assert.True(t, errors.Is(err, settings.ErrImproperlyConfigured))
}

func TestRegister(t *testing.T) {
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	Register(&URLConf{Name: "test-register", Routes: []Route{{Pattern: "/a/", Name: "a", Handler: noop}}})

	conf, err := Lookup("test-register")
	require.NoError(t, err)
	_, ok := conf.Resolve("/a/")
	assert.True(t, ok)
}
