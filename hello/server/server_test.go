// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeUntilCanceled(t *testing.T) {
	srv := NewServer("127.0.0.1", 0, newTestRouter(t, nil))
	require.NoError(t, srv.Listen())
	require.True(t, srv.IsListening())
	assert.NotZero(t, srv.Port())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	resp, err := http.Get(srv.URL("/"))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello World", string(body))

	resp, err = http.Get(srv.URL("/missing"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancelation")
	}
}

func TestServeWithoutListen(t *testing.T) {
	srv := NewServer("127.0.0.1", 0, http.NotFoundHandler())
	assert.False(t, srv.IsListening())
	assert.Error(t, srv.Serve(context.Background()))
}

func TestURL(t *testing.T) {
	srv := NewServer("127.0.0.1", 8000, http.NotFoundHandler())
	assert.Equal(t, "http://127.0.0.1:8000/", srv.URL("/"))

	srv = NewServer("::1", 8000, http.NotFoundHandler())
	assert.Equal(t, "http://[::1]:8000/", srv.URL("/"))
}

func TestClose(t *testing.T) {
	srv := NewServer("127.0.0.1", 0, http.NotFoundHandler())
	require.NoError(t, srv.Listen())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background()) }()

	// Serve may not have started yet; Close still makes it return
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, srv.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Close")
	}
}
