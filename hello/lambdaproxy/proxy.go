// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package lambdaproxy runs an http.Handler behind API Gateway proxy
// integration events.
package lambdaproxy

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	log "github.com/sirupsen/logrus"
)

// ResponseWriterProxy buffers a response written by an http.Handler.
type ResponseWriterProxy struct {
	Body       bytes.Buffer
	StatusCode int
	header     http.Header
}

// NewResponseWriterProxy returns an empty ResponseWriterProxy.
func NewResponseWriterProxy() *ResponseWriterProxy {
	return &ResponseWriterProxy{header: http.Header{}}
}

func (w *ResponseWriterProxy) Header() http.Header {
	return w.header
}

func (w *ResponseWriterProxy) Write(b []byte) (int, error) {
	if w.StatusCode == 0 {
		w.StatusCode = http.StatusOK
	}
	return w.Body.Write(b)
}

func (w *ResponseWriterProxy) WriteHeader(statusCode int) {
	if w.StatusCode == 0 {
		w.StatusCode = statusCode
	}
}

// IsError reports whether a non-2xx status was written.
func (w *ResponseWriterProxy) IsError() bool {
	return w.StatusCode != 0 && w.StatusCode/100 != 2
}

// Handler adapts an http.Handler to API Gateway proxy events.
type Handler struct {
	handler http.Handler
}

// NewHandler returns a Handler serving events through handler.
func NewHandler(handler http.Handler) *Handler {
	return &Handler{handler: handler}
}

// Invoke serves a single event. It only fails when the event cannot be
// turned into an HTTP request.
func (h *Handler) Invoke(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	request, err := NewRequest(ctx, event)
	if err != nil {
		log.WithError(err).Warn("Rejected API Gateway event")
		return events.APIGatewayProxyResponse{}, err
	}

	w := NewResponseWriterProxy()
	h.handler.ServeHTTP(w, request)
	if w.IsError() {
		log.WithFields(log.Fields{"path": request.URL.Path, "status": w.StatusCode}).Debug("Handler returned an error response")
	}

	status := w.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	return events.APIGatewayProxyResponse{
		StatusCode:        status,
		MultiValueHeaders: w.Header(),
		Body:              w.Body.String(),
	}, nil
}

// NewRequest converts event into an HTTP request bound to ctx.
func NewRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("decode body: %w", err)
		}
		body = decoded
	}

	path := event.Path
	if path == "" {
		path = "/"
	}
	u := &url.URL{Path: path, RawQuery: query(event).Encode()}

	method := event.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	request, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for k, v := range event.Headers {
		request.Header.Set(k, v)
	}
	for k, values := range event.MultiValueHeaders {
		request.Header.Del(k)
		for _, v := range values {
			request.Header.Add(k, v)
		}
	}

	request.Host = request.Header.Get("Host")
	if request.Host == "" {
		request.Host = "localhost"
	}
	request.RemoteAddr = event.RequestContext.Identity.SourceIP
	request.RequestURI = u.RequestURI()
	return request, nil
}

func query(event events.APIGatewayProxyRequest) url.Values {
	values := url.Values{}
	for k, v := range event.QueryStringParameters {
		values.Set(k, v)
	}
	for k, vs := range event.MultiValueQueryStringParameters {
		values[k] = append([]string(nil), vs...)
	}
	return values
}
