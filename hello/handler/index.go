// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

// IndexBody is the response body of the index view.
const IndexBody = "Hello World"

type indexHandler struct {
	//
}

func (h *indexHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	render.Status(request, http.StatusOK)
	render.HTML(writer, request, IndexBody)
}

// NewIndexHandler returns a new instance of http handler
// for serving the site root.
func NewIndexHandler() http.Handler {
	return &indexHandler{}
}
