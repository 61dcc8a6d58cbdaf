// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*

Package rendering provides the default response pages of the application.

Every page is rendered as text/html. The debug variants carry request and
routing details and must only be used when the debug setting is on:

	if s.Debug {
		rendering.RenderDebugNotFound(w, r, conf)
	} else {
		rendering.RenderNotFound(w, r)
	}

*/
package rendering
