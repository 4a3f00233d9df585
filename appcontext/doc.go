// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package appcontext describes the application and request a log entry came
from.

An [AppContext] is built once, at the boundary, and handed to the logger.
Nothing else in slacklog reads the environment.

# Web Requests

	app := appcontext.FromRequest("Webpage", hostname, r)

# Command-Line Programs

	app := appcontext.FromProcess("nightly-import", &env.OSReader{})

FromProcess honours CGI variables, so a program run by a web server still
reports the request it is serving.

# Explicit Construction

	app := appcontext.New("Webpage", "host.name", appcontext.Server{
		ScriptName:    "/path/to/script",
		RequestMethod: http.MethodPost,
		RequestURI:    "/checkout?foo=bar",
	}, map[string]any{"username": "qux"})
*/
package appcontext
