// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package appcontext

import (
	"maps"
	"net/http"
	"os"

	"github.com/stacklok/slacklog/env"
)

// UnknownHostname is used when the hostname cannot be determined.
const UnknownHostname = "unknown"

// Server holds the server metadata of the current request or process.
// Only ScriptName is required; empty fields are treated as absent.
type Server struct {
	ServerName    string
	ScriptName    string
	RequestMethod string
	RequestURI    string
	UserAgent     string
	Referrer      string
}

// AppContext is an immutable snapshot of where a log entry came from.
type AppContext struct {
	appName  string
	hostname string
	server   Server
	request  map[string]any
}

// New creates an AppContext. The request parameters are copied.
func New(appName, hostname string, server Server, request map[string]any) *AppContext {
	return &AppContext{
		appName:  appName,
		hostname: hostname,
		server:   server,
		request:  maps.Clone(request),
	}
}

// AppName returns the name of the application.
func (a *AppContext) AppName() string {
	return a.appName
}

// Hostname returns the name of the host the application runs on.
func (a *AppContext) Hostname() string {
	return a.hostname
}

// ServerName returns the virtual host name, or "" if there is none.
func (a *AppContext) ServerName() string {
	return a.server.ServerName
}

// ScriptName returns the path of the running script or executable.
func (a *AppContext) ScriptName() string {
	return a.server.ScriptName
}

// RequestMethod returns the HTTP method, or "" outside a request.
func (a *AppContext) RequestMethod() string {
	return a.server.RequestMethod
}

// RequestURI returns the request URI, or "" outside a request.
func (a *AppContext) RequestURI() string {
	return a.server.RequestURI
}

// Request returns a copy of the raw request parameters.
func (a *AppContext) Request() map[string]any {
	return maps.Clone(a.request)
}

// UserAgent returns the client's user agent, or "" if unknown.
func (a *AppContext) UserAgent() string {
	return a.server.UserAgent
}

// Referrer returns the referring page, or "" if unknown.
func (a *AppContext) Referrer() string {
	return a.server.Referrer
}

// FromRequest builds an AppContext for an incoming HTTP request.
// Request parameters are taken from the POST body; the body is parsed if it
// has not been already.
func FromRequest(appName, hostname string, r *http.Request) *AppContext {
	server := Server{
		ServerName:    r.Host,
		ScriptName:    r.URL.Path,
		RequestMethod: r.Method,
		RequestURI:    r.RequestURI,
		UserAgent:     r.UserAgent(),
		Referrer:      r.Referer(),
	}
	if server.RequestURI == "" {
		server.RequestURI = r.URL.RequestURI()
	}

	request := map[string]any{}
	if r.PostForm == nil {
		// a malformed body leaves PostForm empty, which is all we need here
		_ = r.ParseForm()
	}
	for key, values := range r.PostForm {
		if len(values) == 1 {
			request[key] = values[0]
		} else {
			request[key] = values
		}
	}

	return New(appName, hostname, server, request)
}

// FromProcess builds an AppContext for the running process.
//
// The server metadata is read from the CGI variables (SERVER_NAME,
// SCRIPT_NAME, REQUEST_METHOD, REQUEST_URI, HTTP_USER_AGENT and HTTP_REFERER)
// so that scripts run by a web server report the request they serve. Outside
// CGI the script name falls back to the executable path.
func FromProcess(appName string, reader env.Reader) *AppContext {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = UnknownHostname
	}

	server := Server{
		ServerName:    reader.Getenv("SERVER_NAME"),
		ScriptName:    reader.Getenv("SCRIPT_NAME"),
		RequestMethod: reader.Getenv("REQUEST_METHOD"),
		RequestURI:    reader.Getenv("REQUEST_URI"),
		UserAgent:     reader.Getenv("HTTP_USER_AGENT"),
		Referrer:      reader.Getenv("HTTP_REFERER"),
	}
	if server.ScriptName == "" && len(os.Args) > 0 {
		server.ScriptName = os.Args[0]
	}

	return New(appName, hostname, server, map[string]any{})
}
