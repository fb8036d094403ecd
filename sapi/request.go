package sapi

import (
	"context"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

var jsonCfg = jsoniter.ConfigCompatibleWithStandardLibrary

// responseMeta carries the values stamped on every response header.
type responseMeta struct {
	clientName    string
	clientVersion string
	sapiVersion   string
	jsonIndent    int
}

// Request wraps one inbound HTTP request. It is created by the dispatcher
// and handed to exactly one worker; response writers may be called from the
// worker goroutine because the dispatching goroutine parks until execution
// completes.
type Request struct {
	c      echo.Context
	method Method
	meta   responseMeta
}

func newRequest(c echo.Context, meta responseMeta) *Request {
	return &Request{
		c:      c,
		method: ParseMethod(c.Request().Method),
		meta:   meta,
	}
}

func (r *Request) Method() Method {
	return r.method
}

// URI returns the request path without the query string.
func (r *Request) URI() string {
	return r.c.Request().URL.Path
}

// Peer returns the remote network address of the client.
func (r *Request) Peer() string {
	return r.c.Request().RemoteAddr
}

func (r *Request) Context() context.Context {
	return r.c.Request().Context()
}

// Query returns the value of a URL query parameter.
func (r *Request) Query(name string) string {
	return r.c.QueryParam(name)
}

// ReadBody reads the full request body.
func (r *Request) ReadBody() (string, error) {
	b, err := io.ReadAll(r.c.Request().Body)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// WriteHeader sets a response header.
func (r *Request) WriteHeader(key, value string) {
	r.c.Response().Header().Set(key, value)
}

func (r *Request) addDefaultHeaders() {
	r.WriteHeader("User-Agent", r.meta.clientName)
	r.WriteHeader("Client-Version", r.meta.clientVersion)
	r.WriteHeader("SAPI-Version", r.meta.sapiVersion)
	r.WriteHeader(echo.HeaderAccessControlAllowOrigin, "*")
}

// WriteJSON writes a pretty-printed JSON reply with the default headers and
// a trailing newline.
func (r *Request) WriteJSON(status int, v interface{}) error {
	b, err := jsonCfg.MarshalIndent(v, "", strings.Repeat(" ", r.meta.jsonIndent))
	if err != nil {
		return err
	}

	r.addDefaultHeaders()

	return r.c.Blob(status, echo.MIMEApplicationJSON, append(b, '\n'))
}

// WriteOK writes a 200 JSON reply.
func (r *Request) WriteOK(v interface{}) error {
	return r.WriteJSON(http.StatusOK, v)
}

// WriteText writes a plain-text reply with a trailing newline.
func (r *Request) WriteText(status int, s string) error {
	r.addDefaultHeaders()

	return r.c.Blob(status, echo.MIMETextPlain, []byte(s+"\n"))
}

// WriteError writes the violations as a JSON array of {code, message}
// objects, even for a single error.
func (r *Request) WriteError(status int, results ...Result) error {
	if len(results) == 0 {
		results = []Result{{Code: CodeUndefined, Message: "undefined error"}}
	}

	b, err := jsonCfg.MarshalIndent(results, "", " ")
	if err != nil {
		return err
	}

	r.addDefaultHeaders()

	return r.c.Blob(status, echo.MIMEApplicationJSON, append(b, '\n'))
}

// WriteErrorMessage writes a single undefined-code error.
func (r *Request) WriteErrorMessage(status int, message string) error {
	return r.WriteError(status, Result{Code: CodeUndefined, Message: message})
}

// writeOptions answers a preflight request with the allowed methods of the
// matched endpoints and an empty body.
func (r *Request) writeOptions(allowMethods string) error {
	r.addDefaultHeaders()
	r.WriteHeader(echo.HeaderAccessControlAllowMethods, allowMethods)
	r.WriteHeader(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType)

	return r.c.NoContent(http.StatusOK)
}
