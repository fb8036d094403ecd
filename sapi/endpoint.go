// Package sapi implements the SAPI HTTP front-end of the node: a versioned
// REST surface whose endpoints are matched by path template, validated
// against per-endpoint body schemas and executed on a bounded worker pool so
// that slow handlers never block request acceptance.
package sapi

import (
	"net/http"

	"github.com/ArcherBullseye/Core-Smart/jsonval"
)

// Method is the HTTP verb of an endpoint. MethodUnknown is never valid on a
// registered endpoint.
type Method int

const (
	MethodUnknown Method = iota
	MethodGet
	MethodPost
	MethodOptions
)

func ParseMethod(s string) Method {
	switch s {
	case http.MethodGet:
		return MethodGet
	case http.MethodPost:
		return MethodPost
	case http.MethodOptions:
		return MethodOptions
	default:
		return MethodUnknown
	}
}

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodOptions:
		return "OPTIONS"
	default:
		return "UNKNOWN"
	}
}

// PathParams holds the values extracted from {name} placeholders of a
// matched endpoint template, keyed by placeholder name.
type PathParams map[string]string

// HandlerFunc executes a matched endpoint on a worker thread. The handler is
// responsible for writing the HTTP response; the returned error is used for
// logging and metrics only.
type HandlerFunc func(req *Request, pathParams PathParams, body *jsonval.Value) error

// Endpoint describes one registered route of an endpoint group.
//
// Path is the template relative to the group prefix, e.g.
// "{address}/balance". Segments wrapped in braces are placeholders. An empty
// Path marks the group's root endpoint, matching /v1/<prefix> and
// /v1/<prefix>/ only.
//
// BodyRoot declares the expected JSON root of the request body,
// jsonval.KindObject or jsonval.KindArray. Any other kind means the body is
// not read at all.
type Endpoint struct {
	Path       string
	Method     Method
	BodyRoot   jsonval.Kind
	Parameters []BodyParameter
	Handler    HandlerFunc
}

// EndpointGroup is a named collection of endpoints sharing the first path
// segment after the version prefix. Groups are matched in registration
// order; so are the endpoints within a group.
type EndpointGroup struct {
	Prefix    string
	Endpoints []Endpoint
}
