package sapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type pathMatch struct {
	endpoint *Endpoint
	params   PathParams
}

// dispatch is the request callback handed to the HTTP engine. It runs on
// the engine's per-request goroutine and must never execute handler logic
// itself: a matched request is enqueued and this goroutine parks until a
// worker has written the response.
func (s *Server) dispatch(c echo.Context) error {
	req := newRequest(c, s.meta)

	if s.rejecting.Load() {
		s.logger.Debugf("Rejecting request while shutting down")
		return req.WriteErrorMessage(http.StatusServiceUnavailable, "Service is shutting down")
	}

	s.logger.Debugf("Received a %s request for %s from %s", req.Method(), req.URI(), req.Peer())

	if inWarmup, statusMessage := s.warmup(); inWarmup {
		return req.WriteErrorMessage(http.StatusServiceUnavailable, "Service temporarily unavailable: "+statusMessage)
	}

	if !s.clientAllowed(req.Peer()) {
		return req.WriteErrorMessage(http.StatusForbidden, "Access forbidden")
	}

	if req.Method() == MethodUnknown {
		return req.WriteErrorMessage(http.StatusMethodNotAllowed, "Invalid method")
	}

	uri := req.URI()

	if !strings.HasPrefix(uri, s.versionSubPath) {
		return req.WriteErrorMessage(http.StatusNotFound,
			fmt.Sprintf("Invalid api version. Use: <host>%s/<endpoint>", s.versionSubPath))
	}

	rest := uri[len(s.versionSubPath):]

	if rest == "" || rest[0] != '/' {
		return req.WriteErrorMessage(http.StatusNotFound,
			fmt.Sprintf("Endpoint missing. Use: <host>%s/<endpoint>", s.versionSubPath))
	}

	parts := splitPath(rest[1:])
	pathGroup := parts[0]
	uriParts := parts[1:]

	matches := s.collectMatches(pathGroup, uriParts)

	// For options requests just answer with the allowed methods for the
	// matched endpoints.
	if len(matches) > 0 && req.Method() == MethodOptions {
		allowMethods := MethodOptions.String()
		for _, match := range matches {
			allowMethods += ", " + match.endpoint.Method.String()
		}

		prometheusSapiRequests.WithLabelValues(req.Method().String(), "options").Inc()

		return req.writeOptions(allowMethods)
	}

	for _, match := range matches {
		if match.endpoint.Method != req.Method() {
			continue
		}

		item := newWorkItem(req, match.endpoint, match.params)

		if !s.queue.Enqueue(item) {
			s.logger.Warnf("request rejected because sapi work queue depth exceeded, it can be increased with the sapi_workqueue setting")
			prometheusSapiWorkQueueRejected.Inc()
			prometheusSapiRequests.WithLabelValues(req.Method().String(), "rejected").Inc()

			return req.WriteErrorMessage(http.StatusInternalServerError, "Work queue depth exceeded")
		}

		prometheusSapiWorkQueueDepth.Set(float64(s.queue.Len()))

		<-item.Done()

		return nil
	}

	prometheusSapiRequests.WithLabelValues(req.Method().String(), "unknown").Inc()

	return s.unknownEndpoint(req)
}

// collectMatches evaluates every endpoint of every group whose prefix
// equals the first path segment, in registration order, independent of the
// request method. All pattern matches are collected so that an OPTIONS
// request can discover every method variant of the path.
func (s *Server) collectMatches(pathGroup string, uriParts []string) []pathMatch {
	var matches []pathMatch

	for _, group := range s.groups {
		if group.Prefix != pathGroup {
			continue
		}

		for i := range group.Endpoints {
			endpoint := &group.Endpoints[i]

			if params, ok := matchEndpoint(endpoint, uriParts); ok {
				matches = append(matches, pathMatch{endpoint: endpoint, params: params})
			}
		}
	}

	return matches
}

func (s *Server) unknownEndpoint(req *Request) error {
	return req.WriteErrorMessage(http.StatusNotFound,
		fmt.Sprintf("Invalid endpoint: %s with method: %s", req.URI(), req.Method()))
}
