package sapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ArcherBullseye/Core-Smart/errors"
	"github.com/ArcherBullseye/Core-Smart/jsonval"
	"github.com/ordishs/gocore"
)

// executeEndpoint runs one dequeued work item on a worker: body validation
// first, then the endpoint handler. A failing item never takes the worker
// down; the dispatcher's goroutine is always released via the done channel.
func (s *Server) executeEndpoint(item *WorkItem) {
	start := gocore.CurrentTime()
	t0 := time.Now()

	defer close(item.done)

	defer func() {
		SapiStat.NewStat("execute").AddTime(start)
		prometheusSapiExecuteDuration.Observe(time.Since(t0).Seconds())
		prometheusSapiWorkQueueDepth.Set(float64(s.queue.Len()))

		if r := recover(); r != nil {
			s.logger.Errorf("[SAPI][%s] panic while executing %s %s: %v", item.id, item.req.Method(), item.req.URI(), r)
			_ = item.req.WriteErrorMessage(http.StatusInternalServerError, "Internal server error")
		}
	}()

	body, ok := s.validateBody(item)
	if !ok {
		prometheusSapiRequests.WithLabelValues(item.req.Method().String(), "invalid_body").Inc()
		return
	}

	if err := item.endpoint.Handler(item.req, item.pathParams, body); err != nil {
		s.logger.Errorf("[SAPI][%s] handler for %s %s failed: %v", item.id, item.req.Method(), item.req.URI(), err)
		prometheusSapiRequests.WithLabelValues(item.req.Method().String(), "handler_error").Inc()

		return
	}

	prometheusSapiRequests.WithLabelValues(item.req.Method().String(), "ok").Inc()
}

// validateBody reads and parses the request body when the endpoint declares
// a body root, verifies the root kind and runs every declared parameter
// check. On any failure it writes the 400 response and returns false.
func (s *Server) validateBody(item *WorkItem) (*jsonval.Value, bool) {
	endpoint := item.endpoint
	req := item.req

	if endpoint.BodyRoot != jsonval.KindObject && endpoint.BodyRoot != jsonval.KindArray {
		return jsonval.Null, true
	}

	bodyStr, err := req.ReadBody()
	if err != nil {
		_ = req.WriteErrorMessage(http.StatusBadRequest, "Failed to read request body: "+err.Error())
		return nil, false
	}

	if bodyStr == "" {
		_ = req.WriteErrorMessage(http.StatusBadRequest, "No parameter object defined in the request body")
		return nil, false
	}

	body, err := jsonval.Parse([]byte(bodyStr))
	if err != nil {
		var sErr *errors.Error
		if errors.As(err, &sErr) {
			_ = req.WriteErrorMessage(http.StatusBadRequest, fmt.Sprintf("%s (code %d)", sErr.Message(), sErr.Code()))
		} else {
			_ = req.WriteErrorMessage(http.StatusBadRequest, "Error parsing JSON: "+err.Error())
		}

		return nil, false
	}

	if body.Kind() != endpoint.BodyRoot {
		kind := "object"
		if endpoint.BodyRoot == jsonval.KindArray {
			kind = "array"
		}

		_ = req.WriteErrorMessage(http.StatusBadRequest, "Request body is expected to be a JSON "+kind)

		return nil, false
	}

	if results := checkBodyParameters(body, endpoint.Parameters); len(results) > 0 {
		_ = req.WriteError(http.StatusBadRequest, results...)
		return nil, false
	}

	return body, true
}
