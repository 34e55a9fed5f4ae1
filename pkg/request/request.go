package request

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/sirupsen/logrus"

	"github.com/tradebinder/tradebinder/pkg/logger"
	"github.com/tradebinder/tradebinder/pkg/telemetry"
)

// Request wraps an outgoing HTTP request so clients share one code path for
// headers, tracing, logging and metrics.
type Request struct {
	req *http.Request
}

var (
	metricsOnce     sync.Once
	requestCounter  *telemetry.Counter
	requestDuration *telemetry.Histogram
)

func requestMetrics() (*telemetry.Counter, *telemetry.Histogram) {
	metricsOnce.Do(func() {
		meter := telemetry.GetMeter("tradebinder/request")
		requestCounter, _ = telemetry.NewCounter(meter, telemetry.MetricOptions{
			Name:        telemetry.BuildMetricName("client_requests", telemetry.MetricNameSuffixTotal),
			Description: "Outgoing HTTP requests by backend, operation and status",
			Unit:        "1",
		})
		requestDuration, _ = telemetry.NewHistogram(meter, telemetry.MetricOptions{
			Name:        telemetry.BuildMetricName("client_request", telemetry.MetricNameSuffixDuration),
			Description: "Outgoing HTTP request latency",
			Unit:        "s",
		})
	})
	return requestCounter, requestDuration
}

// NewRequest builds a Request bound to ctx. body may be nil.
func NewRequest(ctx context.Context, method, url string, body []byte) (*Request, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	return &Request{req: req}, nil
}

// SetHeaders applies headers to the underlying request.
func (r *Request) SetHeaders(headers map[string]string) {
	for key, value := range headers {
		r.req.Header.Set(key, value)
	}
}

// MakeRequest executes the request with the given client and returns the
// response body and status code. A non-2xx status is not an error here;
// callers decide what statuses are acceptable. The error return is reserved
// for transport failures where no response was received.
func (r *Request) MakeRequest(client heimdall.Doer, methodName, backend string) ([]byte, int, error) {
	ctx := r.req.Context()
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"backend":   backend,
		"operation": methodName,
		"method":    r.req.Method,
		"url":       r.req.URL.String(),
	})

	span, ctx := opentracing.StartSpanFromContext(ctx, methodName)
	defer span.Finish()
	ext.SpanKindRPCClient.Set(span)
	ext.HTTPMethod.Set(span, r.req.Method)
	ext.HTTPUrl.Set(span, r.req.URL.String())
	r.req = r.req.WithContext(ctx)

	counter, duration := requestMetrics()
	start := time.Now()

	response, err := client.Do(r.req)
	elapsed := time.Since(start).Seconds()

	if response == nil {
		ext.Error.Set(span, true)
		if counter != nil {
			counter.Inc(ctx,
				telemetry.WithBackend(backend),
				telemetry.WithOperation(methodName),
				telemetry.WithStatus(telemetry.StatusError))
		}
		log.WithError(err).Error("request failed with no response")
		return nil, 0, err
	}
	defer func() {
		_ = response.Body.Close()
	}()

	body, readErr := io.ReadAll(response.Body)
	if readErr != nil {
		ext.Error.Set(span, true)
		log.WithError(readErr).Error("failed to read response body")
		return nil, response.StatusCode, readErr
	}

	ext.HTTPStatusCode.Set(span, uint16(response.StatusCode))

	status := telemetry.StatusSuccess
	if response.StatusCode >= http.StatusBadRequest {
		status = telemetry.StatusError
	}
	if counter != nil {
		counter.Inc(ctx,
			telemetry.WithBackend(backend),
			telemetry.WithOperation(methodName),
			telemetry.WithStatus(status))
	}
	if duration != nil {
		duration.Record(ctx, elapsed,
			telemetry.WithBackend(backend),
			telemetry.WithOperation(methodName))
	}

	log.WithField("status_code", response.StatusCode).Debug("request completed")
	return body, response.StatusCode, nil
}
