package client

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/wedlink-admin/internal/common"
	"github.com/dmitrijs2005/wedlink-admin/internal/logging"
)

// LoggedTransport stamps every request with X-Request-ID (taken from the
// context or freshly generated) and logs its outcome.
type LoggedTransport struct {
	next http.RoundTripper
	log  logging.Logger
}

func NewLoggedTransport(next http.RoundTripper, log logging.Logger) *LoggedTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	if log == nil {
		log = logging.Nop()
	}
	return &LoggedTransport{next: next, log: log}
}

func (t *LoggedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	id, ok := logging.RequestID(ctx)
	if !ok {
		id = logging.NewRequestID()
		ctx = logging.WithRequestID(ctx, id)
	}

	out := req.Clone(ctx)
	out.Header.Set(common.RequestIDHeaderName, id)

	start := time.Now()
	resp, err := t.next.RoundTrip(out)
	elapsed := time.Since(start)

	if err != nil {
		t.log.Warn(ctx, "http request failed",
			"method", req.Method, "path", req.URL.Path, "duration", elapsed, "error", err)
		return nil, err
	}

	t.log.Debug(ctx, "http request",
		"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "duration", elapsed)
	return resp, nil
}
