package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/wedlink-admin/internal/logging"
)

const maxErrorBody = 4096

// rest performs JSON calls against the API base URL.
type rest struct {
	baseURL string
	http    *http.Client
}

func newRest(baseURL string, hc *http.Client) rest {
	return rest{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (r rest) url(path string) string {
	return r.baseURL + path
}

// do sends a request with an optional JSON body and decodes a JSON response
// into out when out is non-nil.
func (r rest) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(r.requestContext(ctx), method, r.url(path), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return r.send(req, out)
}

// send executes req and maps the outcome to the package errors.
func (r rest) send(req *http.Request, out any) error {
	resp, err := r.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, errorMessage(raw))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response: empty body")
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// requestContext makes sure every logical call carries one request id, shared
// by its replay.
func (r rest) requestContext(ctx context.Context) context.Context {
	if _, ok := logging.RequestID(ctx); ok {
		return ctx
	}
	return logging.WithRequestID(ctx, logging.NewRequestID())
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
