package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
)

// UploadFieldName is the multipart field the bulk endpoint reads.
const UploadFieldName = "file"

// HTTPClient implements Client over REST. Its http.Client is expected to run
// through AuthTransport.
type HTTPClient struct {
	rest
}

func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	return &HTTPClient{rest: newRest(baseURL, hc)}
}

func (c *HTTPClient) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *HTTPClient) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) EventNameExists(ctx context.Context, name string) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(ctx, http.MethodGet, "/events/check-name/"+url.PathEscape(name), nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *HTTPClient) CreateEvent(ctx context.Context, in models.EventInput) error {
	return c.do(ctx, http.MethodPost, "/events", in, nil)
}

func (c *HTTPClient) UpdateEvent(ctx context.Context, id string, in models.EventInput) error {
	return c.do(ctx, http.MethodPut, "/events/"+url.PathEscape(id), in, nil)
}

func (c *HTTPClient) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListGuests(ctx context.Context, eventID string) ([]models.Guest, error) {
	var guests []models.Guest
	if err := c.do(ctx, http.MethodGet, "/guests/event/"+url.PathEscape(eventID), nil, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

func (c *HTTPClient) AddGuest(ctx context.Context, eventID string, in models.GuestInput) error {
	return c.do(ctx, http.MethodPost, "/guests/event/"+url.PathEscape(eventID), in, nil)
}

func (c *HTTPClient) UpdateGuest(ctx context.Context, guestID string, in models.GuestInput) error {
	return c.do(ctx, http.MethodPut, "/guests/"+url.PathEscape(guestID), in, nil)
}

func (c *HTTPClient) DeleteGuest(ctx context.Context, guestID string) error {
	return c.do(ctx, http.MethodDelete, "/guests/"+url.PathEscape(guestID), nil, nil)
}

// UploadGuests posts the spreadsheet as multipart/form-data. The body is held
// in memory so the request can be replayed after a token refresh.
func (c *HTTPClient) UploadGuests(ctx context.Context, eventID string, file models.Upload) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, UploadFieldName, filepath.Base(file.Name)))
	h.Set("Content-Type", spreadsheetContentType(file.Name))

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := part.Write(file.Data); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(c.requestContext(ctx), http.MethodPost,
		c.url("/guests/bulk/"+url.PathEscape(eventID)), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.send(req, nil)
}

func (c *HTTPClient) Overview(ctx context.Context) (*models.Overview, error) {
	var o models.Overview
	if err := c.do(ctx, http.MethodGet, "/admin/overview", nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func spreadsheetContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".xls":
		return "application/vnd.ms-excel"
	default:
		return "application/octet-stream"
	}
}
