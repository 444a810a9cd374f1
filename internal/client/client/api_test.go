package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
	"github.com/dmitrijs2005/wedlink-admin/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Events(t *testing.T) {
	b := newFakeBackend(t)
	var created, updated models.EventInput

	b.handle(http.MethodGet, "/events/check-name/{name}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"exists": mux.Vars(r)["name"] == "Spring 2025"})
	})
	b.handle(http.MethodGet, "/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Event{ID: mux.Vars(r)["id"], Name: "Spring2025"})
	})
	b.handle(http.MethodPost, "/events", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
		w.WriteHeader(http.StatusCreated)
	})
	b.handle(http.MethodPut, "/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&updated))
		writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
	})
	b.handle(http.MethodDelete, "/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	api := NewHTTPClient(b.baseURL(), b.Client())
	ctx := context.Background()

	exists, err := api.EventNameExists(ctx, "Spring 2025")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = api.EventNameExists(ctx, "Autumn")
	require.NoError(t, err)
	assert.False(t, exists)

	e, err := api.GetEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID)

	date, err := models.ParseDate("2025-06-01")
	require.NoError(t, err)
	in := models.EventInput{Name: "Spring2025", GroomName: "Tom", BrideName: "Ann", Location: "Riga", Date: date, Template: models.TemplateModern}

	require.NoError(t, api.CreateEvent(ctx, in))
	assert.Empty(t, cmp.Diff(in, created))

	in.Location = "Jurmala"
	require.NoError(t, api.UpdateEvent(ctx, "e1", in))
	assert.Equal(t, "Jurmala", updated.Location)

	require.NoError(t, api.DeleteEvent(ctx, "e1"))
	assert.Equal(t, 1, b.count(http.MethodDelete, "/events/e1"))
}

func TestHTTPClient_Guests(t *testing.T) {
	b := newFakeBackend(t)
	var added models.GuestInput

	b.handle(http.MethodGet, "/guests/event/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Guest{{ID: "g1", Name: "Ann", WhatsApp: "+37120000000", EventID: mux.Vars(r)["id"]}})
	})
	b.handle(http.MethodPost, "/guests/event/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&added))
		w.WriteHeader(http.StatusCreated)
	})
	b.handle(http.MethodPut, "/guests/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	b.handle(http.MethodDelete, "/guests/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	api := NewHTTPClient(b.baseURL(), b.Client())
	ctx := context.Background()

	guests, err := api.ListGuests(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "e1", guests[0].EventID)

	require.NoError(t, api.AddGuest(ctx, "e1", models.GuestInput{Name: "Bob", WhatsApp: "+371"}))
	assert.Equal(t, "Bob", added.Name)

	require.NoError(t, api.UpdateGuest(ctx, "g1", models.GuestInput{Name: "Ann B", WhatsApp: "+371"}))
	require.NoError(t, api.DeleteGuest(ctx, "g123"))

	assert.Equal(t, 1, b.count(http.MethodPut, "/guests/g1"))
	assert.Equal(t, 1, b.count(http.MethodDelete, "/guests/g123"))
}

func TestHTTPClient_UploadGuests(t *testing.T) {
	b := newFakeBackend(t)
	var gotName, gotType string
	var gotData []byte

	b.handle(http.MethodPost, "/guests/bulk/{id}", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile(UploadFieldName)
		require.NoError(t, err)
		defer f.Close()
		gotName = hdr.Filename
		gotType = hdr.Header.Get("Content-Type")
		gotData, _ = io.ReadAll(f)
		writeJSON(w, http.StatusOK, map[string]int{"inserted": 2})
	})

	api := NewHTTPClient(b.baseURL(), b.Client())
	err := api.UploadGuests(context.Background(), "e1", models.Upload{Name: "/tmp/guests.xlsx", Data: []byte("PK-data")})
	require.NoError(t, err)

	assert.Equal(t, "guests.xlsx", gotName)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", gotType)
	assert.Equal(t, []byte("PK-data"), gotData)
}

func TestHTTPClient_Overview(t *testing.T) {
	b := newFakeBackend(t)
	b.handle(http.MethodGet, "/admin/overview", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Overview{TotalEvents: 12, TotalAdmins: 3, GrowthPercentage: 70, DeclinePercentage: 30})
	})

	o, err := NewHTTPClient(b.baseURL(), b.Client()).Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, o.TotalEvents)
	assert.Equal(t, 3, o.TotalAdmins)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	b := newFakeBackend(t)
	b.handle(http.MethodGet, "/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch mux.Vars(r)["id"] {
		case "missing":
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Event not found"})
		case "dup":
			writeJSON(w, http.StatusConflict, map[string]string{"error": "duplicate"})
		case "plain":
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusOK)
		}
	})

	api := NewHTTPClient(b.baseURL(), b.Client())
	ctx := context.Background()

	_, err := api.GetEvent(ctx, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, "Event not found", Message(err))

	_, err = api.GetEvent(ctx, "dup")
	require.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, "duplicate", Message(err))

	_, err = api.GetEvent(ctx, "plain")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream exploded", apiErr.Message)
	assert.EqualError(t, err, "api error 502: upstream exploded")

	_, err = api.GetEvent(ctx, "empty")
	assert.ErrorContains(t, err, "empty body")
}

func TestHTTPClient_ContextCancelled(t *testing.T) {
	b := newFakeBackend(t)
	b.handle(http.MethodGet, "/events", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeJSON(w, http.StatusOK, []models.Event{})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewHTTPClient(b.baseURL(), b.Client()).ListEvents(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestNewAPIError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, newAPIError(http.StatusUnauthorized, ""), ErrUnauthorized)
	assert.Nil(t, newAPIError(http.StatusTeapot, "").Unwrap())
	assert.EqualError(t, newAPIError(http.StatusTeapot, ""), "api error 418: I'm a teapot")
	assert.Empty(t, Message(io.EOF))
}
