package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postgen/config"
	"postgen/generator"
)

func newAirtableServer(t *testing.T, status int, body string, got *createRecordsPayload) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v0/appBase/PostIdeas", r.URL.Path)
		assert.Equal(t, "Bearer patKey", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) config.AirtableConfig {
	return config.AirtableConfig{
		APIKey:  "patKey",
		BaseID:  "appBase",
		Table:   "PostIdeas",
		BaseURL: baseURL + "/v0",
	}
}

func TestNewFields(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, time.FixedZone("PDT", -7*3600))
	fields := NewFields(
		generator.GeneratedPost{Text: "hello", Source: generator.SourceAI},
		generator.PostRequest{Topic: "remote work", Tone: "casual", Platform: "Twitter"},
		now,
	)
	assert.Equal(t, Fields{
		Content:     "hello",
		Topic:       "remote work",
		Tone:        "casual",
		Platform:    "Twitter",
		Status:      "draft",
		CreatedDate: "2026-03-15",
	}, fields)
}

func TestAirtable_CreateRecord(t *testing.T) {
	var got createRecordsPayload
	srv := newAirtableServer(t, http.StatusOK, `{"records":[{"id":"recABC123","createdTime":"2026-03-15T06:30:00.000Z","fields":{}}]}`, &got)

	store, err := NewAirtable(testConfig(srv.URL), srv.Client())
	require.NoError(t, err)

	fields := Fields{Content: "post", Topic: "t", Tone: "casual", Platform: "LinkedIn", Status: StatusDraft, CreatedDate: "2026-03-15"}
	id, err := store.CreateRecord(context.Background(), fields)
	require.NoError(t, err)
	assert.Equal(t, "recABC123", id)

	require.Len(t, got.Records, 1)
	assert.Equal(t, fields, got.Records[0].Fields)
}

func TestAirtable_CreateRecordFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "error status", status: http.StatusUnprocessableEntity, body: `{"error":{"type":"INVALID_VALUE_FOR_COLUMN","message":"bad field"}}`},
		{name: "malformed body", status: http.StatusOK, body: `{"records":`},
		{name: "no records", status: http.StatusOK, body: `{"records":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newAirtableServer(t, tc.status, tc.body, nil)
			store, err := NewAirtable(testConfig(srv.URL), srv.Client())
			require.NoError(t, err)
			_, err = store.CreateRecord(context.Background(), Fields{Content: "x"})
			assert.Error(t, err)
		})
	}
}

func TestAirtable_ErrorStatusCarriesDetail(t *testing.T) {
	srv := newAirtableServer(t, http.StatusForbidden, `{"error":"NOT_AUTHORIZED"}`, nil)
	store, err := NewAirtable(testConfig(srv.URL), srv.Client())
	require.NoError(t, err)

	_, err = store.CreateRecord(context.Background(), Fields{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "NOT_AUTHORIZED")
	assert.NotContains(t, err.Error(), "patKey")
}

func TestFromConfig(t *testing.T) {
	store, err := FromConfig(nil, 0)
	require.NoError(t, err)
	assert.IsType(t, Unconfigured{}, store)

	store, err = FromConfig(&config.AirtableConfig{APIKey: "patKey"}, 0)
	require.NoError(t, err)
	assert.IsType(t, Unconfigured{}, store)

	cfg := testConfig("https://api.airtable.com")
	store, err = FromConfig(&cfg, time.Second)
	require.NoError(t, err)
	require.IsType(t, &Airtable{}, store)
	assert.Equal(t, "https://api.airtable.com/v0/appBase/PostIdeas", store.(*Airtable).endpoint)
}

func TestVariants(t *testing.T) {
	_, err := Unconfigured{}.CreateRecord(context.Background(), Fields{})
	assert.ErrorIs(t, err, ErrUnconfigured)

	boom := errors.New("boom")
	_, err = Failing{Err: boom}.CreateRecord(context.Background(), Fields{})
	assert.ErrorIs(t, err, boom)
}
