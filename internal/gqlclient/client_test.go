package gqlclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoUnmarshalsData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "{ hello }", req.Query)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"hello":"Hello, CRM!"}}`))
	}))
	defer server.Close()

	var resp struct {
		Hello string `json:"hello"`
	}
	err := New(server.URL).Do(context.Background(), "{ hello }", nil, &resp)

	require.NoError(t, err)
	assert.Equal(t, "Hello, CRM!", resp.Hello)
}

func TestDoSendsVariables(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2026-08-25T00:00:00Z", req.Variables["since"])

		_, _ = w.Write([]byte(`{"data":{"orders":[]}}`))
	}))
	defer server.Close()

	err := New(server.URL).Do(context.Background(), "query ($since: DateTime) { orders { id } }",
		map[string]interface{}{"since": "2026-08-25T00:00:00Z"}, nil)

	require.NoError(t, err)
}

func TestDoJoinsGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Customer does not exist"},{"message":"boom"}]}`))
	}))
	defer server.Close()

	err := New(server.URL).Do(context.Background(), "{ hello }", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Customer does not exist")
	assert.Contains(t, err.Error(), "boom")
}

func TestDoRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := New(server.URL).Do(context.Background(), "{ hello }", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}
