package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/api/npcs":
			assert.Equal(t, "1000", r.URL.Query().Get("limit"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"a1","npc_id":"grand_vizier","name":"Grand Vizier"}]`))
		case "/api/npcs/a1":
			_, _ = w.Write([]byte(`{"id":"a1","name":"Grand Vizier","tier":"gold"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Resource not found","status_code":404}`))
		}
	}))
	defer srv.Close()

	assert.True(t, testConnection(srv.Client(), srv.URL))

	items, err := listItems(srv.Client(), srv.URL, "/api/npcs")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "grand_vizier", items[0].String("npc_id"))
	assert.Equal(t, "", items[0].String("missing"))

	item, err := getItem(srv.Client(), srv.URL, "/api/npcs", "a1")
	require.NoError(t, err)
	assert.Equal(t, "gold", item.String("tier"))

	_, err = listItems(srv.Client(), srv.URL, "/api/unknown")
	assert.ErrorContains(t, err, "Resource not found")
}

func TestTestConnection_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	assert.False(t, testConnection(http.DefaultClient, url))
}
