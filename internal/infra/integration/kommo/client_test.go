package kommo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/painel-crm/internal/entity"
)

func TestSyncLead_ExistingContact(t *testing.T) {
	var leads []LeadInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/contacts":
			assert.Equal(t, "5511999998888", r.URL.Query().Get("query"))
			w.Write([]byte(`{"_embedded":{"contacts":[{"id":42}]}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/leads":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&leads))
			w.Write([]byte(`{"_embedded":{"leads":[{"id":7}]}}`))
		default:
			t.Errorf("chamada inesperada %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	lead := entity.NewLead("c1", "Ana", "5511999998888")
	lead.Origem = "site"

	require.NoError(t, NewClient("tok", srv.URL).SyncLead(context.Background(), lead))
	require.Len(t, leads, 1)
	assert.Equal(t, 42, leads[0].Embedded.Contacts[0].ID)
	assert.Equal(t, []Tag{{Name: "painel"}, {Name: "site"}}, leads[0].Embedded.Tags)
}

func TestSyncLead_CreatesContact(t *testing.T) {
	created := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/contacts":
			created = true
			w.Write([]byte(`{"_embedded":{"contacts":[{"id":9}]}}`))
		case r.URL.Path == "/leads":
			w.Write([]byte(`{"_embedded":{"leads":[{"id":1}]}}`))
		}
	}))
	defer srv.Close()

	require.NoError(t, NewClient("tok", srv.URL).SyncLead(context.Background(), entity.NewLead("c1", "Ana", "5511")))
	assert.True(t, created)
}

func TestSyncLead_NotConfigured(t *testing.T) {
	assert.NoError(t, NewClient("", "").SyncLead(context.Background(), entity.NewLead("c1", "Ana", "5511")))
}
