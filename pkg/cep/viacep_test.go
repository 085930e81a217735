package cep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"cep": "01310-100",
			"logradouro": "Avenida Paulista",
			"complemento": "de 612 a 1510 - lado par",
			"bairro": "Bela Vista",
			"localidade": "São Paulo",
			"uf": "SP"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	// Non-digit characters are stripped before the upstream call.
	addr, err := c.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)

	assert.Equal(t, "01310-100", addr.CEP)
	assert.Equal(t, "Avenida Paulista", addr.Street)
	assert.Equal(t, "Bela Vista", addr.Neighborhood)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "SP", addr.State)
}

func TestClient_Lookup_UnknownCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Lookup(context.Background(), "99999999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Lookup_UnknownCodeLegacyMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro": "true"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Lookup(context.Background(), "99999999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Lookup_ExplicitErroFalse(t *testing.T) {
	// An explicit {"erro": false} is not a not-found marker.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cep": "01310-100", "logradouro": "Avenida Paulista", "erro": false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	addr, err := c.Lookup(context.Background(), "01310100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", addr.Street)
}

func TestClient_Lookup_MalformedCode(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Lookup(context.Background(), "123")
	require.Error(t, err)
	assert.False(t, called, "malformed codes must not reach the upstream service")
}

func TestClient_Lookup_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Lookup(context.Background(), "01310100")
	require.Error(t, err)
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "01310100", onlyDigits("01.310-100"))
	assert.Equal(t, "", onlyDigits("abc"))
}
