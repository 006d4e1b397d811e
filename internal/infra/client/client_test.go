package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/infra/client"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Test: 商品取得（Authorizationを転送する）
func TestItemHTTPClient_GetItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/item/7894900011517", r.URL.Path)
		assert.Equal(t, "Bearer token-john", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ean":7894900011517,"price":100.00}`))
	}))
	defer srv.Close()

	c := client.NewItemHTTPClient(srv.URL, srv.Client())

	item, err := c.GetItem(context.Background(), 7894900011517, "Bearer token-john")
	assert.NoError(t, err)
	assert.Equal(t, int64(7894900011517), item.EAN)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("100.00")))
}

// Test: 404はErrItemNotFound
func TestItemHTTPClient_GetItem_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := client.NewItemHTTPClient(srv.URL, srv.Client())

	_, err := c.GetItem(context.Background(), 123456, "Bearer token-john")
	assert.ErrorIs(t, err, usecase.ErrItemNotFound)
}

// Test: 5xxはerrorのまま返す（潰すのはusecase側）
func TestItemHTTPClient_GetItem_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := client.NewItemHTTPClient(srv.URL, srv.Client())

	_, err := c.GetItem(context.Background(), 123456, "Bearer token-john")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrItemNotFound)
}

// Test: タイムアウトはerror
func TestItemHTTPClient_GetItem_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := client.NewItemHTTPClient(srv.URL, &http.Client{Timeout: 20 * time.Millisecond})

	_, err := c.GetItem(context.Background(), 123456, "Bearer token-john")
	assert.Error(t, err)
}

// Test: ユーザー存在確認
func TestUserHTTPClient_Exists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/john", r.URL.Path)
		assert.Equal(t, "Bearer token-john", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`true`))
	}))
	defer srv.Close()

	c := client.NewUserHTTPClient(srv.URL, srv.Client())

	exists, err := c.Exists(context.Background(), "john", "Bearer token-john")
	assert.NoError(t, err)
	assert.True(t, exists)
}

// Test: 404はfalse（errorではない）
func TestUserHTTPClient_Exists_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := client.NewUserHTTPClient(srv.URL, srv.Client())

	exists, err := c.Exists(context.Background(), "ghost", "Bearer token-john")
	assert.NoError(t, err)
	assert.False(t, exists)
}

// Test: 5xxはerror
func TestUserHTTPClient_Exists_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := client.NewUserHTTPClient(srv.URL, srv.Client())

	_, err := c.Exists(context.Background(), "john", "Bearer token-john")
	assert.Error(t, err)
}
