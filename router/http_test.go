package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roysitumorang/kilau/config"
	"github.com/roysitumorang/kilau/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationalRoutes(t *testing.T) {
	app := (&Service{}).NewApp(context.Background())

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	var payload helper.Response
	require.NoError(t, json.NewDecoder(response.Body).Decode(&payload))
	assert.Equal(t, config.AppName, payload.App)
	assert.NotEmpty(t, response.Header.Get("X-Request-Id"))

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/v1/unknown", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	assert.Equal(t, uint16(9090), Port())
	t.Setenv("PORT", "99999")
	assert.Equal(t, DefaultPort, Port())
	t.Setenv("PORT", "")
	assert.Equal(t, DefaultPort, Port())
}

func TestMakeHandlerClosesReadPoolWhenWritePoolFails(t *testing.T) {
	ctx := context.Background()
	var dbRead *pgxpool.Pool
	openRead := func(ctx context.Context) (*pgxpool.Pool, error) {
		var err error
		dbRead, err = pgxpool.New(ctx, "host=127.0.0.1 port=1 user=kilau dbname=kilau")
		return dbRead, err
	}
	openWrite := func(context.Context) (*pgxpool.Pool, error) {
		return nil, errors.New("db: host is required")
	}
	service, err := makeHandler(ctx, false, openRead, openWrite)
	require.EqualError(t, err, "db: host is required")
	assert.Nil(t, service)
	require.NotNil(t, dbRead)
	assert.ErrorContains(t, dbRead.Ping(ctx), "closed pool")
}

func TestMakeHandlerWithoutBroker(t *testing.T) {
	ctx := context.Background()
	open := func(ctx context.Context) (*pgxpool.Pool, error) {
		return pgxpool.New(ctx, "host=127.0.0.1 port=1 user=kilau dbname=kilau")
	}
	service, err := makeHandler(ctx, false, open, open)
	require.NoError(t, err)
	defer service.Close()
	assert.Nil(t, service.NsqProducer)
	assert.NotNil(t, service.SequenceSettingUseCase)
	assert.NotNil(t, service.Migration)
}
