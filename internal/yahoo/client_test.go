package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveISIN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/finance/search", r.URL.Path)
		assert.Equal(t, "US0378331005", r.URL.Query().Get("q"))
		fmt.Fprint(w, `{"quotes":[
			{"symbol":"AAPL260116C00100000","quoteType":"OPTION"},
			{"symbol":"AAPL","quoteType":"EQUITY","exchange":"NMS"}
		]}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	symbol, err := client.ResolveISIN(context.Background(), "US0378331005")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", symbol, "equity match preferred over derivatives")
}

func TestResolveISIN_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quotes":[]}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.ResolveISIN(context.Background(), "XX0000000000")
	require.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestGetQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{
			"currency":"USD","symbol":"AAPL",
			"regularMarketPrice":98.0,"chartPreviousClose":100.0
		}}],"error":null}}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	quote, err := client.GetQuote(context.Background(), "US0378331005", "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "US0378331005", quote.ISIN)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 100.0, quote.PreviousClose)
	assert.Equal(t, 98.0, quote.LivePrice)
	assert.InDelta(t, -2.0, quote.PctChange(), 1e-9)
}

func TestGetQuote_ChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.GetQuote(context.Background(), "US0378331005", "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")
}

func TestGetQuote_NonPositivePreviousClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{
			"regularMarketPrice":98.0,"chartPreviousClose":0
		}}],"error":null}}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.GetQuote(context.Background(), "US0378331005", "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "previous close")
}

func TestDoRequest_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.ResolveISIN(context.Background(), "US0378331005")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
