package yahoo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/navitrade/newsflow/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeSuffix(t *testing.T) {
	assert.Equal(t, ".NS", ExchangeSuffix("NSE"))
	assert.Equal(t, ".NS", ExchangeSuffix("nse"))
	assert.Equal(t, ".BO", ExchangeSuffix("BSE"))
	assert.Equal(t, "", ExchangeSuffix("NYSE"))
}

func TestGetQuotes(t *testing.T) {
	var gotSymbols, gotUA string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbols = r.URL.Query().Get("symbols")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"quoteResponse":{"result":[
			{"symbol":"RELIANCE.NS","regularMarketPrice":2843.5,"regularMarketVolume":120000,"regularMarketChangePercent":1.2}
		],"error":null}}`))
	}))
	defer srv.Close()

	c := NewClient(logger.New(logger.Config{Level: "error"}))
	c.SetQuoteURL(srv.URL)

	quotes, err := c.GetQuotes([]string{"RELIANCE.NS", "TCS.NS"})
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE.NS,TCS.NS", gotSymbols)
	assert.Contains(t, gotUA, "Mozilla")

	require.Len(t, quotes, 1)
	assert.Equal(t, "RELIANCE.NS", quotes[0].Symbol)
	assert.Equal(t, 2843.5, quotes[0].Price)
	assert.Equal(t, int64(120000), quotes[0].Volume)
	assert.InDelta(t, 1.2, quotes[0].ChangePct, 1e-9)
}

func TestGetQuotes_EmptyInput(t *testing.T) {
	c := NewClient(logger.New(logger.Config{Level: "error"}))

	quotes, err := c.GetQuotes(nil)
	require.NoError(t, err)
	assert.Nil(t, quotes)
}

func TestGetQuotes_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := NewClient(logger.New(logger.Config{Level: "error"}))
	c.SetQuoteURL(srv.URL)

	_, err := c.GetQuotes([]string{"RELIANCE.NS"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty quote response")
}

func TestGetQuotes_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(logger.New(logger.Config{Level: "error"}))
	c.SetQuoteURL(srv.URL)

	_, err := c.GetQuotes([]string{"RELIANCE.NS"})
	assert.Error(t, err)
}
