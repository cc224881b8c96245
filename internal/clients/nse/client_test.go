package nse

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/navitrade/newsflow/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "SYMBOL, NAME OF COMPANY, SERIES, DATE OF LISTING, PAID UP VALUE, MARKET LOT, ISIN NUMBER, FACE VALUE\n" +
	"RELIANCE, Reliance Industries Limited, EQ, 29-NOV-1995, 10, 1, INE002A01018, 10\n" +
	"TCS, Tata Consultancy Services Limited, EQ, 25-AUG-2004, 1, 1, INE467B01029, 1\n" +
	"SOMEBOND, Some Bond Fund, BE, 01-JAN-2010, 10, 1, INE000000000, 10\n"

func TestParseEquityCSV_KeepsOnlyEQSeries(t *testing.T) {
	equities, err := parseEquityCSV(sampleCSV)
	require.NoError(t, err)

	require.Len(t, equities, 2)
	assert.Equal(t, "RELIANCE", equities[0].Symbol)
	assert.Equal(t, "Reliance Industries Limited", equities[0].Name)
	assert.Equal(t, "INE002A01018", equities[0].ISIN)
	assert.Equal(t, "TCS", equities[1].Symbol)
}

func TestParseEquityCSV_StripsBOM(t *testing.T) {
	equities, err := parseEquityCSV("\ufeff" + sampleCSV)
	require.NoError(t, err)
	assert.Len(t, equities, 2)
}

func TestParseEquityCSV_MissingColumn(t *testing.T) {
	_, err := parseEquityCSV("SYMBOL, SERIES\nRELIANCE, EQ\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NAME OF COMPANY")
}

func TestFetchEquities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	c := NewClient(logger.New(logger.Config{Level: "error"}))
	c.SetListURL(srv.URL)

	equities, err := c.FetchEquities()
	require.NoError(t, err)
	assert.Len(t, equities, 2)
}

func TestFetchEquities_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(logger.New(logger.Config{Level: "error"}))
	c.SetListURL(srv.URL)

	_, err := c.FetchEquities()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
