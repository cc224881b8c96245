package nse

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultEquityListURL = "https://archives.nseindia.com/content/equities/EQUITY_L.csv"

// Equity is one row of the NSE master equity list
type Equity struct {
	Symbol string
	Name   string
	ISIN   string
	Series string
}

// Client fetches the NSE master list
type Client struct {
	client  *http.Client
	listURL string
	log     zerolog.Logger
}

// NewClient creates a new NSE client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		listURL: defaultEquityListURL,
		log:     log.With().Str("client", "nse").Logger(),
	}
}

// SetListURL overrides the equity list endpoint. Used in tests.
func (c *Client) SetListURL(u string) {
	c.listURL = u
}

// FetchEquities downloads and parses the master equity list, keeping only
// EQ-series rows.
func (c *Client) FetchEquities() ([]Equity, error) {
	resp, err := c.client.Get(c.listURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch equity list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("equity list returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read equity list: %w", err)
	}

	return parseEquityCSV(string(body))
}

// parseEquityCSV parses the EQUITY_L.csv payload. Headers are trimmed and
// a UTF-8 BOM, if present, is stripped first.
func parseEquityCSV(payload string) ([]Equity, error) {
	payload = strings.TrimPrefix(payload, "\ufeff")

	reader := csv.NewReader(strings.NewReader(payload))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	for _, required := range []string{"SYMBOL", "NAME OF COMPANY", "SERIES"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("equity list missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var equities []Equity
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		eq := Equity{
			Symbol: field(row, "SYMBOL"),
			Name:   field(row, "NAME OF COMPANY"),
			ISIN:   field(row, "ISIN NUMBER"),
			Series: field(row, "SERIES"),
		}

		if eq.Series != "EQ" {
			continue
		}

		equities = append(equities, eq)
	}

	return equities, nil
}
