package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"

// Quote is one market quote from the batch endpoint
type Quote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"regularMarketPrice"`
	Open      float64 `json:"regularMarketOpen"`
	High      float64 `json:"regularMarketDayHigh"`
	Low       float64 `json:"regularMarketDayLow"`
	Volume    int64   `json:"regularMarketVolume"`
	Change    float64 `json:"regularMarketChange"`
	ChangePct float64 `json:"regularMarketChangePercent"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []Quote     `json:"result"`
		Error  interface{} `json:"error"`
	} `json:"quoteResponse"`
}

// Client is a Yahoo Finance quote client
type Client struct {
	client   *http.Client
	quoteURL string
	log      zerolog.Logger
}

// NewClient creates a new Yahoo Finance client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		quoteURL: defaultQuoteURL,
		log:      log.With().Str("client", "yahoo").Logger(),
	}
}

// SetQuoteURL overrides the quote endpoint. Used in tests.
func (c *Client) SetQuoteURL(u string) {
	c.quoteURL = u
}

// ExchangeSuffix maps an exchange code to the Yahoo symbol suffix.
// NSE listings trade on Yahoo under SYMBOL.NS.
func ExchangeSuffix(exchange string) string {
	switch strings.ToUpper(exchange) {
	case "NSE":
		return ".NS"
	case "BSE":
		return ".BO"
	default:
		return ""
	}
}

// GetQuotes fetches quotes for a batch of already-suffixed Yahoo symbols
func (c *Client) GetQuotes(symbols []string) ([]Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))

	req, err := http.NewRequest(http.MethodGet, c.quoteURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	// Yahoo rejects the default Go user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote response: %w", err)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("empty quote response")
	}

	var parsed quoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	return parsed.QuoteResponse.Result, nil
}
