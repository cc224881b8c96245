package domain

import "time"

// Sentiment is the coarse directional label produced by the classifier
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Severity is the impact tier derived from a signal score
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// SignalType is the trade direction of an emitted signal
type SignalType string

const (
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
)

// NewsSource is a configured feed endpoint
type NewsSource struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	BaseURL  string `json:"base_url"`
	Type     string `json:"type"` // currently only RSS
	IsActive bool   `json:"is_active"`
}

// Company is one entry in the tracked universe. Mutated only by the
// universe sync job; the pipeline reads it as an immutable roster.
type Company struct {
	ID       int64  `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	ISIN     string `json:"isin,omitempty"`
	Exchange string `json:"exchange"`
	IsListed bool   `json:"is_listed"`
}

// Article is a raw ingested news item. Fingerprint is unique across all
// articles ever ingested; Processed flips false->true exactly once.
type Article struct {
	ID          int64      `json:"id"`
	SourceID    int64      `json:"source_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	URL         string     `json:"url"`
	Fingerprint string     `json:"fingerprint"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	FetchedAt   time.Time  `json:"fetched_at"`
	Processed   bool       `json:"is_processed"`
}

// ProcessedEvent links an article to a company with sentiment metadata.
// At most one per article; created only when a company matched and the
// lexicons produced at least one directional hit.
type ProcessedEvent struct {
	ID          int64     `json:"id"`
	ArticleID   int64     `json:"article_id"`
	CompanyID   int64     `json:"company_id"`
	Keywords    []string  `json:"detected_keywords"`
	Category    string    `json:"category"`
	BaseScore   int       `json:"base_score"`
	FinalScore  int       `json:"final_score"`
	Sentiment   Sentiment `json:"sentiment"`
	Confidence  int       `json:"confidence_score"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Signal is the terminal BUY/SELL decision for a single article.
// The article_id uniqueness constraint is the core idempotency guarantee.
type Signal struct {
	ID          int64      `json:"id"`
	CompanyID   int64      `json:"company_id"`
	ArticleID   int64      `json:"article_id"`
	Type        SignalType `json:"signal_type"`
	Severity    Severity   `json:"severity"`
	Score       int        `json:"signal_score"`
	GeneratedAt time.Time  `json:"generated_at"`
	Active      bool       `json:"is_active"`
}

// PriceSnapshot is one quote sample for a company
type PriceSnapshot struct {
	ID         int64     `json:"id"`
	CompanyID  int64     `json:"company_id"`
	Price      float64   `json:"price"`
	Open       float64   `json:"open"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	Volume     int64     `json:"volume"`
	Change     float64   `json:"change"`
	ChangePct  float64   `json:"pchange"`
	CapturedAt time.Time `json:"captured_at"`
}
