package classify

import (
	"testing"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		sentiment domain.Sentiment
		hits      int
	}{
		{
			name:      "bullish outweighs",
			text:      "record profit and strong growth this quarter",
			sentiment: domain.SentimentBullish,
			hits:      2,
		},
		{
			name:      "bearish outweighs",
			text:      "shares fall after surprise loss",
			sentiment: domain.SentimentBearish,
			hits:      2,
		},
		{
			name:      "tie is neutral with zero hits",
			text:      "profit up but loss on subsidiary",
			sentiment: domain.SentimentNeutral,
			hits:      0,
		},
		{
			name:      "no hits is neutral",
			text:      "board meeting scheduled for monday",
			sentiment: domain.SentimentNeutral,
			hits:      0,
		},
		{
			name:      "keyword counted once regardless of repetition",
			text:      "profit profit profit",
			sentiment: domain.SentimentBullish,
			hits:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentiment, hits := AnalyzeSentiment(tt.text)
			assert.Equal(t, tt.sentiment, sentiment)
			assert.Equal(t, tt.hits, hits)
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	detected := ExtractKeywords("profit dropped, analysts downgrade after miss")
	assert.Equal(t, []string{"profit", "drop", "downgrade", "miss"}, detected)
}

func TestDetectCompany_FirstMatchWins(t *testing.T) {
	roster := []domain.Company{
		{ID: 1, Symbol: "ALPHA", Name: "Alpha Industries"},
		{ID: 2, Symbol: "BETA", Name: "Beta Steel"},
	}

	// Text mentions both; roster order decides
	got := DetectCompany("beta steel in talks with alpha industries", roster)
	assert.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestDetectCompany_MatchesBySymbol(t *testing.T) {
	roster := []domain.Company{
		{ID: 1, Symbol: "TCS", Name: "Tata Consultancy Services"},
	}

	got := DetectCompany("tcs wins major contract", roster)
	assert.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestDetectCompany_NoMatch(t *testing.T) {
	roster := []domain.Company{
		{ID: 1, Symbol: "ALPHA", Name: "Alpha Industries"},
	}

	assert.Nil(t, DetectCompany("unrelated market commentary", roster))
}
