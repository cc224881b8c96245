package scoring

import (
	"testing"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestScore_AdditiveAcrossTables(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{
			name:     "single high phrase",
			text:     "board approves share buyback",
			expected: 40,
		},
		{
			name:     "two high phrases accumulate",
			text:     "company x faces fraud investigation",
			expected: -100, // fraud -60, investigation -40
		},
		{
			name:     "high and medium mix",
			text:     "buyback fuels growth",
			expected: 55, // buyback 40, growth 15
		},
		{
			name:     "phrase counted once regardless of repetition",
			text:     "fraud upon fraud upon fraud",
			expected: -60,
		},
		{
			name:     "no matches",
			text:     "quiet day on the exchange",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.text))
		})
	}
}

func TestScore_PureFunction(t *testing.T) {
	text := "fraud investigation deepens amid growth concerns"
	first := Score(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(text))
	}
}

func TestSeverityAndDirection_Boundaries(t *testing.T) {
	tests := []struct {
		score     int
		severity  domain.Severity
		direction domain.SignalType
	}{
		{score: 40, severity: domain.SeverityHigh, direction: domain.SignalBuy},
		{score: -40, severity: domain.SeverityHigh, direction: domain.SignalSell},
		{score: 100, severity: domain.SeverityHigh, direction: domain.SignalBuy},
		{score: -100, severity: domain.SeverityHigh, direction: domain.SignalSell},
		{score: 39, severity: domain.SeverityMedium, direction: ""},
		{score: 25, severity: domain.SeverityMedium, direction: ""},
		{score: -25, severity: domain.SeverityMedium, direction: ""},
		{score: 20, severity: domain.SeverityMedium, direction: ""},
		{score: 19, severity: domain.SeverityLow, direction: ""},
		{score: 5, severity: domain.SeverityLow, direction: ""},
		{score: -5, severity: domain.SeverityLow, direction: ""},
		{score: 0, severity: "", direction: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.severity, SeverityFor(tt.score), "severity for %d", tt.score)
		assert.Equal(t, tt.direction, DirectionFor(tt.score), "direction for %d", tt.score)
	}
}

// MEDIUM and LOW severities never clear the direction thresholds. The gap
// is deliberate: only HIGH-tier scores produce tradable signals.
func TestMediumAndLowNeverEmit(t *testing.T) {
	for s := -39; s <= 39; s++ {
		assert.Equal(t, domain.SignalType(""), DirectionFor(s), "score %d", s)
	}
}
