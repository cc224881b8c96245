package scoring

import (
	"strings"

	"github.com/navitrade/newsflow/internal/domain"
)

// Weighted phrase tables, partitioned by impact tier. Weights are signed:
// negative phrases push toward SELL, positive toward BUY. Every matching
// phrase across all three tables contributes additively to the score.
var (
	HighImpact = map[string]int{
		"fraud":          -60,
		"scam":           -60,
		"default":        -50,
		"bankruptcy":     -70,
		"investigation":  -40,
		"resignation":    -35,
		"penalty":        -30,
		"downgrade":      -25,
		"crash":          -50,
		"plunge":         -40,
		"acquisition":    50,
		"buyback":        40,
		"stake increase": 35,
		"order win":      30,
		"major contract": 40,
		"record profit":  35,
	}

	MediumImpact = map[string]int{
		"growth":         15,
		"upgrade":        15,
		"expansion":      20,
		"guidance raise": 25,
		"decline":        -15,
		"loss":           -20,
	}

	LowImpact = map[string]int{
		"volatility":      5,
		"market reaction": 5,
	}
)

// Severity thresholds on the absolute final score
const (
	highThreshold   = 40
	mediumThreshold = 20
)

// Direction thresholds on the signed final score. They coincide with the
// HIGH severity band, so MEDIUM and LOW severities classify but never
// emit a signal.
const (
	buyThreshold  = 40
	sellThreshold = -40
)

// Score computes the additive impact score of lowercased article text.
// Each phrase counts at most once regardless of repetition. Pure function
// of the text and the tables: rescoring the same text always yields the
// same value.
func Score(text string) int {
	score := 0
	for _, table := range []map[string]int{HighImpact, MediumImpact, LowImpact} {
		for phrase, weight := range table {
			if strings.Contains(text, phrase) {
				score += weight
			}
		}
	}
	return score
}

// SeverityFor maps a final score to its impact tier. The zero Severity
// value means no severity: the score carries no signal at all.
func SeverityFor(score int) domain.Severity {
	abs := score
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= highThreshold:
		return domain.SeverityHigh
	case abs >= mediumThreshold:
		return domain.SeverityMedium
	case abs > 0:
		return domain.SeverityLow
	default:
		return ""
	}
}

// DirectionFor maps a final score to a trade direction. The zero
// SignalType value means no signal.
func DirectionFor(score int) domain.SignalType {
	switch {
	case score >= buyThreshold:
		return domain.SignalBuy
	case score <= sellThreshold:
		return domain.SignalSell
	default:
		return ""
	}
}
