package alerts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/navitrade/newsflow/internal/events"
	"github.com/navitrade/newsflow/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type fakeSender struct {
	configured bool
	err        error
	sent       []string
}

func (f *fakeSender) Configured() bool { return f.configured }

func (f *fakeSender) SendMessage(text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func testNotifier(sender *fakeSender) *Notifier {
	log := logger.New(logger.Config{Level: "error"})
	return NewNotifier(sender, events.NewManager(log), log)
}

func sampleSignal() domain.Signal {
	return domain.Signal{
		ArticleID: 7,
		CompanyID: 3,
		Type:      domain.SignalSell,
		Severity:  domain.SeverityHigh,
		Score:     -60,
	}
}

func TestSignalAlert_Delivers(t *testing.T) {
	sender := &fakeSender{configured: true}
	n := testNotifier(sender)

	n.SignalAlert(sampleSignal(), "Acme Corp", "Acme hit by fraud charges")

	assert.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "SELL SIGNAL")
	assert.Contains(t, sender.sent[0], "Acme Corp")
}

func TestSignalAlert_UnconfiguredSkips(t *testing.T) {
	sender := &fakeSender{configured: false}
	n := testNotifier(sender)

	n.SignalAlert(sampleSignal(), "Acme Corp", "headline")

	assert.Empty(t, sender.sent)
}

func TestSignalAlert_SendFailureIsSwallowed(t *testing.T) {
	sender := &fakeSender{configured: true, err: fmt.Errorf("network down")}
	n := testNotifier(sender)

	// Must not panic or propagate anything
	n.SignalAlert(sampleSignal(), "Acme Corp", "headline")

	assert.Empty(t, sender.sent)
}

func TestFormatSignalMessage(t *testing.T) {
	msg := FormatSignalMessage(domain.Signal{
		Type:     domain.SignalBuy,
		Severity: domain.SeverityHigh,
		Score:    50,
	}, "Acme Corp", "Acme wins major contract")

	lines := strings.Split(msg, "\n")
	assert.Equal(t, "🚨 *BUY SIGNAL*", lines[0])
	assert.Equal(t, "Company: *Acme Corp*", lines[1])
	assert.Equal(t, "Severity: *HIGH*", lines[2])
	assert.Equal(t, "Score: *50*", lines[3])
	assert.Equal(t, "📰 Acme wins major contract", lines[5])
}
